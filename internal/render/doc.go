// Package render expands configuration templates.
//
// # Load-Time Context
//
// Every template is rendered against a Context: a flat mapping of
// variable names to values describing the invoking user, this host, its
// proxy settings and the directories the resolver works with:
//
//	edi_current_user_name                   invoking user (SUDO_USER aware)
//	edi_current_user_uid / _gid             numeric ids of that user
//	edi_current_user_host_home_directory    $HOME
//	edi_current_user_target_home_directory  /home/<user>
//	edi_host_hostname                       host name
//	edi_host_http_proxy ... edi_host_no_proxy  proxy variables ("" when unset)
//	edi_edi_plugin_directory                tool-wide plugin directory
//	edi_work_directory                      working directory
//	edi_config_directory                    directory of the base file
//	edi_project_plugin_directory            <config directory>/plugins
//
// A Context is built fresh for every use and never cached.
//
// # Templates
//
// Templates use text/template syntax with the repeatable subset of the
// sprig function library:
//
//	playbooks:
//	  base:
//	    path: playbooks/base.yml
//	    parameters:
//	      proxy: {{ .edi_host_http_proxy | default "none" | quote }}
//	      owner: {{ .edi_current_user_name | upper }}
//
// Referencing a variable the context does not define is an error, so a
// misspelled name fails loudly instead of rendering as blank text.
package render
