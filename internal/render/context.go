package render

import (
	"fmt"

	"github.com/edi-build/edi/internal/system"
)

// Context maps template variable names to values.
type Context map[string]any

// Dirs are the resolver-specific facts added to every Context.
type Dirs struct {
	WorkDir          string
	ConfigDir        string
	ProjectPluginDir string
	PluginDir        string
}

// proxyVariables maps context keys to the environment variables they mirror.
var proxyVariables = []struct {
	key string
	env string
}{
	{"edi_host_http_proxy", "http_proxy"},
	{"edi_host_https_proxy", "https_proxy"},
	{"edi_host_ftp_proxy", "ftp_proxy"},
	{"edi_host_socks_proxy", "all_proxy"},
	{"edi_host_no_proxy", "no_proxy"},
}

// NewContext assembles the load-time context from host lookups and dirs.
// It never fails: unset variables become empty strings.
func NewContext(host system.Host, dirs Dirs) Context {
	u := host.CurrentUser()

	ctx := Context{
		"edi_current_user_name":                  u.Name,
		"edi_current_user_uid":                   u.UID,
		"edi_current_user_gid":                   u.GID,
		"edi_current_user_host_home_directory":   host.Getenv("HOME", ""),
		"edi_current_user_target_home_directory": fmt.Sprintf("/home/%s", u.Name),
		"edi_host_hostname":                      host.Hostname(),
		"edi_edi_plugin_directory":               dirs.PluginDir,
		"edi_work_directory":                     dirs.WorkDir,
		"edi_config_directory":                   dirs.ConfigDir,
		"edi_project_plugin_directory":           dirs.ProjectPluginDir,
	}
	for _, p := range proxyVariables {
		ctx[p.key] = host.Getenv(p.env, "")
	}
	return ctx
}

// Clone returns a shallow copy of c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
