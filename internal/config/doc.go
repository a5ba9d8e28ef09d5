// Package config resolves edi project configurations.
//
// # Layering
//
// A project is described by a base file plus up to three optional overlay
// files found next to it in configuration/overlay/:
//
//	<dir>/<stem><ext>                                   base
//	<dir>/configuration/overlay/<stem>.global<ext>       environment
//	<dir>/configuration/overlay/<stem>.<hostname><ext>   machine
//	<dir>/configuration/overlay/<stem>.<user><ext>       person
//
// Each file is rendered as a text/template against the load-time context
// (see package render) and then decoded as YAML, TOML or JSON depending on
// its extension. The documents are folded base < global < host < user.
//
// # Sections
//
// Flat sections (general, bootstrap, qemu) merge key by key. Nested
// sections (playbooks, keys, lxc_templates, lxc_profiles, shared_folders)
// merge item by item, and each item's parameters merge key by key on their
// own:
//
//	playbooks:
//	  base:
//	    path: playbooks/base.yml
//	    parameters:
//	      message: hello
//
// An overlay never removes anything; it switches an item off with
// skip: true.
//
// # Caching
//
// A Resolver owns a Store keyed by the base file's stem. The first Load of
// a project reads and folds its files, every later Load returns the cached
// document, so overlays are read at most once per process.
package config
