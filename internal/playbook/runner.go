// Package playbook applies the playbooks of a resolved configuration with
// ansible-playbook.
package playbook

import (
	"context"
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	shellquote "github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/edi-build/edi/internal/config"
	"github.com/edi-build/edi/internal/errors"
	"github.com/edi-build/edi/internal/logging"
	"github.com/edi-build/edi/internal/system"
)

// Command is the executable every playbook is applied with.
const Command = "ansible-playbook"

// MountpointsKey is the node dictionary entry listing shared folder mountpoints.
const MountpointsKey = "edi_shared_folder_mountpoints"

// Connection is the ansible connection plugin used to reach the target.
type Connection string

const (
	ConnectionLXD Connection = "lxd"
	ConnectionSSH Connection = "ssh"
)

// ParseConnection validates a connection name.
func ParseConnection(s string) (Connection, error) {
	switch c := Connection(s); c {
	case ConnectionLXD, ConnectionSSH:
		return c, nil
	}
	return "", errors.ValidationError(fmt.Sprintf("invalid connection %q: must be %q or %q", s, ConnectionLXD, ConnectionSSH))
}

// Invocation is one planned ansible-playbook run.
type Invocation struct {
	Name      string
	Playbook  string
	ExtraVars map[string]any
	VarsFile  string
	Args      []string
	Env       []string
}

// CommandLine renders the invocation as a shell command line.
func (i Invocation) CommandLine() string {
	words := append([]string{}, i.Env...)
	words = append(words, Command)
	words = append(words, i.Args...)
	return shellquote.Join(words...)
}

// Runner applies the playbooks section of a configuration to one target.
type Runner struct {
	cfg        *config.Configuration
	target     string
	connection Connection
	fs         system.FileSystem
	exec       system.CommandExecutor
	host       system.Host
	verbose    bool
}

// Option configures a Runner
type Option func(*Runner)

// WithFS sets the file system used for the inventory and extra vars files
func WithFS(fs system.FileSystem) Option {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithExecutor sets the command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(r *Runner) {
		r.exec = exec
	}
}

// WithHost sets the host lookups
func WithHost(h system.Host) Option {
	return func(r *Runner) {
		r.host = h
	}
}

// WithVerbose makes ansible-playbook run with -vvvv
func WithVerbose(v bool) Option {
	return func(r *Runner) {
		r.verbose = v
	}
}

// NewRunner creates a Runner for target reached over connection.
func NewRunner(cfg *config.Configuration, target string, connection Connection, opts ...Option) (*Runner, error) {
	if target == "" {
		return nil, errors.ValidationError("a target is required to run playbooks")
	}
	if _, err := ParseConnection(string(connection)); err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:        cfg,
		target:     target,
		connection: connection,
		fs:         system.DefaultFS(),
		exec:       system.DefaultExecutor(),
		host:       system.DefaultHost(),
		verbose:    logging.DebugEnabled(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Plan builds the invocations for all non-skipped playbooks in name order.
// File names refer to tempDir; nothing is written.
func (r *Runner) Plan(tempDir string) ([]Invocation, error) {
	playbooks, err := r.cfg.OrderedPathItems(config.SectionPlaybooks)
	if err != nil {
		return nil, err
	}
	mountpoints, err := r.mountpoints()
	if err != nil {
		return nil, err
	}

	inventory := filepath.Join(tempDir, "inventory")
	env := []string{"ANSIBLE_REMOTE_TEMP=/tmp/ansible-" + r.host.CurrentUser().Name}

	invocations := make([]Invocation, 0, len(playbooks))
	for _, pb := range playbooks {
		vars := pb.Node
		vars[MountpointsKey] = mountpoints

		varsFile, err := securejoin.SecureJoinVFS(tempDir, "extra_vars_"+pb.Name, r.fs)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("invalid playbook name '%s'", pb.Name), err)
		}

		args := []string{
			"--connection", string(r.connection),
			"--inventory", inventory,
			"--extra-vars", "@" + varsFile,
		}
		if r.connection == ConnectionSSH {
			args = append(args, "--user", fmt.Sprint(vars[config.SettingManagementUserName.Key]))
		}
		args = append(args, pb.Path)
		if r.verbose {
			args = append(args, "-vvvv")
		}

		invocations = append(invocations, Invocation{
			Name:      pb.Name,
			Playbook:  pb.Path,
			ExtraVars: vars,
			VarsFile:  varsFile,
			Args:      args,
			Env:       env,
		})
	}
	return invocations, nil
}

// DryRun returns the command lines RunAll would execute.
func (r *Runner) DryRun() ([]string, error) {
	invocations, err := r.Plan(filepath.Join(r.cfg.WorkDir(), "edi-playbooks"))
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(invocations))
	for _, inv := range invocations {
		lines = append(lines, inv.CommandLine())
	}
	return lines, nil
}

// RunAll applies every playbook in order and returns the names of the
// applied ones. The inventory and extra vars files live in a temporary
// directory below the work directory that is removed afterwards.
func (r *Runner) RunAll(ctx context.Context) ([]string, error) {
	tempDir, err := r.fs.MkdirTemp(r.cfg.WorkDir(), "edi-playbooks-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer func() {
		if err := r.fs.RemoveAll(tempDir); err != nil {
			logging.Warn("failed to remove temporary directory", "path", tempDir, "error", err)
		}
	}()

	invocations, err := r.Plan(tempDir)
	if err != nil {
		return nil, err
	}
	if len(invocations) == 0 {
		return nil, nil
	}

	if _, err := r.exec.LookPath(Command); err != nil {
		return nil, errors.CommandFailed(Command, fmt.Errorf("%s not found, install ansible: %w", Command, err))
	}

	inventory := filepath.Join(tempDir, "inventory")
	if err := r.fs.WriteFile(inventory, []byte(Inventory(r.target)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write inventory: %w", err)
	}

	var applied []string
	for _, inv := range invocations {
		data, err := yaml.Marshal(inv.ExtraVars)
		if err != nil {
			return applied, fmt.Errorf("failed to encode extra vars for %s: %w", inv.Name, err)
		}
		log := logging.With("playbook", inv.Name)
		log.Info("running playbook", "path", inv.Playbook)
		log.Debug("playbook extra vars", "vars", string(data))

		if err := r.fs.WriteFile(inv.VarsFile, data, 0600); err != nil {
			return applied, fmt.Errorf("failed to write extra vars for %s: %w", inv.Name, err)
		}

		log.Debug("executing", "command", inv.CommandLine())
		if err := r.exec.ExecuteInteractive(ctx, inv.Env, Command, inv.Args...); err != nil {
			return applied, errors.CommandFailed(Command, fmt.Errorf("playbook %s: %w", inv.Name, err))
		}
		applied = append(applied, inv.Name)
	}
	return applied, nil
}

// Inventory returns the ansible inventory holding target as the only edi host.
func Inventory(target string) string {
	return fmt.Sprintf("[edi]\n%s\n", target)
}

// mountpoints lists the mountpoints of the non-skipped shared folders.
func (r *Runner) mountpoints() ([]any, error) {
	folders, err := r.cfg.OrderedRawItems(config.SectionSharedFolders)
	if err != nil {
		return nil, err
	}

	mountpoints := make([]any, 0, len(folders))
	for _, f := range folders {
		mp, ok := f.Record["mountpoint"]
		if !ok || mp == nil {
			return nil, errors.ConfigError(fmt.Sprintf(
				"missing mountpoint item in section '%s' for '%s'", config.SectionSharedFolders, f.Name), nil)
		}
		mountpoints = append(mountpoints, fmt.Sprint(mp))
	}
	return mountpoints, nil
}
