package plugins

import (
	"context"
	"errors"
	"time"

	"github.com/rsnakamura/theape/internal/adapters/shell"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
)

// Shell builds units that run a shell command.
type Shell struct {
	about
	runner *shell.Runner
}

// NewShell creates the shell plugin.
func NewShell(deps Deps) *Shell {
	return &Shell{
		about: about{
			name:    "shell",
			summary: "Runs a command through sh",
			help: `The shell plugin runs a command with "sh -c" on every invocation and logs its output line by line. A non-zero exit status is a plugin failure, so the operation carries on with its next plugin.

Options:
  command  the command line to run (required)
  dir      working directory (default: the current directory)
  env      map of environment variables set on top of the inherited ones
  pty      run attached to a pseudo-terminal, merging stdout and stderr
  timeout  kill the command after this long, as a Go duration (default: no limit)`,
			sample: `      - name: uptime
        plugin: shell
        options:
          command: uptime
          # pty: true
          # timeout: 30s
`,
		},
		runner: shell.NewRunner(deps.Logger),
	}
}

type shellOptions struct {
	Command string            `mapstructure:"command"`
	Dir     string            `mapstructure:"dir"`
	Env     map[string]string `mapstructure:"env"`
	PTY     bool              `mapstructure:"pty"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

// Build creates a shell unit.
func (s *Shell) Build(section domain.PluginSection) (ports.Unit, error) {
	var opts shellOptions
	if err := decodeOptions(section, &opts); err != nil {
		return nil, err
	}
	return &shellUnit{label: unitLabel(section), name: section.Name, opts: opts, runner: s.runner}, nil
}

type shellUnit struct {
	label  string
	name   string
	opts   shellOptions
	runner *shell.Runner
}

func (u *shellUnit) Invoke(ctx context.Context) error {
	runCtx := ctx
	if u.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, u.opts.Timeout)
		defer cancel()
	}

	err := u.runner.Run(runCtx, shell.Command{
		Args: []string{"sh", "-c", u.opts.Command},
		Dir:  u.opts.Dir,
		Env:  u.opts.Env,
		PTY:  u.opts.PTY,
	}, nil)
	if err == nil {
		return nil
	}
	// An interrupted run is not a failure of the command.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(ctxErr, err)
	}
	return failed(u.name, "shell command failed", err)
}

func (u *shellUnit) Validate() error {
	if u.opts.Command == "" {
		return invalid(u.name, "shell command is not set")
	}
	if u.opts.Timeout < 0 {
		return invalid(u.name, "shell timeout must not be negative")
	}
	return nil
}

func (u *shellUnit) Close() error {
	return nil
}

func (u *shellUnit) String() string {
	return u.label
}
