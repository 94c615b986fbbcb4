// Package shell runs external commands for plugins, either on plain pipes or
// inside a pseudo-terminal, streaming their output to the logger line by line.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"github.com/rsnakamura/theape/internal/core/ports"
	"go.trai.ch/zerr"
)

// Command describes one process to run.
type Command struct {
	// Args is the program followed by its arguments.
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env overrides variables of the inherited environment.
	Env map[string]string
	// PTY runs the command attached to a pseudo-terminal, merging its
	// standard output and error.
	PTY bool
}

// Runner executes commands.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a Runner that logs command output through logger.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run starts the command and waits for it. Output lines are logged and, when
// out is non-nil, copied to out. A non-zero exit status is returned as an
// error carrying the exit code.
func (r *Runner) Run(ctx context.Context, command Command, out io.Writer) error {
	if len(command.Args) == 0 {
		return nil
	}

	cmd := r.build(ctx, command)

	stdoutLog := &logWriter{logger: r.logger, level: "info"}
	stderrLog := &logWriter{logger: r.logger, level: "error"}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	stdout := io.Writer(stdoutLog)
	stderr := io.Writer(stderrLog)
	if out != nil {
		stdout = io.MultiWriter(stdoutLog, out)
		stderr = io.MultiWriter(stderrLog, out)
	}

	var err error
	if command.PTY {
		err = runPTY(cmd, stdout)
	} else {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", strings.Join(command.Args, " "))
}

func (r *Runner) build(ctx context.Context, command Command) *exec.Cmd {
	name := command.Args[0]
	env := resolveEnvironment(os.Environ(), command.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, command.Args[1:]...) //nolint:gosec // user provided command
	// Keep the name as invoked rather than the resolved path.
	cmd.Args[0] = name
	cmd.Dir = command.Dir
	cmd.Env = env
	return cmd
}

func runPTY(cmd *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master fails with EIO once the child exits.
		_, _ = io.Copy(out, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs terminate lines with \r\n.
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// resolveEnvironment applies overrides on top of the inherited environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
