// Package runner executes external programs on behalf of the git and
// formatter services. Everything prettier-master does to the repository goes
// through a Runner, so the control flow can be tested without real tools.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/logger"
)

// Command is a single program invocation.
type Command struct {
	Name string
	Args []string
	// Secret commands carry credentials in their arguments and are never
	// echoed, logged or attached to errors.
	Secret bool
}

// New builds a Command.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// NewSecret builds a Command whose arguments must not be printed.
func NewSecret(name string, args ...string) Command {
	return Command{Name: name, Args: args, Secret: true}
}

func (c Command) String() string {
	if c.Secret {
		return c.Name + " [redacted]"
	}
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs a command to completion and returns its standard output.
type Runner interface {
	Run(ctx context.Context, cmd Command) (string, error)
}

var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs commands as local processes.
type ExecRunner struct {
	dir     string
	echo    io.Writer
	secrets []string
}

type Option func(*ExecRunner)

// WithDir sets the working directory of every command.
func WithDir(dir string) Option {
	return func(r *ExecRunner) {
		r.dir = dir
	}
}

// WithEcho prints "> command args" to w before each non-secret command runs.
func WithEcho(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.echo = w
	}
}

// WithRedactions replaces every occurrence of the given values in captured
// output before it reaches logs or errors.
func WithRedactions(secrets ...string) Option {
	return func(r *ExecRunner) {
		for _, s := range secrets {
			if s != "" {
				r.secrets = append(r.secrets, s)
			}
		}
	}
}

func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (string, error) {
	if r.echo != nil && !c.Secret {
		_, _ = fmt.Fprintf(r.echo, "> %s\n", r.redact(c.String()))
	}
	logger.Debug(ctx, "running command", "command", r.redact(c.String()), "dir", r.dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", domainErrors.ErrCommandNotFound.
				WithError(err).
				WithContext("command", c.Name)
		}

		appErr := domainErrors.ErrCommandFailed.
			WithError(err).
			WithContext("command", r.redact(c.String()))
		if !c.Secret {
			appErr = appErr.WithContext("stderr", r.redact(strings.TrimSpace(stderr.String())))
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			appErr = appErr.WithContext("exit_code", exitErr.ExitCode())
		}
		return r.redact(stdout.String()), appErr
	}

	if stderr.Len() > 0 && !c.Secret {
		logger.Debug(ctx, "command stderr", "command", c.Name, "stderr", r.redact(strings.TrimSpace(stderr.String())))
	}

	return r.redact(stdout.String()), nil
}

func (r *ExecRunner) redact(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, "***")
	}
	return s
}
