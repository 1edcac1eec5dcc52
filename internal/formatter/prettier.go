// Package formatter runs the external code formatter over a list of files.
package formatter

import (
	"context"
	"strings"

	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/i18n"
	"github.com/GordyD/prettier-master/internal/logger"
	"github.com/GordyD/prettier-master/internal/runner"
)

// DefaultCommand is looked up on PATH when no formatter path is configured.
const DefaultCommand = "prettier"

type Prettier struct {
	runner  runner.Runner
	command string
	trans   *i18n.Translations
}

func NewPrettier(r runner.Runner, command string, trans *i18n.Translations) *Prettier {
	if command == "" {
		command = DefaultCommand
	}
	return &Prettier{runner: r, command: command, trans: trans}
}

func (p *Prettier) Command() string {
	return p.command
}

// Format rewrites files in place with `<command> --write files...`.
func (p *Prettier) Format(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}

	logger.Info(ctx, p.trans.GetMessage("formatting_files", len(files), map[string]interface{}{
		"Command": p.command,
		"Count":   len(files),
	}), "files", len(files))

	args := append([]string{"--write"}, files...)
	if _, err := p.runner.Run(ctx, runner.New(p.command, args...)); err != nil {
		return domainErrors.ErrFormatterFailed.
			WithError(err).
			WithContext("command", p.command).
			WithSuggestion(p.InstallHint())
	}
	return nil
}

// Version runs `<command> --version`. It fails when the formatter is not
// installed where it is expected.
func (p *Prettier) Version(ctx context.Context) (string, error) {
	out, err := p.runner.Run(ctx, runner.New(p.command, "--version"))
	if err != nil {
		return "", domainErrors.ErrFormatterFailed.
			WithError(err).
			WithContext("command", p.command).
			WithSuggestion(p.InstallHint())
	}
	return strings.TrimSpace(out), nil
}

// InstallHint explains how to install the formatter, depending on whether a
// custom path was configured.
func (p *Prettier) InstallHint() string {
	if p.command == DefaultCommand {
		return p.trans.GetMessage("formatter_hint_global", 0, nil)
	}
	return p.trans.GetMessage("formatter_hint_path", 0, map[string]interface{}{
		"Command": p.command,
	})
}
