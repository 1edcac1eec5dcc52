package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/GordyD/prettier-master/internal/cli/registry"
	"github.com/GordyD/prettier-master/internal/commands/doctor"
	"github.com/GordyD/prettier-master/internal/commands/prettify"
	"github.com/GordyD/prettier-master/internal/config"
	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/formatter"
	"github.com/GordyD/prettier-master/internal/git"
	"github.com/GordyD/prettier-master/internal/i18n"
	"github.com/GordyD/prettier-master/internal/logger"
	"github.com/GordyD/prettier-master/internal/providers"
	"github.com/GordyD/prettier-master/internal/runner"
	"github.com/GordyD/prettier-master/internal/services"
	"github.com/GordyD/prettier-master/internal/ui"
	"github.com/GordyD/prettier-master/internal/vcs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app, translations, err := initializeApp(ctx)
	if err != nil {
		stop()
		ui.HandleAppError(err)
		os.Exit(1)
	}

	err = app.Run(ctx, os.Args)
	stop()
	if err != nil {
		ui.HandleAppError(err, translations)
		os.Exit(1)
	}
}

func initializeApp(ctx context.Context) (*cli.Command, *i18n.Translations, error) {
	logger.Initialize(false, false)

	cfgApp, err := config.LoadConfig(ctx)
	if err != nil {
		return nil, nil, domainErrors.ErrInvalidConfig.WithError(err)
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	// Every subprocess is echoed to stdout. The token never is.
	execRunner := runner.NewExecRunner(
		runner.WithEcho(os.Stdout),
		runner.WithRedactions(cfgApp.GitHub.Token),
	)

	newService := func(cfg *config.Config, t *i18n.Translations) (prettify.Prettifier, error) {
		newVCSClient := func(slug string) (vcs.VCSClient, error) {
			return providers.NewVCSClient(slug, cfg)
		}
		return services.NewPrettifyService(
			cfg,
			git.NewGitService(execRunner),
			formatter.NewPrettier(execRunner, cfg.PrettierCmd, t),
			newVCSClient,
			t,
		), nil
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)
	if err := registerCommand.Register("doctor", doctor.NewDoctorCommand(runner.NewExecRunner(), os.Stdout)); err != nil {
		return nil, nil, err
	}

	root := prettify.NewPrettifyCommand(newService, os.Stdout).CreateCommand(translations, cfgApp)
	root.Commands = registerCommand.CreateCommands()
	return root, translations, nil
}
