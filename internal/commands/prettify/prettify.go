package prettify

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/GordyD/prettier-master/internal/config"
	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/i18n"
	"github.com/GordyD/prettier-master/internal/logger"
	"github.com/GordyD/prettier-master/internal/models"
	"github.com/GordyD/prettier-master/internal/ui"
	"github.com/GordyD/prettier-master/internal/version"
)

type Prettifier interface {
	Run(ctx context.Context) (*models.Result, error)
}

// ServiceFactory builds the service once command line flags have been
// applied to cfg.
type ServiceFactory func(cfg *config.Config, t *i18n.Translations) (Prettifier, error)

type PrettifyCommand struct {
	newService ServiceFactory
	out        io.Writer
}

func NewPrettifyCommand(newService ServiceFactory, out io.Writer) *PrettifyCommand {
	return &PrettifyCommand{newService: newService, out: out}
}

// CreateCommand returns the root command. Formatting is its default action.
func (c *PrettifyCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "prettier-master",
		Usage:       t.GetMessage("app_usage", 0, nil),
		Description: t.GetMessage("app_description", 0, nil),
		Version:     version.FullVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "master-branch",
				Value: cfg.MasterBranch,
				Usage: t.GetMessage("flag_master_branch", 0, nil),
			},
			&cli.StringFlag{
				Name:  "prettier-cmd",
				Value: cfg.PrettierCmd,
				Usage: t.GetMessage("flag_prettier_cmd", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "pr-on-change",
				Usage: t.GetMessage("flag_pr_on_change", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("flag_dry_run", 0, nil),
			},
			&cli.StringFlag{
				Name:  "lang",
				Value: cfg.Language,
				Usage: t.GetMessage("flag_lang", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   t.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: t.GetMessage("flag_verbose", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			return c.run(ctx, command, t, cfg)
		},
	}
}

func (c *PrettifyCommand) run(ctx context.Context, command *cli.Command, t *i18n.Translations, cfg *config.Config) error {
	if err := applyFlags(command, t, cfg); err != nil {
		return err
	}

	l := logger.Initialize(cfg.Debug, cfg.Verbose)
	ctx = logger.WithLogger(ctx, l)

	service, err := c.newService(cfg, t)
	if err != nil {
		return err
	}

	result, err := service.Run(ctx)
	if err != nil {
		return err
	}

	logger.Debug(ctx, "run finished", "outcome", string(result.Outcome), "commit", result.Commit)
	return c.report(result, t, cfg)
}

// applyFlags lets explicitly passed flags override the environment.
func applyFlags(command *cli.Command, t *i18n.Translations, cfg *config.Config) error {
	if command.IsSet("master-branch") {
		cfg.MasterBranch = command.String("master-branch")
	}
	if command.IsSet("prettier-cmd") {
		cfg.PrettierCmd = command.String("prettier-cmd")
	}
	if command.Bool("pr-on-change") {
		cfg.PROnChange = "true"
	}
	if command.Bool("dry-run") {
		cfg.DryRun = "true"
	}
	if command.IsSet("lang") {
		cfg.Language = command.String("lang")
	}
	cfg.Debug = command.Bool("debug")
	cfg.Verbose = command.Bool("verbose")

	if err := cfg.Validate(); err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err)
	}
	if err := t.SetLanguage(cfg.Language); err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err)
	}
	return nil
}

func (c *PrettifyCommand) report(result *models.Result, t *i18n.Translations, cfg *config.Config) error {
	if result.Outcome == models.OutcomeDryRun {
		ui.PrintWarning(c.out, t.GetMessage("outcome_dry_run", result.Changes, map[string]interface{}{
			"Count": result.Changes,
		}))
		return ui.PrintFileTable(c.out, t.GetMessage("table_header_file", 0, nil), result.Updated)
	}
	if result.Outcome.Skipped() {
		ui.PrintStatus(c.out, skipMessage(result.Outcome, t, cfg))
		return nil
	}

	ui.PrintStatus(c.out, t.GetMessage("outcome_files_updated", 0, nil))
	if err := ui.PrintFileTable(c.out, t.GetMessage("table_header_file", 0, nil), result.Updated); err != nil {
		return err
	}
	ui.PrintSuccess(c.out, t.GetMessage("outcome_files_prettified", result.Changes, map[string]interface{}{
		"Count": result.Changes,
	}))
	if result.Outcome == models.OutcomePullRequestOpened {
		ui.PrintInfo(c.out, t.GetMessage("outcome_pull_request_opened", 0, map[string]interface{}{
			"URL": result.PullRequestURL,
		}))
	} else {
		ui.PrintInfo(c.out, t.GetMessage("outcome_pushed", 0, map[string]interface{}{
			"Branch": result.Branch,
		}))
	}
	return nil
}

func skipMessage(outcome models.Outcome, t *i18n.Translations, cfg *config.Config) string {
	switch outcome {
	case models.OutcomeNotMaster:
		return t.GetMessage("outcome_not_master", 0, map[string]interface{}{
			"Master": cfg.MasterBranch,
		})
	case models.OutcomePullRequest:
		return t.GetMessage("outcome_pull_request", 0, nil)
	case models.OutcomeOwnCommit:
		return t.GetMessage("outcome_own_commit", 0, nil)
	default:
		return t.GetMessage("outcome_nothing_to_update", 0, nil)
	}
}
