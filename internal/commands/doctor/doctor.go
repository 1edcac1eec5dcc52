package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/GordyD/prettier-master/internal/ci"
	"github.com/GordyD/prettier-master/internal/config"
	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/formatter"
	"github.com/GordyD/prettier-master/internal/git"
	"github.com/GordyD/prettier-master/internal/i18n"
	"github.com/GordyD/prettier-master/internal/runner"
	"github.com/GordyD/prettier-master/internal/ui"
)

type DoctorCommand struct {
	runner  runner.Runner
	out     io.Writer
	animate bool
}

func NewDoctorCommand(r runner.Runner, out io.Writer) *DoctorCommand {
	return &DoctorCommand{runner: r, out: out, animate: ui.IsTerminal(out)}
}

func (d *DoctorCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"dr"},
		Usage:   t.GetMessage("doctor_command_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return d.runHealthCheck(ctx, t, cfg)
		},
	}
}

type healthCheck struct {
	name string
	fn   func(context.Context, *i18n.Translations, *config.Config) checkResult
}

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

func (d *DoctorCommand) runHealthCheck(ctx context.Context, t *i18n.Translations, cfg *config.Config) error {
	ui.PrintSectionBanner(d.out, t.GetMessage("doctor_running_checks", 0, nil))

	gitService := git.NewGitService(d.runner)
	prettier := formatter.NewPrettier(d.runner, cfg.PrettierCmd, t)

	checks := []healthCheck{
		{name: "doctor_check_git_installed", fn: func(ctx context.Context, t *i18n.Translations, _ *config.Config) checkResult {
			return d.checkGitInstalled(ctx, t, gitService)
		}},
		{name: "doctor_check_git_repo", fn: func(ctx context.Context, t *i18n.Translations, _ *config.Config) checkResult {
			return d.checkGitRepo(ctx, t, gitService)
		}},
		{name: "doctor_check_formatter", fn: func(ctx context.Context, t *i18n.Translations, _ *config.Config) checkResult {
			return d.checkFormatter(ctx, t, prettier)
		}},
		{name: "doctor_check_credentials", fn: d.checkCredentials},
		{name: "doctor_check_branch", fn: func(ctx context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
			return d.checkBranch(ctx, t, cfg, gitService)
		}},
	}

	spinner := ui.NewSmartSpinnerTo(d.out, "", d.animate)

	var warnings, failures int
	for _, check := range checks {
		checkName := t.GetMessage(check.name, 0, nil)
		spinner.UpdateMessage(checkName)
		spinner.Start()

		result := check.fn(ctx, t, cfg)

		switch result.status {
		case checkStatusOK:
			spinner.Success(checkName)
			if result.message != "" {
				ui.PrintInfo(d.out, "  "+result.message)
			}
		case checkStatusWarning:
			warnings++
			spinner.Warning(checkName)
			ui.PrintInfo(d.out, "  "+result.message)
		case checkStatusError:
			failures++
			spinner.Error(checkName)
			ui.PrintInfo(d.out, "  "+result.message)
		}
		if result.status != checkStatusOK && result.suggestion != "" {
			ui.PrintInfo(d.out, "  → "+result.suggestion)
		}
	}

	_, _ = fmt.Fprintln(d.out)
	ui.PrintSectionBanner(d.out, t.GetMessage("doctor_summary", 0, nil))

	switch {
	case failures > 0:
		ui.PrintError(d.out, t.GetMessage("doctor_has_errors", 0, nil))
		return domainErrors.ErrHealthCheck.WithContext("failed", failures)
	case warnings > 0:
		ui.PrintWarning(d.out, t.GetMessage("doctor_has_warnings", 0, nil))
	default:
		ui.PrintSuccess(d.out, t.GetMessage("doctor_all_good", 0, nil))
	}
	return nil
}

func (d *DoctorCommand) checkGitInstalled(ctx context.Context, t *i18n.Translations, g *git.GitService) checkResult {
	version, err := g.Version(ctx)
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_git_not_installed", 0, nil),
			suggestion: t.GetMessage("doctor_install_git_suggestion", 0, nil),
		}
	}
	return checkResult{status: checkStatusOK, message: version}
}

func (d *DoctorCommand) checkGitRepo(ctx context.Context, t *i18n.Translations, g *git.GitService) checkResult {
	root, err := g.RepoRoot(ctx)
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_not_in_git_repo", 0, nil),
			suggestion: t.GetMessage("doctor_git_init_suggestion", 0, nil),
		}
	}
	return checkResult{status: checkStatusOK, message: fmt.Sprintf("(%s)", root)}
}

func (d *DoctorCommand) checkFormatter(ctx context.Context, t *i18n.Translations, p *formatter.Prettier) checkResult {
	version, err := p.Version(ctx)
	if err != nil {
		return checkResult{
			status: checkStatusError,
			message: t.GetMessage("doctor_formatter_missing", 0, map[string]interface{}{
				"Command": p.Command(),
			}),
			suggestion: p.InstallHint(),
		}
	}
	return checkResult{status: checkStatusOK, message: fmt.Sprintf("%s %s", p.Command(), version)}
}

// checkCredentials only fails under CI, where the push needs GITHUB_USER
// and GITHUB_TOKEN. Locally they matter for pull request mode alone.
func (d *DoctorCommand) checkCredentials(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.HasCredentials() {
		return checkResult{status: checkStatusOK, message: cfg.GitHub.User}
	}

	missing := checkResult{
		message:    t.GetMessage("doctor_credentials_missing", 0, nil),
		suggestion: t.GetMessage("doctor_credentials_suggestion", 0, nil),
	}
	switch {
	case cfg.IsCI():
		missing.status = checkStatusError
		return missing
	case cfg.PullRequestMode() && cfg.GitHub.Token == "":
		missing.status = checkStatusWarning
		return missing
	default:
		return checkResult{status: checkStatusOK, message: t.GetMessage("doctor_credentials_not_needed", 0, nil)}
	}
}

func (d *DoctorCommand) checkBranch(ctx context.Context, t *i18n.Translations, cfg *config.Config, g *git.GitService) checkResult {
	branch := ci.Detect(cfg).Branch
	if branch == "" {
		var err error
		if branch, err = g.CurrentBranch(ctx); err != nil {
			return checkResult{
				status:     checkStatusWarning,
				message:    err.Error(),
				suggestion: t.GetMessage("doctor_git_init_suggestion", 0, nil),
			}
		}
	}

	if branch != cfg.MasterBranch {
		return checkResult{
			status: checkStatusWarning,
			message: t.GetMessage("doctor_branch_mismatch", 0, map[string]interface{}{
				"Branch": branch,
				"Master": cfg.MasterBranch,
			}),
		}
	}
	return checkResult{status: checkStatusOK, message: branch}
}
