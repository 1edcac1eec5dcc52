package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/i18n"
)

// Prompt prefixes every status line, the way CI logs show it.
const Prompt = "prettier-master: "

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
	ErrorEmoji   = Error.Sprint("❌")
	BrushEmoji   = "🖌️"
)

// IsTerminal reports whether w is an interactive terminal. CI logs are not,
// and get no spinner animation.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SmartSpinner animates while a step runs on a terminal and stays silent
// otherwise.
type SmartSpinner struct {
	spinner *spinner.Spinner
	out     io.Writer
	enabled bool
}

// NewSmartSpinnerTo writes the final status line to out. The animation only
// runs when animate is true.
func NewSmartSpinnerTo(out io.Writer, initialMessage string, animate bool) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+BrushEmoji+" "+initialMessage),
		spinner.WithWriter(out),
	)
	return &SmartSpinner{spinner: s, out: out, enabled: animate}
}

func (s *SmartSpinner) Start() {
	if s.enabled {
		s.spinner.Start()
	}
}

func (s *SmartSpinner) Stop() {
	if s.enabled {
		s.spinner.Stop()
	}
}

// UpdateMessage changes the text next to the spinner, so one spinner can be
// reused across steps.
func (s *SmartSpinner) UpdateMessage(msg string) {
	s.spinner.Lock()
	s.spinner.Suffix = " " + BrushEmoji + " " + msg
	s.spinner.Unlock()
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(s.out, msg)
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(s.out, msg)
}

func (s *SmartSpinner) Warning(msg string) {
	s.Stop()
	PrintWarning(s.out, msg)
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", ErrorEmoji, Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

// PrintStatus writes a plain "prettier-master: msg" line.
func PrintStatus(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Accent.Sprint(Prompt), msg)
}

func PrintSectionBanner(w io.Writer, title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	_, _ = fmt.Fprintf(w, "\n%s\n", separator)
	_, _ = fmt.Fprintf(w, "%s %s\n", BrushEmoji, Accent.Sprint(title))
	_, _ = fmt.Fprintf(w, "%s\n\n", separator)
}

// PrintFileTable renders files as a numbered single column table.
func PrintFileTable(w io.Writer, header string, files []string) error {
	if len(files) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", header})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(files))
	for i, f := range files {
		data = append(data, []string{fmt.Sprintf("%d", i+1), f})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// HandleAppError prints err to stderr. If translations is nil, it will use
// English defaults.
func HandleAppError(err error, translations ...*i18n.Translations) {
	var t *i18n.Translations
	if len(translations) > 0 {
		t = translations[0]
	}
	HandleAppErrorTo(os.Stderr, err, t)
}

// HandleAppErrorTo prints the type, message, details and suggestion of an
// AppError, or the plain message of any other error.
func HandleAppErrorTo(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	suggestionColor := color.New(color.FgCyan)

	_, _ = fmt.Fprintln(w)
	_, _ = Error.Fprintf(w, "%s%s: %s\n", Prompt, appErr.Type, appErr.Message)

	if appErr.Err != nil {
		details := "Details:"
		if t != nil {
			details = t.GetMessage("ui_error_details", 0, nil)
		}
		_, _ = Dim.Fprintf(w, "   %s %v\n", details, appErr.Err)
	}

	if stderr, ok := appErr.Context["stderr"].(string); ok && stderr != "" {
		for _, line := range strings.Split(stderr, "\n") {
			_, _ = Dim.Fprintf(w, "   | %s\n", line)
		}
	}

	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_error_try_suggestion", 0, nil)
		}
		_, _ = suggestionColor.Fprint(w, tryPrefix)
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}
