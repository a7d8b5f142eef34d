package commands

import (
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/teranos/visualgenome/am"
	"github.com/teranos/visualgenome/api"
	"github.com/teranos/visualgenome/errors"
	"github.com/teranos/visualgenome/internal/version"
	"github.com/teranos/visualgenome/logger"
)

// newClient builds an API client from loaded configuration
func newClient(cfg *am.Config) *api.Client {
	config := api.ConfigFromAM(cfg)
	if config.UserAgent == "" {
		config.UserAgent = version.Get().UserAgent()
	}
	config.Logger = logger.ComponentLogger("api")
	return api.NewClient(config)
}

// parseID parses a positional numeric id argument
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.WithHintf(
			errors.Newf("invalid %s %q", what, arg),
			"%s must be an integer", what)
	}
	return id, nil
}

// spinner wraps a pterm spinner that is only drawn when stderr is an
// interactive terminal
type spinner struct {
	printer *pterm.SpinnerPrinter
}

func startSpinner(cmd *cobra.Command, text string) *spinner {
	if !isTerminal(cmd.ErrOrStderr()) {
		return &spinner{}
	}
	printer, err := pterm.DefaultSpinner.WithWriter(cmd.ErrOrStderr()).Start(text)
	if err != nil {
		return &spinner{}
	}
	return &spinner{printer: printer}
}

func (s *spinner) success(text string) {
	if s.printer != nil {
		s.printer.Success(text)
	}
}

func (s *spinner) fail(text string) {
	if s.printer != nil {
		s.printer.Fail(text)
	}
}

// withSpinner runs fn under a spinner and reports its outcome
func withSpinner[T any](cmd *cobra.Command, text string, fn func() (T, error)) (T, error) {
	s := startSpinner(cmd, text)
	result, err := fn()
	if err != nil {
		s.fail(text + " failed")
		return result, err
	}
	s.success(text + " done")
	return result, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
