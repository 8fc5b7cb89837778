// Package render draws execution results as a single-screen status view.
// Every call clears the terminal and redraws from the top-left corner, so
// the screen always shows the latest result only.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/hupe1980/mlrun/internal/executor"
)

// Renderer draws one result screen.
type Renderer interface {
	ShowError(message string) error
	ShowSuccess(name string, output []byte) error
}

// Show dispatches res to the matching Renderer method.
func Show(r Renderer, res executor.Result) error {
	if res.Status != executor.StatusSucceeded {
		return r.ShowError(res.Message())
	}

	return r.ShowSuccess(res.Name, res.Output)
}

// outputRow is where captured interpreter output starts, leaving a blank
// line under the banner.
const outputRow = 3

// Terminal renders with ANSI escape sequences.
type Terminal struct {
	out          *termenv.Output
	errorLabel   lipgloss.Style
	successLabel lipgloss.Style
}

// NewTerminal creates a Terminal writing to w. Colors and bold are dropped
// when noColor is set; clearing and cursor positioning are always emitted.
func NewTerminal(w io.Writer, noColor bool) *Terminal {
	profile := termenv.ANSI
	if noColor {
		profile = termenv.Ascii
	}

	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	return &Terminal{
		out:          termenv.NewOutput(w, termenv.WithProfile(profile)),
		errorLabel:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		successLabel: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	}
}

// ShowError draws a red "error" banner with message on the first line.
func (t *Terminal) ShowError(message string) error {
	t.out.ClearScreen()

	_, err := fmt.Fprintf(t.out, "%s: %s", t.errorLabel.Render("error"), message)

	return err
}

// ShowSuccess draws a green "success" banner naming the file, then writes
// output verbatim from row 3.
func (t *Terminal) ShowSuccess(name string, output []byte) error {
	t.out.ClearScreen()

	if _, err := fmt.Fprintf(t.out, "%s: Successfully executed the file `%s`:",
		t.successLabel.Render("success"), name); err != nil {
		return err
	}

	t.out.MoveCursor(outputRow, 1)

	_, err := t.out.Write(output)

	return err
}
