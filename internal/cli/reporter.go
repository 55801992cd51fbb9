package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/lookbook/pkg/export"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// termReporter shows orchestrator feedback in the terminal. With animate
// the progress label drives a spinner on w. Alerts are framed on out and,
// when ack is set, wait for the user to acknowledge them.
type termReporter struct {
	ctx     context.Context
	w       io.Writer
	out     io.Writer
	animate bool
	ack     func(ctx context.Context, msg string) error
	logger  *log.Logger

	spinner *Spinner
	busy    bool
	label   string
}

func newTermReporter(ctx context.Context, logger *log.Logger, animate, confirm bool) *termReporter {
	r := &termReporter{
		ctx:     ctx,
		w:       os.Stderr,
		out:     stdout,
		animate: animate,
		logger:  logger,
	}
	if confirm {
		r.ack = acknowledge
	}
	return r
}

func (r *termReporter) Label(text string) {
	r.label = text
	if r.spinner != nil {
		r.spinner.SetMessage(text)
		return
	}
	r.logger.Debug("Export status", "label", text)
}

func (r *termReporter) Busy(busy bool) {
	r.busy = busy
	if busy {
		r.startSpinner()
		return
	}
	r.stopSpinner()
}

// Alert pauses the spinner while the message is shown.
func (r *termReporter) Alert(message string) {
	r.stopSpinner()
	fmt.Fprintln(r.out, renderAlert(message))
	if r.ack != nil {
		if err := r.ack(r.ctx, message); err != nil {
			r.logger.Debug("Alert acknowledgement aborted", "error", err)
		}
	}
	if r.busy {
		r.startSpinner()
	}
}

// Finished prints a job as soon as it ends, before the result label is
// cleared.
func (r *termReporter) Finished(job export.Job) {
	r.stopSpinner()
	printJob(job)
	if r.busy {
		r.startSpinner()
	}
}

var _ export.JobReporter = (*termReporter)(nil)

func (r *termReporter) startSpinner() {
	if !r.animate || r.spinner != nil {
		return
	}
	r.spinner = newSpinner(r.ctx, r.w, r.label)
	r.spinner.Start()
}

func (r *termReporter) stopSpinner() {
	if r.spinner == nil {
		return
	}
	r.spinner.Stop()
	r.spinner = nil
}

// =============================================================================
// Acknowledgement
// =============================================================================

// ackModel is a bubbletea model that waits for a key press.
type ackModel struct {
	done bool
}

func (m ackModel) Init() tea.Cmd {
	return nil
}

func (m ackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ", "esc", "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ackModel) View() string {
	if m.done {
		return ""
	}
	return styleDim.Render("press enter to continue") + "\n"
}

// acknowledge blocks until the user presses a key or ctx is done.
func acknowledge(ctx context.Context, _ string) error {
	p := tea.NewProgram(ackModel{}, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	_, err := p.Run()
	return err
}
