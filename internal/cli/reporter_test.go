package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/deliver"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/export"
)

func newTestReporter(animate bool) (*termReporter, *bytes.Buffer, *syncBuffer) {
	out := &bytes.Buffer{}
	spin := &syncBuffer{}
	r := newTermReporter(context.Background(), log.New(io.Discard), animate, false)
	r.out, r.w = out, spin
	return r, out, spin
}

func TestTermReporterAlert(t *testing.T) {
	r, out, _ := newTestReporter(false)
	var acked []string
	r.ack = func(_ context.Context, msg string) error {
		acked = append(acked, msg)
		return nil
	}

	r.Alert("Export finished: 2 of 3 downloaded")
	if !strings.Contains(out.String(), "Export finished: 2 of 3 downloaded") {
		t.Errorf("alert not printed: %q", out.String())
	}
	if len(acked) != 1 {
		t.Errorf("ack called %d times, want 1", len(acked))
	}
}

func TestTermReporterNoConfirm(t *testing.T) {
	r := newTermReporter(context.Background(), log.New(io.Discard), false, false)
	if r.ack != nil {
		t.Error("ack set without confirm")
	}
	if r2 := newTermReporter(context.Background(), log.New(io.Discard), false, true); r2.ack == nil {
		t.Error("ack missing with confirm")
	}
}

func TestTermReporterSpinnerLifecycle(t *testing.T) {
	r, _, _ := newTestReporter(true)

	r.Busy(true)
	if r.spinner == nil {
		t.Fatal("Busy(true) should start the spinner")
	}
	r.Label("Rendering…")
	if got := r.spinner.Message(); got != "Rendering…" {
		t.Errorf("spinner message = %q", got)
	}

	r.Alert("Could not export")
	if r.spinner == nil {
		t.Error("spinner should resume after an alert while busy")
	}

	r.Busy(false)
	if r.spinner != nil {
		t.Error("Busy(false) should stop the spinner")
	}
	r.Alert("done")
	if r.spinner != nil {
		t.Error("alert while idle should not start the spinner")
	}
}

func TestTermReporterStatic(t *testing.T) {
	r, _, spin := newTestReporter(false)
	r.Busy(true)
	r.Label("Rendering…")
	r.Busy(false)
	if r.spinner != nil || spin.String() != "" {
		t.Errorf("non-animated reporter drew a spinner: %q", spin.String())
	}
	if r.label != "Rendering…" {
		t.Errorf("label = %q", r.label)
	}
}

func TestAckModel(t *testing.T) {
	var m tea.Model = ackModel{}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil || m.(ackModel).done {
		t.Fatal("unrelated key should not acknowledge")
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.(ackModel).done {
		t.Fatal("enter should acknowledge and quit")
	}
	if m.View() != "" {
		t.Errorf("View() after ack = %q, want empty", m.View())
	}
}

func TestTermReporterFinished(t *testing.T) {
	r, _, _ := newTestReporter(true)
	out := captureStdout(t)

	r.Busy(true)
	r.Label(export.LabelDownloaded)
	r.Finished(export.Job{SlideID: "linen", Title: "Summer Linen", Outcome: deliver.OutcomeSuccess, Path: "/dl/peridot-Summer_Linen-1.png"})
	if !strings.Contains(out.String(), "Summer Linen") || !strings.Contains(out.String(), "peridot-Summer_Linen-1.png") {
		t.Errorf("job not printed: %q", out.String())
	}
	if r.spinner == nil {
		t.Error("spinner should resume while still busy")
	}

	r.Finished(export.Job{SlideID: "gala", Outcome: deliver.OutcomeFailure, Err: errors.New(errors.ErrCodeRenderingExhausted, "no strategy worked")})
	if !strings.Contains(out.String(), "gala: no strategy worked") {
		t.Errorf("failure not printed: %q", out.String())
	}
	r.Busy(false)
}
