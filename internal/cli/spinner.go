package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner animates a single status line on w. The label can be swapped while
// it runs, which is how export progress ("Rendering…", "Saving…") is shown.
type Spinner struct {
	out io.Writer

	mu      sync.Mutex
	label   string
	drawn   int // runes of the last drawn label, for overpainting
	running bool

	ctx      context.Context
	cancel   context.CancelFunc
	quit     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// newSpinner prepares a spinner. Nothing is drawn until Start. Cancelling ctx
// ends the animation and wipes the line.
func newSpinner(ctx context.Context, w io.Writer, label string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:      w,
		label:    label,
		ctx:      ctx,
		cancel:   cancel,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.finished)
	tick := time.NewTicker(spinnerTick)
	defer tick.Stop()

	for n := 0; ; n++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.wipe()
			return
		case <-tick.C:
			s.paint(spinnerFrames[n%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) SetMessage(label string) {
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

func (s *Spinner) paint(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := len([]rune(s.label))
	trail := strings.Repeat(" ", max(0, s.drawn-width))
	fmt.Fprintf(s.out, "\r%s %s%s", styleSpinner.Render(frame), styleDim.Render(s.label), trail)
	s.drawn = width
}

func (s *Spinner) wipe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := max(s.drawn, len([]rune(s.label))) + 4
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", width))
}

// Stop ends the animation and clears the line. Later calls do nothing.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.cancel()
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			<-s.finished
		}
		s.wipe()
	})
}

// Cancelled reports whether the parent context ended the spinner before Stop.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.quit:
		return false
	default:
		return s.ctx.Err() != nil
	}
}
