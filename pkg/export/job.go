package export

import (
	"fmt"
	"time"

	"github.com/matzehuels/lookbook/pkg/deliver"
)

// Job is one slide → file conversion.
type Job struct {
	SlideID  string
	Title    string
	Filename string
	Outcome  deliver.Outcome
	// Path is the delivered file or fallback view.
	Path     string
	Method   string
	Err      error
	Duration time.Duration
}

// Summary aggregates a batch run. Success + Manual + Failure == Total.
type Summary struct {
	Total   int
	Success int
	Manual  int
	Failure int
	Jobs    []Job
}

func (s *Summary) add(j Job) {
	s.Jobs = append(s.Jobs, j)
	switch j.Outcome {
	case deliver.OutcomeSuccess:
		s.Success++
	case deliver.OutcomeManual:
		s.Manual++
	default:
		s.Failure++
	}
}

// Message is the aggregate alert text.
func (s Summary) Message() string {
	return fmt.Sprintf("Export finished: %d of %d downloaded, %d opened for manual save, %d failed.",
		s.Success, s.Total, s.Manual, s.Failure)
}

// resultLabel is the label shown when a single job ends.
func resultLabel(o deliver.Outcome) string {
	switch o {
	case deliver.OutcomeSuccess:
		return LabelDownloaded
	case deliver.OutcomeManual:
		return LabelManual
	default:
		return LabelFailed
	}
}
