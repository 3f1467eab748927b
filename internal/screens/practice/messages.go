package practice

import (
	"time"

	pr "github.com/abhisek/spellbound/internal/practice"
)

// roundReadyMsg is sent when a sentence has been generated and voiced.
type roundReadyMsg struct {
	Round *pr.Round
	Err   error
}

// checkedMsg carries the graded attempt.
type checkedMsg struct {
	Outcome *pr.Outcome
	Err     error
}

// playedMsg is sent when audio playback ends.
type playedMsg struct {
	Err error
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
