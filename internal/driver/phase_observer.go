package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary. Units counts the source
// files the phase covered, when that is meaningful.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Units   int
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted while Check runs.
type PhaseObserver func(PhaseEvent)
