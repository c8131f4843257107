package harness

import (
	"time"

	"github.com/PraveshMalvi/buyora/internal/session"
)

// StepRecord is the observed state after one step.
type StepRecord struct {
	// Index is the step number; 0 is the state before any step.
	Index int `json:"index"`

	// Action describes the step, including its argument and outcome.
	Action string `json:"action"`

	// Error is the command error code, if the action was rejected.
	Error string `json:"error,omitempty"`

	// Scheduled reports whether a load signal scheduled a reveal.
	Scheduled bool `json:"scheduled,omitempty"`

	// Scrolled reports whether the step fired the scroll-to-top hook.
	Scrolled bool `json:"scrolled,omitempty"`

	// Now is the virtual time after the step.
	Now time.Duration `json:"now"`

	View      session.Snapshot `json:"view"`
	Favorites []int64          `json:"favorites"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation matched.
	Pass bool `json:"pass"`

	// Steps holds the initial state followed by one record per step.
	Steps []StepRecord `json:"steps"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepRecord{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
