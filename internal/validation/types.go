// Package validation implements the Golden Thread validation run protocol:
// the domain model for datasets, runs, and checks, the HTTP client for the
// External Validation Service, the run coordinator state machine, and the
// read-only evidence presenter projections.
package validation

import (
	"fmt"
	"time"
)

// Mode selects the reasoning backend a run exercises.
type Mode string

const (
	// ModeDeterministic runs against the stubbed reasoning backend and is
	// reproducible across runs.
	ModeDeterministic Mode = "deterministic"
	// ModeAcceptance runs against the live reasoning backend. Slower, and
	// check content is non-deterministic.
	ModeAcceptance Mode = "acceptance"
)

// CheckStatus is the outcome of a single check.
type CheckStatus string

const (
	CheckPass    CheckStatus = "pass"
	CheckFail    CheckStatus = "fail"
	CheckPending CheckStatus = "pending"
)

// RunStatus is the overall status of a run.
type RunStatus string

const (
	StatusRunning RunStatus = "RUNNING"
	StatusPass    RunStatus = "PASS"
	StatusFail    RunStatus = "FAIL"
)

// Persona identifies one of the two fixed narrative voices.
type Persona string

const (
	PersonaElena  Persona = "elena"
	PersonaMarcus Persona = "marcus"
)

// Dataset is a reference fixture available to validate against. Datasets are
// immutable and loaded once per session from the validation service.
type Dataset struct {
	ID       string
	Name     string
	Filename string
	Hash     string
	Size     string
	Anchors  []string
}

// RunRequest is the input to a run submission.
type RunRequest struct {
	DatasetID string
	Mode      Mode
}

// Validate checks the request fields that are verifiable without the dataset
// catalog. Catalog membership is checked by the coordinator.
func (r RunRequest) Validate() error {
	if r.DatasetID == "" {
		return newError(KindInvalidInput, "dataset id is required", nil)
	}
	switch r.Mode {
	case ModeDeterministic, ModeAcceptance:
		return nil
	default:
		return newError(KindInvalidInput, fmt.Sprintf("mode must be %q or %q, got: %q", ModeDeterministic, ModeAcceptance, r.Mode), nil)
	}
}

// Check is one atomic assertion performed during a run. Checks arrive in a
// fixed execution order (auth, ingest, index, retrieve, answer,
// workflow-order, validation-gate, persistence) and that order is preserved
// everywhere.
type Check struct {
	ID              string
	Name            string
	Status          CheckStatus
	DurationMs      *int64
	EvidenceSummary string
}

// RunSummary aggregates one run. TraceID, WorkflowID, and SessionID are
// opaque correlation handles into the external workflow and memory systems
// and must be surfaced verbatim, never reformatted.
type RunSummary struct {
	RunID        string
	DatasetID    string
	Status       RunStatus
	ChecksTotal  int
	ChecksPassed int
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	TraceID      string
	WorkflowID   string
	SessionID    string
}

// Terminal reports whether the run has finished, in either outcome.
func (s RunSummary) Terminal() bool {
	return s.Status == StatusPass || s.Status == StatusFail
}

// Narrative holds the per-persona operational summaries generated by the
// service. Opaque display text, never parsed.
type Narrative struct {
	Elena  string
	Marcus string
}

// For returns the narrative text for a persona, or false when the persona is
// unknown or the text is absent.
func (n Narrative) For(p Persona) (string, bool) {
	switch p {
	case PersonaElena:
		return n.Elena, n.Elena != ""
	case PersonaMarcus:
		return n.Marcus, n.Marcus != ""
	default:
		return "", false
	}
}

// Run is the aggregate root for one validation run. Each service response is
// a full snapshot; a Run value is replaced wholesale, never merged.
type Run struct {
	Summary   RunSummary
	Checks    []Check
	Narrative Narrative
}

// NewPendingRun builds the client-side placeholder shown while a submission
// is in flight.
func NewPendingRun(datasetID string, startedAt time.Time) *Run {
	return &Run{
		Summary: RunSummary{
			DatasetID: datasetID,
			Status:    StatusRunning,
			StartedAt: startedAt,
		},
	}
}

// Validate checks the run invariants: check counts are consistent with the
// check list, and a PASS status means every check passed.
func (r *Run) Validate() error {
	s := r.Summary
	if s.ChecksTotal != len(r.Checks) {
		return fmt.Errorf("checks_total %d does not match %d checks", s.ChecksTotal, len(r.Checks))
	}
	if s.ChecksPassed < 0 || s.ChecksPassed > s.ChecksTotal {
		return fmt.Errorf("checks_passed %d out of range 0..%d", s.ChecksPassed, s.ChecksTotal)
	}
	passed := 0
	failed := false
	for _, c := range r.Checks {
		switch c.Status {
		case CheckPass:
			passed++
		case CheckFail:
			failed = true
		case CheckPending:
		default:
			return fmt.Errorf("check %s has unknown status %q", c.ID, c.Status)
		}
	}
	if s.ChecksPassed != passed {
		return fmt.Errorf("checks_passed %d does not match %d passing checks", s.ChecksPassed, passed)
	}
	switch s.Status {
	case StatusPass:
		if failed || passed != s.ChecksTotal {
			return fmt.Errorf("status PASS requires all %d checks to pass, got %d", s.ChecksTotal, passed)
		}
	case StatusFail, StatusRunning:
	default:
		return fmt.Errorf("unknown run status %q", s.Status)
	}
	if s.Terminal() && s.EndedAt == nil {
		return fmt.Errorf("terminal run %s has no ended_at", s.RunID)
	}
	return nil
}
