package validation

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire types mirror the validation service's snake_case JSON surface. The
// mapping to the domain model is total in both directions; unknown wire
// fields are ignored for forward compatibility.

type datasetWire struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Filename string   `json:"filename"`
	Hash     string   `json:"hash"`
	Size     string   `json:"size"`
	Anchors  []string `json:"anchors"`
}

type runRequestWire struct {
	DatasetID string `json:"dataset_id"`
	Mode      string `json:"mode"`
}

type checkWire struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	DurationMs      *int64 `json:"duration_ms,omitempty"`
	EvidenceSummary string `json:"evidence_summary,omitempty"`
}

type runSummaryWire struct {
	RunID        string     `json:"run_id"`
	DatasetID    string     `json:"dataset_id"`
	Status       string     `json:"status"`
	ChecksTotal  int        `json:"checks_total"`
	ChecksPassed int        `json:"checks_passed"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty"`
	TraceID      string     `json:"trace_id,omitempty"`
	WorkflowID   string     `json:"workflow_id,omitempty"`
	SessionID    string     `json:"session_id,omitempty"`
}

type narrativeWire struct {
	Elena  string `json:"elena,omitempty"`
	Marcus string `json:"marcus,omitempty"`
}

type runWire struct {
	Summary   runSummaryWire `json:"summary"`
	Checks    []checkWire    `json:"checks"`
	Narrative narrativeWire  `json:"narrative"`
}

func datasetFromWire(w datasetWire) Dataset {
	return Dataset{
		ID:       w.ID,
		Name:     w.Name,
		Filename: w.Filename,
		Hash:     w.Hash,
		Size:     w.Size,
		Anchors:  w.Anchors,
	}
}

func requestToWire(r RunRequest) runRequestWire {
	return runRequestWire{DatasetID: r.DatasetID, Mode: string(r.Mode)}
}

func checkFromWire(w checkWire) Check {
	return Check{
		ID:              w.ID,
		Name:            w.Name,
		Status:          CheckStatus(w.Status),
		DurationMs:      w.DurationMs,
		EvidenceSummary: w.EvidenceSummary,
	}
}

func checkToWire(c Check) checkWire {
	return checkWire{
		ID:              c.ID,
		Name:            c.Name,
		Status:          string(c.Status),
		DurationMs:      c.DurationMs,
		EvidenceSummary: c.EvidenceSummary,
	}
}

func runFromWire(w runWire) *Run {
	run := &Run{
		Summary: RunSummary{
			RunID:        w.Summary.RunID,
			DatasetID:    w.Summary.DatasetID,
			Status:       RunStatus(w.Summary.Status),
			ChecksTotal:  w.Summary.ChecksTotal,
			ChecksPassed: w.Summary.ChecksPassed,
			StartedAt:    w.Summary.StartedAt,
			EndedAt:      w.Summary.EndedAt,
			DurationMs:   w.Summary.DurationMs,
			TraceID:      w.Summary.TraceID,
			WorkflowID:   w.Summary.WorkflowID,
			SessionID:    w.Summary.SessionID,
		},
		Narrative: Narrative{Elena: w.Narrative.Elena, Marcus: w.Narrative.Marcus},
	}
	for _, c := range w.Checks {
		run.Checks = append(run.Checks, checkFromWire(c))
	}
	return run
}

func runToWire(r *Run) runWire {
	w := runWire{
		Summary: runSummaryWire{
			RunID:        r.Summary.RunID,
			DatasetID:    r.Summary.DatasetID,
			Status:       string(r.Summary.Status),
			ChecksTotal:  r.Summary.ChecksTotal,
			ChecksPassed: r.Summary.ChecksPassed,
			StartedAt:    r.Summary.StartedAt,
			EndedAt:      r.Summary.EndedAt,
			DurationMs:   r.Summary.DurationMs,
			TraceID:      r.Summary.TraceID,
			WorkflowID:   r.Summary.WorkflowID,
			SessionID:    r.Summary.SessionID,
		},
		Narrative: narrativeWire{Elena: r.Narrative.Elena, Marcus: r.Narrative.Marcus},
	}
	for _, c := range r.Checks {
		w.Checks = append(w.Checks, checkToWire(c))
	}
	return w
}

// DecodeRun parses a wire-format run document. A JSON null yields (nil, nil),
// which the service uses to mean "no prior run".
func DecodeRun(data []byte) (*Run, error) {
	var w *runWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse run document: %w", err)
	}
	if w == nil {
		return nil, nil
	}
	return runFromWire(*w), nil
}

// EncodeRun serializes a run in the wire format with 2-space indentation.
// Used for the local snapshot file and evidence-style exports.
func EncodeRun(r *Run) ([]byte, error) {
	data, err := json.MarshalIndent(runToWire(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run: %w", err)
	}
	return append(data, '\n'), nil
}
