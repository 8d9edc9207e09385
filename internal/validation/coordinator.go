package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cogai-labs/goldenthread/internal/logger"
)

// State is the coordinator lifecycle state. Exactly one run is in flight per
// coordinator at a time.
type State string

const (
	// StateIdle means no run is loaded and none was recovered at startup.
	StateIdle State = "idle"
	// StateLoaded means a previously completed run was recovered.
	StateLoaded State = "loaded"
	// StateSubmitting means a run request is in flight. Re-submission is
	// rejected until the request resolves.
	StateSubmitting State = "submitting"
	// StateCompleted means the service returned a full run snapshot. A run
	// whose checks failed still completes; FAIL is a payload, not an error.
	StateCompleted State = "completed"
	// StateErrored means the submission itself failed at the transport or
	// protocol level. Re-entrant: a new submission may be attempted.
	StateErrored State = "errored"
)

// SnapshotStore persists the last terminal run locally so it can be
// re-rendered without the service.
type SnapshotStore interface {
	Load() (*Run, error)
	Save(run *Run) error
}

// Coordinator owns the lifecycle of one validation run: submission, in-flight
// status, completion, and recovery of the most recent run at startup. It is
// the single writer of the current Run value; everything else reads.
type Coordinator struct {
	client Client
	store  SnapshotStore
	log    *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	run      *Run
	lastErr  error
	datasets []Dataset
	haveList bool
	selected string
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithSnapshotStore enables local persistence of terminal runs.
func WithSnapshotStore(store SnapshotStore) CoordinatorOption {
	return func(c *Coordinator) {
		c.store = store
	}
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		c.now = now
	}
}

// Initialize creates a coordinator pre-seeded from the service's latest-run
// lookup: Loaded when a prior run exists, Idle when the lookup returns
// nothing. A failed lookup falls back to the local snapshot, then to Idle;
// startup never hard-fails on recovery.
func Initialize(ctx context.Context, client Client, opts ...CoordinatorOption) (*Coordinator, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}

	c := &Coordinator{
		client: client,
		log:    logger.GetLogger(),
		now:    time.Now,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}

	// A service answer of "no prior run" is authoritative; the local
	// snapshot is only consulted when the lookup itself fails.
	run, err := client.LatestRun(ctx)
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("latest-run recovery failed, trying local snapshot")
		run = c.loadSnapshot()
	}

	if run != nil {
		c.state = StateLoaded
		c.run = run
		c.selected = run.Summary.DatasetID
		c.log.WithFields(map[string]interface{}{
			"run_id": run.Summary.RunID,
			"status": string(run.Summary.Status),
		}).Debug("recovered previous run")
	}

	return c, nil
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentRun returns the current run, or nil. The returned value is owned by
// the coordinator and must be treated as read-only.
func (c *Coordinator) CurrentRun() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run
}

// LastError returns the error from the most recent failed submission, or nil
// after a successful one.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SelectedDataset returns the dataset id recovered from the previous run, if
// any. Used to pre-populate the dataset selector.
func (c *Coordinator) SelectedDataset() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Datasets returns the last successfully fetched catalog.
func (c *Coordinator) Datasets() []Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.datasets
}

// ListDatasets fetches the dataset catalog once and caches it. On failure the
// last successful list is retained and returned alongside the error.
func (c *Coordinator) ListDatasets(ctx context.Context) ([]Dataset, error) {
	c.mu.Lock()
	if c.haveList {
		datasets := c.datasets
		c.mu.Unlock()
		return datasets, nil
	}
	c.mu.Unlock()

	datasets, err := c.client.ListDatasets(ctx)
	if err != nil {
		c.mu.Lock()
		cached := c.datasets
		c.mu.Unlock()
		return cached, err
	}

	c.mu.Lock()
	c.datasets = datasets
	c.haveList = true
	c.mu.Unlock()
	return datasets, nil
}

// SubmitRun validates the request against the dataset catalog and submits it.
// An unknown dataset id fails fast with KindInvalidInput before any network
// I/O. On success the coordinator is Completed and the previous run is fully
// replaced; on transport or protocol failure it is Errored with no partial
// run. The submission is never retried automatically.
func (c *Coordinator) SubmitRun(ctx context.Context, req RunRequest) (*Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, newError(KindInvalidInput, "a submission is already in flight", nil)
	}
	haveList := c.haveList
	c.mu.Unlock()

	// The catalog is the source of truth for dataset ids. Fetching it is a
	// read, not a submission, so doing it lazily here keeps the unknown-id
	// check local once the catalog is known.
	if !haveList {
		if _, err := c.ListDatasets(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	if !c.knownDataset(req.DatasetID) {
		c.mu.Unlock()
		return nil, newError(KindInvalidInput, fmt.Sprintf("unknown dataset id: %s", req.DatasetID), nil)
	}
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, newError(KindInvalidInput, "a submission is already in flight", nil)
	}
	c.state = StateSubmitting
	c.lastErr = nil
	c.run = NewPendingRun(req.DatasetID, c.now())
	c.selected = req.DatasetID
	c.mu.Unlock()

	c.log.WithFields(map[string]interface{}{
		"dataset_id": req.DatasetID,
		"mode":       string(req.Mode),
	}).Info("submitting validation run")

	run, err := c.client.SubmitRun(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		// No partial run: a failed submission leaves nothing to display.
		c.state = StateErrored
		c.lastErr = err
		c.run = nil
		c.log.WithField("error", err.Error()).Error("run submission failed")
		return nil, err
	}

	if verr := run.Validate(); verr != nil {
		c.log.WithFields(map[string]interface{}{
			"run_id": run.Summary.RunID,
			"error":  verr.Error(),
		}).Warn("run snapshot violates invariants")
	}

	c.state = StateCompleted
	c.lastErr = nil
	c.run = run
	c.saveSnapshot(run)

	c.log.WithFields(map[string]interface{}{
		"run_id":        run.Summary.RunID,
		"status":        string(run.Summary.Status),
		"checks_passed": run.Summary.ChecksPassed,
		"checks_total":  run.Summary.ChecksTotal,
	}).Info("validation run completed")

	return run, nil
}

// FetchEvidenceBundle downloads the evidence artifact for the current run.
// Without a run id it fails locally with KindNotFound and issues no network
// call.
func (c *Coordinator) FetchEvidenceBundle(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	runID := ""
	if c.run != nil {
		runID = c.run.Summary.RunID
	}
	c.mu.Unlock()

	if runID == "" {
		return nil, newError(KindNotFound, "no run available to fetch evidence for", nil)
	}
	return c.client.FetchEvidence(ctx, runID)
}

// knownDataset checks catalog membership. Callers hold c.mu.
func (c *Coordinator) knownDataset(id string) bool {
	for _, d := range c.datasets {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (c *Coordinator) loadSnapshot() *Run {
	if c.store == nil {
		return nil
	}
	run, err := c.store.Load()
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("failed to load run snapshot")
		return nil
	}
	return run
}

// saveSnapshot persists terminal runs best-effort. Callers hold c.mu.
func (c *Coordinator) saveSnapshot(run *Run) {
	if c.store == nil || !run.Summary.Terminal() {
		return
	}
	if err := c.store.Save(run); err != nil {
		c.log.WithField("error", err.Error()).Warn("failed to save run snapshot")
	}
}
