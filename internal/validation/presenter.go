package validation

// Evidence presenter: pure projections from a Run into display-ready values.
// The presenter never mutates the run and never hides failed checks; failure
// evidence is evidence.

// Placeholder marks an absent identifier or label. Absence is itself
// diagnostic (a run that failed before a workflow was created legitimately
// has no workflow id), so absent values are shown, never omitted.
const Placeholder = "—"

// Tone classifies how a projected value should be rendered.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Badge is the overall status badge for a run.
type Badge struct {
	Label string
	Tone  Tone
}

// StatusBadge maps the run status to its badge. A nil or still-running run
// shows the placeholder with a neutral tone.
func StatusBadge(run *Run) Badge {
	if run == nil {
		return Badge{Label: Placeholder, Tone: ToneNeutral}
	}
	switch run.Summary.Status {
	case StatusPass:
		return Badge{Label: string(StatusPass), Tone: TonePositive}
	case StatusFail:
		return Badge{Label: string(StatusFail), Tone: ToneNegative}
	default:
		return Badge{Label: Placeholder, Tone: ToneNeutral}
	}
}

// ChecklistItem is one check projected for display.
type ChecklistItem struct {
	ID              string
	Name            string
	Tone            Tone
	EvidenceSummary string
	DurationMs      *int64
}

// Checklist projects the run's checks in the server-given order. The order is
// meaningful (it mirrors the execution pipeline) and is never re-sorted by
// status or id.
func Checklist(run *Run) []ChecklistItem {
	if run == nil {
		return nil
	}
	items := make([]ChecklistItem, 0, len(run.Checks))
	for _, c := range run.Checks {
		items = append(items, ChecklistItem{
			ID:              c.ID,
			Name:            c.Name,
			Tone:            checkTone(c.Status),
			EvidenceSummary: c.EvidenceSummary,
			DurationMs:      c.DurationMs,
		})
	}
	return items
}

func checkTone(s CheckStatus) Tone {
	switch s {
	case CheckPass:
		return TonePositive
	case CheckFail:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// Identifiers holds the evidence identifiers for a run, verbatim, with the
// placeholder substituted for absent values.
type Identifiers struct {
	RunID      string
	TraceID    string
	WorkflowID string
	SessionID  string
}

// EvidenceIdentifiers projects the run's correlation handles. Identifiers are
// opaque and passed through unmodified; they key cross-system lookups in the
// external tracing and workflow stores.
func EvidenceIdentifiers(run *Run) Identifiers {
	if run == nil {
		return Identifiers{
			RunID:      Placeholder,
			TraceID:    Placeholder,
			WorkflowID: Placeholder,
			SessionID:  Placeholder,
		}
	}
	return Identifiers{
		RunID:      orPlaceholder(run.Summary.RunID),
		TraceID:    orPlaceholder(run.Summary.TraceID),
		WorkflowID: orPlaceholder(run.Summary.WorkflowID),
		SessionID:  orPlaceholder(run.Summary.SessionID),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// NarrativeFor returns the narrative text for a persona, or false when the
// run or the persona's text is absent.
func NarrativeFor(p Persona, run *Run) (string, bool) {
	if run == nil {
		return "", false
	}
	return run.Narrative.For(p)
}
