package output

import (
	"fmt"
	"strings"

	"github.com/cogai-labs/goldenthread/internal/validation"
)

// toneColor maps a presenter tone to its terminal color.
func toneColor(tone validation.Tone) string {
	switch tone {
	case validation.TonePositive:
		return colorGreen
	case validation.ToneNegative:
		return colorRed
	default:
		return colorGray
	}
}

// toneMark maps a presenter tone to its checklist marker.
func toneMark(tone validation.Tone) string {
	switch tone {
	case validation.TonePositive:
		return "✓"
	case validation.ToneNegative:
		return "✗"
	default:
		return "…"
	}
}

// RenderRun prints the full run report: badge, checklist, and evidence
// identifiers, in that order.
func (p *Printer) RenderRun(run *validation.Run) {
	p.RenderBadge(run)
	p.RenderChecklist(run)
	p.RenderIdentifiers(run)
}

// RenderBadge prints the overall status badge for a run.
func (p *Printer) RenderBadge(run *validation.Run) {
	badge := validation.StatusBadge(run)
	label := p.colorize(colorBold+toneColor(badge.Tone), badge.Label)
	if run == nil {
		p.Print("Status: %s\n", label)
		return
	}
	p.Print("Status: %s  (%d/%d checks passed)\n", label,
		run.Summary.ChecksPassed, run.Summary.ChecksTotal)
}

// RenderChecklist prints checks in the server-given order. Failed checks keep
// their evidence summaries; failure evidence is evidence.
func (p *Printer) RenderChecklist(run *validation.Run) {
	for _, item := range validation.Checklist(run) {
		mark := p.colorize(toneColor(item.Tone), toneMark(item.Tone))
		line := fmt.Sprintf("%s [%s] %s", mark, item.ID, item.Name)
		if item.DurationMs != nil {
			line += fmt.Sprintf(" (%dms)", *item.DurationMs)
		}
		p.Println(line)
		if item.EvidenceSummary != "" {
			p.Detail("%s", item.EvidenceSummary)
		}
	}
}

// RenderIdentifiers prints the evidence identifiers, placeholders included.
// Absence is diagnostic, so nothing is omitted.
func (p *Printer) RenderIdentifiers(run *validation.Run) {
	ids := validation.EvidenceIdentifiers(run)
	p.Print("run_id:      %s\n", ids.RunID)
	p.Print("trace_id:    %s\n", ids.TraceID)
	p.Print("workflow_id: %s\n", ids.WorkflowID)
	p.Print("session_id:  %s\n", ids.SessionID)
}

// RenderNarrative prints the persona narrative when one is present.
func (p *Printer) RenderNarrative(persona validation.Persona, run *validation.Run) {
	text, ok := validation.NarrativeFor(persona, run)
	if !ok {
		p.Detail("no narrative for %s", persona)
		return
	}
	p.Step("%s", string(persona))
	p.Println(text)
}

// RenderDataset prints one catalog entry with its anchors.
func (p *Printer) RenderDataset(d validation.Dataset) {
	p.Step("%s  %s", d.ID, d.Name)
	p.Detail("file: %s  size: %s", d.Filename, d.Size)
	p.Detail("hash: %s", d.Hash)
	if len(d.Anchors) > 0 {
		p.Detail("anchors: %s", strings.Join(d.Anchors, ", "))
	}
}
