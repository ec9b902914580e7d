package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// GanttResult is the canonical fragment produced by a Gantt import, ready to
// replace the project's timeline wholesale.
type GanttResult struct {
	Phases         []domain.GanttPhase
	TimelineMonths float64
	TimelineUnit   domain.TimelineUnit
	Style          *domain.TemplateStyle
}

// ganttEnvelope is the recognized top-level shape. Phases live either flat or
// nested under "timeline"; the nested form wins when both are present.
type ganttEnvelope struct {
	Timeline       *ganttTimeline        `json:"timeline"`
	Phases         []ganttPhaseInput     `json:"phases"`
	TimelineMonths *float64              `json:"timelineMonths"`
	Duration       *float64              `json:"duration"`
	TimelineUnit   string                `json:"timelineUnit"`
	Style          *domain.TemplateStyle `json:"style"`
}

type ganttTimeline struct {
	Phases      []ganttPhaseInput `json:"phases"`
	TotalMonths *float64          `json:"totalMonths"`
}

// ganttPhaseInput accepts every phase key variant seen in the wild. Aliased
// fields resolve in a fixed order (see resolveGeometry and resolve below).
type ganttPhaseInput struct {
	Name           string       `json:"name"`
	Phase          string       `json:"phase"`
	StartMonth     *float64     `json:"startMonth"`
	Start          *float64     `json:"start"`
	EndMonth       *float64     `json:"endMonth"`
	EndMonthSnake  *float64     `json:"end_month"`
	Duration       *float64     `json:"duration"`
	DurationMonths *float64     `json:"duration_months"`
	Deliverables   string       `json:"deliverables"`
	KeyDeliverable string       `json:"key_deliverable"`
	Deliverable    string       `json:"deliverable"`
	BarLabel       string       `json:"barLabel"`
	Color          string       `json:"color"`
	Months         []monthInput `json:"months"`
}

// monthInput accepts "highlights" (canonical) or "tasks" (legacy) for the
// per-month task list.
type monthInput struct {
	Month        int      `json:"month"`
	Title        string   `json:"title"`
	Highlights   []string `json:"highlights"`
	Tasks        []string `json:"tasks"`
	Deliverables []string `json:"deliverables"`
	Milestones   []string `json:"milestones"`
}

// maxSynthesizedDeliverables caps how many month-level deliverable strings
// get folded into a phase summary before truncating with "...".
const maxSynthesizedDeliverables = 3

// ImportGantt normalizes a Gantt payload of unknown shape into a canonical
// fragment. Every phase gets a freshly minted id. Any failure returns a
// single error and no partial result.
func (n *Normalizer) ImportGantt(data []byte) (*GanttResult, error) {
	var env ganttEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing import data: %w", err)
	}

	inputs := env.Phases
	var totalMonths *float64
	if env.Timeline != nil {
		if len(env.Timeline.Phases) > 0 {
			inputs = env.Timeline.Phases
		}
		totalMonths = env.Timeline.TotalMonths
	}
	if len(inputs) == 0 {
		return nil, ErrNoPhases
	}

	phases := make([]domain.GanttPhase, len(inputs))
	maxEnd := 0.0
	for i, in := range inputs {
		phase := n.resolvePhase(in, i)
		phases[i] = phase
		if end := phase.EndMonth(); end > maxEnd {
			maxEnd = end
		}
	}

	timelineMonths := domain.FirstFloat(maxEnd, totalMonths, env.TimelineMonths, env.Duration)
	if timelineMonths <= 0 {
		timelineMonths = domain.DefaultTimelineMonths
	}

	unit := domain.UnitMonths
	if env.TimelineUnit == string(domain.UnitWeeks) {
		unit = domain.UnitWeeks
	}

	return &GanttResult{
		Phases:         phases,
		TimelineMonths: timelineMonths,
		TimelineUnit:   unit,
		Style:          env.Style,
	}, nil
}

func (n *Normalizer) resolvePhase(in ganttPhaseInput, index int) domain.GanttPhase {
	start, duration := resolveGeometry(in)

	deliverables := domain.FirstNonEmpty(in.Deliverables, in.KeyDeliverable, in.Deliverable)
	if deliverables == "" {
		deliverables = synthesizeDeliverables(in.Months)
	}

	return domain.GanttPhase{
		ID:           n.newID(),
		Name:         domain.FirstNonEmpty(in.Name, in.Phase, "Unnamed Phase"),
		BarLabel:     in.BarLabel,
		StartMonth:   start,
		Duration:     duration,
		Deliverables: deliverables,
		Color:        resolveColor(in.Color, index),
		Months:       normalizeMonths(in.Months),
	}
}

// resolveGeometry derives startMonth and duration from the three recognized
// encodings, in order: startMonth+endMonth, end_month+duration_months, then
// plain startMonth/start + duration/duration_months with defaults of 1.
func resolveGeometry(in ganttPhaseInput) (start, duration float64) {
	start = domain.FirstFloat(1, in.StartMonth, in.Start)
	duration = domain.FirstFloat(1, in.Duration, in.DurationMonths)

	switch {
	case in.EndMonth != nil && in.StartMonth != nil:
		duration = *in.EndMonth - *in.StartMonth + 1
	case in.EndMonthSnake != nil && in.DurationMonths != nil:
		duration = *in.DurationMonths
		start = *in.EndMonthSnake - duration + 1
	}
	return start, duration
}

// synthesizeDeliverables flattens month-level deliverables into a short
// phase summary when the phase itself carries none.
func synthesizeDeliverables(months []monthInput) string {
	var all []string
	for _, m := range months {
		for _, d := range m.Deliverables {
			if d != "" {
				all = append(all, d)
			}
		}
	}
	if len(all) == 0 {
		return ""
	}
	if len(all) > maxSynthesizedDeliverables {
		return strings.Join(all[:maxSynthesizedDeliverables], ", ") + "..."
	}
	return strings.Join(all, ", ")
}

func normalizeMonths(months []monthInput) []domain.MonthlyBreakdown {
	if len(months) == 0 {
		return nil
	}
	out := make([]domain.MonthlyBreakdown, len(months))
	for i, m := range months {
		highlights := m.Highlights
		if len(highlights) == 0 {
			highlights = m.Tasks
		}
		out[i] = domain.MonthlyBreakdown{
			Month:        m.Month,
			Title:        m.Title,
			Highlights:   highlights,
			Deliverables: m.Deliverables,
			Milestones:   m.Milestones,
		}
	}
	return out
}

// resolveColor keeps an explicitly given valid color; anything else falls
// back to the default palette cycled by phase index.
func resolveColor(raw string, index int) domain.PhaseColor {
	if domain.ValidPhaseColors[raw] {
		return domain.PhaseColor(raw)
	}
	return domain.DefaultPhasePalette[index%len(domain.DefaultPhasePalette)]
}
