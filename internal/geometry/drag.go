// Package geometry translates pointer-drag deltas on the Gantt timeline into
// clamped phase start/duration values.
package geometry

import "math"

// Mode selects how a drag affects the phase bar.
type Mode string

const (
	ModeMove        Mode = "move"
	ModeResizeStart Mode = "resize-start"
	ModeResizeEnd   Mode = "resize-end"
)

// MinDuration is the smallest bar extent a resize may produce.
const MinDuration = 0.5

// Drag is the immutable snapshot taken when a drag begins: the pointer
// position, the phase geometry at that instant, and the pixel width of the
// timeline container. All later pointer positions are interpreted against
// this snapshot, not against intermediate states, so the bar tracks the
// pointer without accumulating rounding drift.
type Drag struct {
	Mode           Mode
	StartX         float64
	StartMonth     float64
	Duration       float64
	ContainerWidth float64
	TimelineMonths float64
}

// Update is a proposed phase edit. Nil fields mean "leave unchanged"; a drag
// step outside the clamp envelope proposes nothing.
type Update struct {
	StartMonth *float64
	Duration   *float64
}

// Begin captures a drag snapshot. ContainerWidth and TimelineMonths must be
// positive; Move returns no updates otherwise.
func Begin(mode Mode, pointerX, startMonth, duration, containerWidth, timelineMonths float64) Drag {
	return Drag{
		Mode:           mode,
		StartX:         pointerX,
		StartMonth:     startMonth,
		Duration:       duration,
		ContainerWidth: containerWidth,
		TimelineMonths: timelineMonths,
	}
}

// Move computes the phase update for the current pointer position.
//
// The pixel delta converts linearly into timeline units. Move clamps the
// start into [1, timeline-duration+1]; resize-start applies only while the
// new duration stays >= MinDuration and the new start >= 1; resize-end
// applies only while MinDuration <= duration <= timeline-start+1. Results
// round to two decimals for sub-unit positioning without float noise.
func (d Drag) Move(pointerX float64) Update {
	if d.ContainerWidth <= 0 || d.TimelineMonths <= 0 {
		return Update{}
	}

	deltaMonths := (pointerX - d.StartX) * (d.TimelineMonths / d.ContainerWidth)

	switch d.Mode {
	case ModeMove:
		newStart := d.StartMonth + deltaMonths
		clamped := math.Max(1, math.Min(d.TimelineMonths-d.Duration+1, newStart))
		return Update{StartMonth: round2Ptr(clamped)}

	case ModeResizeStart:
		newStart := d.StartMonth + deltaMonths
		newDuration := d.Duration - deltaMonths
		if newDuration >= MinDuration && newStart >= 1 {
			return Update{StartMonth: round2Ptr(newStart), Duration: round2Ptr(newDuration)}
		}
		return Update{}

	case ModeResizeEnd:
		newDuration := d.Duration + deltaMonths
		maxDuration := d.TimelineMonths - d.StartMonth + 1
		if newDuration >= MinDuration && newDuration <= maxDuration {
			return Update{Duration: round2Ptr(newDuration)}
		}
		return Update{}
	}

	return Update{}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2Ptr(v float64) *float64 {
	r := Round2(v)
	return &r
}
