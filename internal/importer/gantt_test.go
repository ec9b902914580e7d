package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

func newTestNormalizer() *Normalizer {
	seq := 0
	return New(WithIDFunc(func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}))
}

func TestImportGantt_CanonicalShapeIsIdempotent(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"phases": [
			{"name": "Design", "startMonth": 1, "duration": 2, "deliverables": "Wireframes", "color": "blue"},
			{"name": "Build", "startMonth": 3, "duration": 4, "deliverables": "MVP", "color": "green"}
		],
		"timelineMonths": 8
	}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	require.Len(t, res.Phases, 2)

	assert.Equal(t, "Design", res.Phases[0].Name)
	assert.Equal(t, 1.0, res.Phases[0].StartMonth)
	assert.Equal(t, 2.0, res.Phases[0].Duration)
	assert.Equal(t, "Wireframes", res.Phases[0].Deliverables)
	assert.Equal(t, domain.ColorBlue, res.Phases[0].Color)

	assert.Equal(t, domain.ColorGreen, res.Phases[1].Color)
	assert.Equal(t, 8.0, res.TimelineMonths)

	// Fresh id per phase, never taken from input.
	assert.NotEmpty(t, res.Phases[0].ID)
	assert.NotEqual(t, res.Phases[0].ID, res.Phases[1].ID)
}

func TestImportGantt_EndMonthVariant(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{"phases":[{"name":"Design","endMonth":4,"startMonth":2,"deliverables":"Wireframes"}]}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	require.Len(t, res.Phases, 1)
	assert.Equal(t, 2.0, res.Phases[0].StartMonth)
	assert.Equal(t, 3.0, res.Phases[0].Duration)
}

func TestImportGantt_SnakeCaseEndVariant(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{"phases":[{"name":"Rollout","end_month":6,"duration_months":2}]}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Phases[0].StartMonth)
	assert.Equal(t, 2.0, res.Phases[0].Duration)
}

func TestImportGantt_NestedTimelineShape(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"timeline": {
			"totalMonths": 10,
			"phases": [{"name": "Pilot", "startMonth": 1, "endMonth": 3}]
		}
	}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	require.Len(t, res.Phases, 1)
	assert.Equal(t, 3.0, res.Phases[0].Duration)
	assert.Equal(t, 10.0, res.TimelineMonths)
}

func TestImportGantt_SynthesizesDeliverablesFromMonths(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"phases": [{
			"name": "Build",
			"startMonth": 1,
			"duration": 4,
			"months": [
				{"month": 1, "title": "Kickoff", "deliverables": ["Plan", "Backlog"]},
				{"month": 2, "title": "Sprint 1", "deliverables": ["API draft", "Schema"]}
			]
		}]
	}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	// Four deliverables exist; the summary keeps three and truncates.
	assert.Equal(t, "Plan, Backlog, API draft...", res.Phases[0].Deliverables)
}

func TestImportGantt_NormalizesLegacyTasksKey(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"phases": [{
			"name": "Build",
			"months": [{"month": 1, "title": "Kickoff", "tasks": ["Set up repo", "Hire"]}]
		}]
	}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	require.Len(t, res.Phases[0].Months, 1)
	assert.Equal(t, []string{"Set up repo", "Hire"}, res.Phases[0].Months[0].Highlights)
}

func TestImportGantt_DefaultColorCycle(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{"phases":[
		{"name":"P1"},{"name":"P2"},{"name":"P3"},{"name":"P4"},
		{"name":"P5"},{"name":"P6"},{"name":"P7"}
	]}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	require.Len(t, res.Phases, 7)
	assert.Equal(t, domain.ColorPurple, res.Phases[0].Color)
	assert.Equal(t, domain.ColorBlue, res.Phases[1].Color)
	assert.Equal(t, domain.ColorTeal, res.Phases[5].Color)
	// Palette wraps after six.
	assert.Equal(t, domain.ColorPurple, res.Phases[6].Color)
}

func TestImportGantt_InvalidColorFallsBack(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{"phases":[{"name":"P1","color":"chartreuse"}]}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	assert.Equal(t, domain.ColorPurple, res.Phases[0].Color)
}

func TestImportGantt_DerivesTimelineFromPhases(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{"phases":[
		{"name":"P1","startMonth":1,"duration":3},
		{"name":"P2","startMonth":4,"duration":6}
	]}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	// max(startMonth + duration - 1) = 9
	assert.Equal(t, 9.0, res.TimelineMonths)
}

func TestImportGantt_UnnamedPhaseDefaults(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{"phases":[{}]}`)

	res, err := n.ImportGantt(data)
	require.NoError(t, err)
	assert.Equal(t, "Unnamed Phase", res.Phases[0].Name)
	assert.Equal(t, 1.0, res.Phases[0].StartMonth)
	assert.Equal(t, 1.0, res.Phases[0].Duration)
}

func TestImportGantt_Errors(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.ImportGantt([]byte(`not json`))
	require.Error(t, err)

	_, err = n.ImportGantt([]byte(`{"timeline":{}}`))
	assert.ErrorIs(t, err, ErrNoPhases)
}
