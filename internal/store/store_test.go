package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/geometry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	seq := 0
	return New(
		WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestCreateProjectDefaults(t *testing.T) {
	s := newTestStore(t)
	p := s.CreateProject("Rollout")

	require.NotNil(t, p)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Rollout", p.Name)
	assert.Empty(t, p.GanttPhases)
	assert.Empty(t, p.RACITasks)
	assert.Empty(t, p.RACIAssignments)
	assert.Equal(t, float64(domain.DefaultTimelineMonths), p.TimelineMonths)
	assert.Equal(t, domain.UnitMonths, p.TimelineUnit)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestMutationsAreNoOpsWithoutProject(t *testing.T) {
	s := newTestStore(t)

	// None of these may panic or create state.
	s.SetName("x")
	s.AddPhase(domain.GanttPhase{Name: "P"})
	s.UpdatePhase("nope", PhaseUpdate{Name: strPtr("x")})
	s.DeletePhase("nope")
	s.SetRACIValue("t", "s", "R")
	s.ToggleRACILetter("t", "s", "R")
	s.SetTimelineUnit(domain.UnitWeeks)

	assert.Nil(t, s.Project())
}

func TestUpdatedAtRestampedOnMutation(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	current := base
	s := New(WithClock(func() time.Time { return current }))
	s.CreateProject("p")

	current = base.Add(time.Minute)
	s.AddPhase(domain.GanttPhase{Name: "Design"})

	assert.Equal(t, current, s.Project().UpdatedAt)
	assert.Equal(t, base, s.Project().CreatedAt)
}

func TestAddPhaseMintsFreshID(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")

	id := s.AddPhase(domain.GanttPhase{ID: "attacker-chosen", Name: "Design"})

	require.Len(t, s.Project().GanttPhases, 1)
	assert.NotEqual(t, "attacker-chosen", id)
	assert.Equal(t, id, s.Project().GanttPhases[0].ID)
}

func TestUpdatePhaseMergesPartialFields(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	id := s.AddPhase(domain.GanttPhase{Name: "Design", StartMonth: 1, Duration: 2, Deliverables: "Wireframes"})

	s.UpdatePhase(id, PhaseUpdate{Duration: f64Ptr(3.5)})

	phase := s.Project().FindPhase(id)
	require.NotNil(t, phase)
	assert.Equal(t, "Design", phase.Name)
	assert.Equal(t, "Wireframes", phase.Deliverables)
	assert.Equal(t, 3.5, phase.Duration)
}

func TestPhaseDragMovesBar(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	s.SetTimelineMonths(12)
	id := s.AddPhase(domain.GanttPhase{Name: "Design", StartMonth: 2, Duration: 3})

	// 1200px container over 12 months: 100px per month.
	drag, ok := s.BeginPhaseDrag(id, geometry.ModeMove, 400, 1200)
	require.True(t, ok)

	s.ApplyPhaseDrag(id, drag, 650)

	phase := s.Project().FindPhase(id)
	assert.Equal(t, 4.5, phase.StartMonth)
	assert.Equal(t, 3.0, phase.Duration)
}

func TestPhaseDragClampsAtTimelineEdge(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	s.SetTimelineMonths(12)
	id := s.AddPhase(domain.GanttPhase{Name: "Launch", StartMonth: 8, Duration: 4})

	drag, ok := s.BeginPhaseDrag(id, geometry.ModeMove, 0, 1200)
	require.True(t, ok)

	s.ApplyPhaseDrag(id, drag, 5000)

	assert.Equal(t, 9.0, s.Project().FindPhase(id).StartMonth)
}

func TestPhaseDragRejectedUpdateLeavesPhaseUntouched(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	s.SetTimelineMonths(12)
	id := s.AddPhase(domain.GanttPhase{Name: "Design", StartMonth: 2, Duration: 1})
	before := s.Project().UpdatedAt

	// Shrinking a 1-month bar by 2 months would go below the minimum
	// duration, so the drag step proposes nothing.
	drag, ok := s.BeginPhaseDrag(id, geometry.ModeResizeEnd, 300, 1200)
	require.True(t, ok)
	s.ApplyPhaseDrag(id, drag, 100)

	assert.Equal(t, 1.0, s.Project().FindPhase(id).Duration)
	assert.Equal(t, before, s.Project().UpdatedAt)
}

func TestBeginPhaseDragUnknownID(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")

	_, ok := s.BeginPhaseDrag("missing", geometry.ModeMove, 0, 1200)
	assert.False(t, ok)
}

func TestUpdatePhaseUnknownIDIgnored(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	s.AddPhase(domain.GanttPhase{Name: "Design"})

	s.UpdatePhase("missing", PhaseUpdate{Name: strPtr("Renamed")})

	assert.Equal(t, "Design", s.Project().GanttPhases[0].Name)
}

func TestLoadGanttTemplateReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	s.AddPhase(domain.GanttPhase{Name: "Old"})

	style := &domain.TemplateStyle{Background: "#FFFFFF"}
	s.LoadGanttTemplate([]domain.GanttPhase{
		{Name: "Phase 1", StartMonth: 1, Duration: 2},
		{Name: "Phase 2", StartMonth: 3, Duration: 2},
	}, 6, style)

	p := s.Project()
	require.Len(t, p.GanttPhases, 2)
	assert.Equal(t, "Phase 1", p.GanttPhases[0].Name)
	assert.NotEmpty(t, p.GanttPhases[0].ID)
	assert.NotEqual(t, p.GanttPhases[0].ID, p.GanttPhases[1].ID)
	assert.Equal(t, 6.0, p.TimelineMonths)
	assert.Equal(t, style, p.GanttTemplateStyle)
}

func TestSetTimelineUnitConversion(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	assert.Equal(t, 12.0, s.Project().TimelineMonths)

	s.SetTimelineUnit(domain.UnitWeeks)
	assert.Equal(t, domain.UnitWeeks, s.Project().TimelineUnit)
	assert.Equal(t, 48.0, s.Project().TimelineMonths)

	s.SetTimelineUnit(domain.UnitMonths)
	assert.Equal(t, 12.0, s.Project().TimelineMonths)

	// Same unit twice does not convert again.
	s.SetTimelineUnit(domain.UnitMonths)
	assert.Equal(t, 12.0, s.Project().TimelineMonths)
}

func TestSetTimelineUnitRoundTripIsLossy(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	s.SetTimelineMonths(5)
	s.SetTimelineUnit(domain.UnitWeeks)
	assert.Equal(t, 20.0, s.Project().TimelineMonths)

	s.SetTimelineMonths(18) // user trims the week count
	s.SetTimelineUnit(domain.UnitMonths)
	// 18/4 rounds to 5, not back to 4.5; documented rounding, never below 1.
	assert.Equal(t, 5.0, s.Project().TimelineMonths)

	s.SetTimelineMonths(1)
	s.SetTimelineUnit(domain.UnitWeeks)
	s.SetTimelineMonths(1)
	s.SetTimelineUnit(domain.UnitMonths)
	assert.Equal(t, 1.0, s.Project().TimelineMonths)
}

func TestSetRACIValueUpsertsByPair(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	taskID := s.AddTask(domain.RACITask{TaskName: "Build API"})
	shID := s.AddStakeholder(domain.RACIStakeholder{Name: "Dev"})

	s.SetRACIValue(taskID, shID, "R")
	s.SetRACIValue(taskID, shID, "A/R") // replaces, normalized

	p := s.Project()
	require.Len(t, p.RACIAssignments, 1)
	assert.Equal(t, "R/A", p.RACIAssignments[0].Value)

	s.SetRACIValue(taskID, shID, "")
	assert.Empty(t, s.Project().RACIAssignments)
}

func TestToggleRACILetterMaintainsCanonicalOrder(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	taskID := s.AddTask(domain.RACITask{TaskName: "Deploy"})
	shID := s.AddStakeholder(domain.RACIStakeholder{Name: "Ops"})

	s.ToggleRACILetter(taskID, shID, "A")
	s.ToggleRACILetter(taskID, shID, "R")
	assert.Equal(t, "R/A", s.Project().AssignmentValue(taskID, shID))

	s.ToggleRACILetter(taskID, shID, "R")
	assert.Equal(t, "A", s.Project().AssignmentValue(taskID, shID))

	s.ToggleRACILetter(taskID, shID, "A")
	assert.Empty(t, s.Project().RACIAssignments)
}

func TestDeleteTaskCascadesAssignments(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	t1 := s.AddTask(domain.RACITask{TaskName: "Design"})
	t2 := s.AddTask(domain.RACITask{TaskName: "Build"})
	sh := s.AddStakeholder(domain.RACIStakeholder{Name: "PM"})
	s.SetRACIValue(t1, sh, "R")
	s.SetRACIValue(t2, sh, "A")

	s.DeleteTask(t1)

	p := s.Project()
	require.Len(t, p.RACITasks, 1)
	assert.Equal(t, t2, p.RACITasks[0].ID)
	require.Len(t, p.RACIAssignments, 1)
	assert.Equal(t, t2, p.RACIAssignments[0].TaskID)
}

func TestDeleteStakeholderCascadesAssignments(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")
	t1 := s.AddTask(domain.RACITask{TaskName: "Design"})
	s1 := s.AddStakeholder(domain.RACIStakeholder{Name: "PM"})
	s.SetRACIValue(t1, s1, "R")

	s.DeleteStakeholder(s1)

	p := s.Project()
	assert.Empty(t, p.RACIAssignments)
	assert.Empty(t, p.RACIStakeholders)
	// The task itself survives.
	require.Len(t, p.RACITasks, 1)
	assert.Equal(t, t1, p.RACITasks[0].ID)
}

func TestArchitectureAndFlowchartCRUD(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("p")

	cID := s.AddComponent(domain.ArchitectureComponent{Name: "API", Type: domain.ComponentBackend})
	s.UpdateComponent(cID, ComponentUpdate{Position: &domain.Position{X: 10, Y: 20}})
	require.Len(t, s.Project().ArchitectureComponents, 1)
	assert.Equal(t, 10.0, s.Project().ArchitectureComponents[0].Position.X)

	s.SetArchitectureMermaidCode("graph TB\n  A --> B")
	assert.Contains(t, s.Project().ArchitectureMermaidCode, "A --> B")

	stepID := s.AddStep(domain.FlowchartStep{Label: "Start", Type: domain.StepStart})
	s.UpdateStep(stepID, StepUpdate{Label: strPtr("Begin")})
	assert.Equal(t, "Begin", s.Project().FlowchartSteps[0].Label)

	s.DeleteComponent(cID)
	s.DeleteStep(stepID)
	assert.Empty(t, s.Project().ArchitectureComponents)
	assert.Empty(t, s.Project().FlowchartSteps)
}

func TestChangeListenerFiresPerMutation(t *testing.T) {
	calls := 0
	s := New(WithChangeListener(func(p *domain.Project) { calls++ }))
	s.CreateProject("p")
	s.AddPhase(domain.GanttPhase{Name: "Design"})
	s.SetName("renamed")

	assert.Equal(t, 3, calls)

	// No-op mutations on unknown ids still count as mutations only when the
	// project exists; with no project nothing fires.
	s2 := New(WithChangeListener(func(p *domain.Project) { calls++ }))
	before := calls
	s2.SetName("x")
	assert.Equal(t, before, calls)
}
