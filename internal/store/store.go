package store

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/geometry"
)

// ChangeListener is invoked after every successful mutation with the new
// document state. Used by the autosave layer to schedule persistence.
type ChangeListener func(p *domain.Project)

// Store is the single authoritative holder of the current project document.
// Every mutation is a whole-document replace that restamps UpdatedAt; when no
// project is loaded all mutations are silent no-ops. The store is not safe
// for concurrent use: callers serialize access, matching the single-writer
// event model of the editing surface.
type Store struct {
	project  *domain.Project
	now      func() time.Time
	newID    func() string
	onChange ChangeListener
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides id minting. Used by tests.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithChangeListener registers a listener notified after each mutation.
func WithChangeListener(fn ChangeListener) Option {
	return func(s *Store) { s.onChange = fn }
}

// New creates an empty Store holding no project.
func New(opts ...Option) *Store {
	s := &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Project returns the current document, or nil when none is loaded.
func (s *Store) Project() *domain.Project {
	return s.project
}

// CreateProject replaces the state with a fresh empty document.
func (s *Store) CreateProject(name string) *domain.Project {
	now := s.now()
	s.project = &domain.Project{
		ID:                     s.newID(),
		Name:                   name,
		GanttPhases:            []domain.GanttPhase{},
		RACITasks:              []domain.RACITask{},
		RACIStakeholders:       []domain.RACIStakeholder{},
		RACIAssignments:        []domain.RACIAssignment{},
		ArchitectureComponents: []domain.ArchitectureComponent{},
		FlowchartSteps:         []domain.FlowchartStep{},
		TimelineMonths:         domain.DefaultTimelineMonths,
		TimelineUnit:           domain.UnitMonths,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	s.notify()
	return s.project
}

// SetProject replaces the state with a document loaded from storage.
func (s *Store) SetProject(p *domain.Project) {
	s.project = p
	s.notify()
}

// SetName renames the project.
func (s *Store) SetName(name string) {
	s.mutate(func(p *domain.Project) {
		p.Name = name
	})
}

// SetTimelineMonths sets the horizontal scale of the Gantt view.
func (s *Store) SetTimelineMonths(months float64) {
	s.mutate(func(p *domain.Project) {
		p.TimelineMonths = months
	})
}

// SetTimelineUnit switches between weeks and months, converting the timeline
// length by a factor of four. The weeks-to-months direction rounds and is
// therefore lossy; the result never drops below one unit.
func (s *Store) SetTimelineUnit(unit domain.TimelineUnit) {
	s.mutate(func(p *domain.Project) {
		if p.TimelineUnit != unit {
			if unit == domain.UnitWeeks {
				p.TimelineMonths = math.Round(p.TimelineMonths * 4)
			} else {
				p.TimelineMonths = math.Max(1, math.Round(p.TimelineMonths/4))
			}
		}
		p.TimelineUnit = unit
	})
}

// PhaseUpdate holds the optional fields of a phase edit; nil fields are left
// unchanged.
type PhaseUpdate struct {
	Name         *string
	BarLabel     *string
	StartMonth   *float64
	Duration     *float64
	Deliverables *string
	Color        *domain.PhaseColor
	Months       *[]domain.MonthlyBreakdown
}

// AddPhase appends a phase with a freshly minted id and returns the id.
func (s *Store) AddPhase(phase domain.GanttPhase) string {
	var id string
	s.mutate(func(p *domain.Project) {
		phase.ID = s.newID()
		id = phase.ID
		p.GanttPhases = append(p.GanttPhases, phase)
	})
	return id
}

// UpdatePhase merges the non-nil fields of upd into the phase with the given
// id. Unknown ids are silently ignored.
func (s *Store) UpdatePhase(id string, upd PhaseUpdate) {
	s.mutate(func(p *domain.Project) {
		phase := p.FindPhase(id)
		if phase == nil {
			return
		}
		if upd.Name != nil {
			phase.Name = *upd.Name
		}
		if upd.BarLabel != nil {
			phase.BarLabel = *upd.BarLabel
		}
		if upd.StartMonth != nil {
			phase.StartMonth = *upd.StartMonth
		}
		if upd.Duration != nil {
			phase.Duration = *upd.Duration
		}
		if upd.Deliverables != nil {
			phase.Deliverables = *upd.Deliverables
		}
		if upd.Color != nil {
			phase.Color = *upd.Color
		}
		if upd.Months != nil {
			phase.Months = *upd.Months
		}
	})
}

// BeginPhaseDrag snapshots the named phase for a pointer drag on the timeline.
// The second return is false when no such phase exists or no project is
// loaded.
func (s *Store) BeginPhaseDrag(id string, mode geometry.Mode, pointerX, containerWidth float64) (geometry.Drag, bool) {
	if s.project == nil {
		return geometry.Drag{}, false
	}
	phase := s.project.FindPhase(id)
	if phase == nil {
		return geometry.Drag{}, false
	}
	return geometry.Begin(mode, pointerX, phase.StartMonth, phase.Duration, containerWidth, s.project.TimelineMonths), true
}

// ApplyPhaseDrag applies the drag state at the current pointer position to the
// named phase. A pointer position outside the clamp envelope leaves the phase
// untouched.
func (s *Store) ApplyPhaseDrag(id string, drag geometry.Drag, pointerX float64) {
	upd := drag.Move(pointerX)
	if upd.StartMonth == nil && upd.Duration == nil {
		return
	}
	s.UpdatePhase(id, PhaseUpdate{StartMonth: upd.StartMonth, Duration: upd.Duration})
}

// DeletePhase removes the phase with the given id. Phases have no dependents,
// so no cascade is needed.
func (s *Store) DeletePhase(id string) {
	s.mutate(func(p *domain.Project) {
		out := p.GanttPhases[:0]
		for _, phase := range p.GanttPhases {
			if phase.ID != id {
				out = append(out, phase)
			}
		}
		p.GanttPhases = out
	})
}

// LoadGanttTemplate replaces the Gantt phases, timeline length, and visual
// style wholesale. Each incoming phase gets a freshly minted id.
func (s *Store) LoadGanttTemplate(phases []domain.GanttPhase, timelineMonths float64, style *domain.TemplateStyle) {
	s.mutate(func(p *domain.Project) {
		fresh := make([]domain.GanttPhase, len(phases))
		for i, phase := range phases {
			phase.ID = s.newID()
			fresh[i] = phase
		}
		p.GanttPhases = fresh
		p.TimelineMonths = timelineMonths
		p.GanttTemplateStyle = style
	})
}

// TaskUpdate holds the optional fields of a RACI task edit.
type TaskUpdate struct {
	TaskName    *string
	Description *string
}

// AddTask appends a RACI task with a freshly minted id and returns the id.
func (s *Store) AddTask(task domain.RACITask) string {
	var id string
	s.mutate(func(p *domain.Project) {
		task.ID = s.newID()
		id = task.ID
		p.RACITasks = append(p.RACITasks, task)
	})
	return id
}

// UpdateTask merges the non-nil fields of upd into the task with the given id.
func (s *Store) UpdateTask(id string, upd TaskUpdate) {
	s.mutate(func(p *domain.Project) {
		task := p.FindTask(id)
		if task == nil {
			return
		}
		if upd.TaskName != nil {
			task.TaskName = *upd.TaskName
		}
		if upd.Description != nil {
			task.Description = *upd.Description
		}
	})
}

// DeleteTask removes the task and cascade-deletes every assignment
// referencing it, so the matrix never holds dangling ids.
func (s *Store) DeleteTask(id string) {
	s.mutate(func(p *domain.Project) {
		tasks := p.RACITasks[:0]
		for _, t := range p.RACITasks {
			if t.ID != id {
				tasks = append(tasks, t)
			}
		}
		p.RACITasks = tasks

		assignments := p.RACIAssignments[:0]
		for _, a := range p.RACIAssignments {
			if a.TaskID != id {
				assignments = append(assignments, a)
			}
		}
		p.RACIAssignments = assignments
	})
}

// StakeholderUpdate holds the optional fields of a stakeholder edit.
type StakeholderUpdate struct {
	Name *string
	Role *string
}

// AddStakeholder appends a stakeholder with a freshly minted id and returns the id.
func (s *Store) AddStakeholder(sh domain.RACIStakeholder) string {
	var id string
	s.mutate(func(p *domain.Project) {
		sh.ID = s.newID()
		id = sh.ID
		p.RACIStakeholders = append(p.RACIStakeholders, sh)
	})
	return id
}

// UpdateStakeholder merges the non-nil fields of upd into the stakeholder
// with the given id.
func (s *Store) UpdateStakeholder(id string, upd StakeholderUpdate) {
	s.mutate(func(p *domain.Project) {
		sh := p.FindStakeholder(id)
		if sh == nil {
			return
		}
		if upd.Name != nil {
			sh.Name = *upd.Name
		}
		if upd.Role != nil {
			sh.Role = *upd.Role
		}
	})
}

// DeleteStakeholder removes the stakeholder and cascade-deletes every
// assignment referencing it.
func (s *Store) DeleteStakeholder(id string) {
	s.mutate(func(p *domain.Project) {
		stakeholders := p.RACIStakeholders[:0]
		for _, sh := range p.RACIStakeholders {
			if sh.ID != id {
				stakeholders = append(stakeholders, sh)
			}
		}
		p.RACIStakeholders = stakeholders

		assignments := p.RACIAssignments[:0]
		for _, a := range p.RACIAssignments {
			if a.StakeholderID != id {
				assignments = append(assignments, a)
			}
		}
		p.RACIAssignments = assignments
	})
}

// SetRACIValue upserts the assignment for a (task, stakeholder) pair. The
// value is normalized to canonical R/A/C/I ordering; an empty (or fully
// invalid) value removes the entry. At most one entry ever exists per pair.
func (s *Store) SetRACIValue(taskID, stakeholderID, value string) {
	s.mutate(func(p *domain.Project) {
		value = domain.NormalizeRACIValue(value)

		out := p.RACIAssignments[:0]
		for _, a := range p.RACIAssignments {
			if !(a.TaskID == taskID && a.StakeholderID == stakeholderID) {
				out = append(out, a)
			}
		}
		if value != "" {
			out = append(out, domain.RACIAssignment{
				TaskID:        taskID,
				StakeholderID: stakeholderID,
				Value:         value,
			})
		}
		p.RACIAssignments = out
	})
}

// ToggleRACILetter flips one letter in the cell for a (task, stakeholder)
// pair, keeping canonical ordering. Removing the last letter clears the cell.
func (s *Store) ToggleRACILetter(taskID, stakeholderID, letter string) {
	if s.project == nil {
		return
	}
	current := s.project.AssignmentValue(taskID, stakeholderID)
	s.SetRACIValue(taskID, stakeholderID, domain.ToggleRACILetter(current, letter))
}

// ReplaceRACIMatrix replaces the tasks, stakeholders, and assignments
// wholesale. Used by the import pipeline after normalization succeeds.
func (s *Store) ReplaceRACIMatrix(tasks []domain.RACITask, stakeholders []domain.RACIStakeholder, assignments []domain.RACIAssignment) {
	s.mutate(func(p *domain.Project) {
		p.RACITasks = tasks
		p.RACIStakeholders = stakeholders
		p.RACIAssignments = assignments
	})
}

// ReplaceGanttChart replaces the phases, timeline scale, and style wholesale.
// Used by the import pipeline after normalization succeeds.
func (s *Store) ReplaceGanttChart(phases []domain.GanttPhase, timelineMonths float64, unit domain.TimelineUnit, style *domain.TemplateStyle) {
	s.mutate(func(p *domain.Project) {
		p.GanttPhases = phases
		p.TimelineMonths = timelineMonths
		p.TimelineUnit = unit
		p.GanttTemplateStyle = style
	})
}

// ComponentUpdate holds the optional fields of an architecture component edit.
type ComponentUpdate struct {
	Name     *string
	Type     *domain.ComponentType
	Position *domain.Position
}

// AddComponent appends an architecture component and returns its minted id.
func (s *Store) AddComponent(c domain.ArchitectureComponent) string {
	var id string
	s.mutate(func(p *domain.Project) {
		c.ID = s.newID()
		id = c.ID
		p.ArchitectureComponents = append(p.ArchitectureComponents, c)
	})
	return id
}

// UpdateComponent merges the non-nil fields of upd into the component with
// the given id.
func (s *Store) UpdateComponent(id string, upd ComponentUpdate) {
	s.mutate(func(p *domain.Project) {
		for i := range p.ArchitectureComponents {
			if p.ArchitectureComponents[i].ID != id {
				continue
			}
			if upd.Name != nil {
				p.ArchitectureComponents[i].Name = *upd.Name
			}
			if upd.Type != nil {
				p.ArchitectureComponents[i].Type = *upd.Type
			}
			if upd.Position != nil {
				p.ArchitectureComponents[i].Position = *upd.Position
			}
			return
		}
	})
}

// DeleteComponent removes the component with the given id.
func (s *Store) DeleteComponent(id string) {
	s.mutate(func(p *domain.Project) {
		out := p.ArchitectureComponents[:0]
		for _, c := range p.ArchitectureComponents {
			if c.ID != id {
				out = append(out, c)
			}
		}
		p.ArchitectureComponents = out
	})
}

// SetArchitectureMermaidCode replaces the architecture diagram source text.
func (s *Store) SetArchitectureMermaidCode(code string) {
	s.mutate(func(p *domain.Project) {
		p.ArchitectureMermaidCode = code
	})
}

// StepUpdate holds the optional fields of a flowchart step edit.
type StepUpdate struct {
	Label    *string
	Type     *domain.FlowchartStepType
	Position *domain.Position
}

// AddStep appends a flowchart step and returns its minted id.
func (s *Store) AddStep(step domain.FlowchartStep) string {
	var id string
	s.mutate(func(p *domain.Project) {
		step.ID = s.newID()
		id = step.ID
		p.FlowchartSteps = append(p.FlowchartSteps, step)
	})
	return id
}

// UpdateStep merges the non-nil fields of upd into the step with the given id.
func (s *Store) UpdateStep(id string, upd StepUpdate) {
	s.mutate(func(p *domain.Project) {
		for i := range p.FlowchartSteps {
			if p.FlowchartSteps[i].ID != id {
				continue
			}
			if upd.Label != nil {
				p.FlowchartSteps[i].Label = *upd.Label
			}
			if upd.Type != nil {
				p.FlowchartSteps[i].Type = *upd.Type
			}
			if upd.Position != nil {
				p.FlowchartSteps[i].Position = *upd.Position
			}
			return
		}
	})
}

// DeleteStep removes the step with the given id.
func (s *Store) DeleteStep(id string) {
	s.mutate(func(p *domain.Project) {
		out := p.FlowchartSteps[:0]
		for _, step := range p.FlowchartSteps {
			if step.ID != id {
				out = append(out, step)
			}
		}
		p.FlowchartSteps = out
	})
}

// mutate runs fn against the current project and restamps UpdatedAt. A nil
// project makes the whole call a no-op.
func (s *Store) mutate(fn func(p *domain.Project)) {
	if s.project == nil {
		return
	}
	fn(s.project)
	s.project.UpdatedAt = s.now()
	s.notify()
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.project)
	}
}
