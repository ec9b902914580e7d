package domain

import "time"

// DefaultTimelineMonths is the horizontal scale a fresh project starts with.
const DefaultTimelineMonths = 12

// Project is the aggregate root of one editable document: the Gantt timeline,
// the RACI matrix, and the auxiliary architecture/flowchart diagrams.
type Project struct {
	ID                      string                  `json:"id"`
	Name                    string                  `json:"name"`
	GanttPhases             []GanttPhase            `json:"ganttPhases"`
	GanttTemplateStyle      *TemplateStyle          `json:"ganttTemplateStyle,omitempty"`
	RACITasks               []RACITask              `json:"raciTasks"`
	RACIStakeholders        []RACIStakeholder       `json:"raciStakeholders"`
	RACIAssignments         []RACIAssignment        `json:"raciAssignments"`
	ArchitectureComponents  []ArchitectureComponent `json:"architectureComponents"`
	ArchitectureMermaidCode string                  `json:"architectureMermaidCode,omitempty"`
	FlowchartSteps          []FlowchartStep         `json:"flowchartSteps"`
	TimelineMonths          float64                 `json:"timelineMonths"`
	TimelineUnit            TimelineUnit            `json:"timelineUnit"`
	CreatedAt               time.Time               `json:"createdAt"`
	UpdatedAt               time.Time               `json:"updatedAt"`
}

// FindPhase returns the phase with the given id, or nil.
func (p *Project) FindPhase(id string) *GanttPhase {
	for i := range p.GanttPhases {
		if p.GanttPhases[i].ID == id {
			return &p.GanttPhases[i]
		}
	}
	return nil
}

// FindTask returns the RACI task with the given id, or nil.
func (p *Project) FindTask(id string) *RACITask {
	for i := range p.RACITasks {
		if p.RACITasks[i].ID == id {
			return &p.RACITasks[i]
		}
	}
	return nil
}

// FindStakeholder returns the stakeholder with the given id, or nil.
func (p *Project) FindStakeholder(id string) *RACIStakeholder {
	for i := range p.RACIStakeholders {
		if p.RACIStakeholders[i].ID == id {
			return &p.RACIStakeholders[i]
		}
	}
	return nil
}

// AssignmentValue returns the RACI value for a (task, stakeholder) pair, or
// the empty string when the pair is unassigned.
func (p *Project) AssignmentValue(taskID, stakeholderID string) string {
	for _, a := range p.RACIAssignments {
		if a.TaskID == taskID && a.StakeholderID == stakeholderID {
			return a.Value
		}
	}
	return ""
}
