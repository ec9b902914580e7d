package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mindmapdigital/projectflow/internal/domain"
)

var testExternalIDCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithSubscriptionStatus(s domain.SubscriptionStatus) UserOption {
	return func(u *domain.User) {
		u.SubscriptionStatus = s
	}
}

func WithSubscriptionPlan(plan string) UserOption {
	return func(u *domain.User) {
		u.SubscriptionPlan = plan
	}
}

func WithSubscriptionID(id string) UserOption {
	return func(u *domain.User) {
		u.SubscriptionID = id
	}
}

func WithSubscriptionWindow(start, end time.Time) UserOption {
	return func(u *domain.User) {
		u.SubscriptionStart = &start
		u.SubscriptionEnd = &end
	}
}

func NewTestUser(email string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	n := testExternalIDCounter.Add(1)
	u := &domain.User{
		ID:                 uuid.New().String(),
		ExternalID:         fmt.Sprintf("ext-user-%03d", n),
		Email:              email,
		SubscriptionStatus: domain.SubscriptionActive,
		SubscriptionPlan:   "starter",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithTimeline(months float64, unit domain.TimelineUnit) ProjectOption {
	return func(p *domain.Project) {
		p.TimelineMonths = months
		p.TimelineUnit = unit
	}
}

func WithPhases(phases ...domain.GanttPhase) ProjectOption {
	return func(p *domain.Project) {
		p.GanttPhases = append(p.GanttPhases, phases...)
	}
}

func WithRACIMatrix(tasks []domain.RACITask, stakeholders []domain.RACIStakeholder, assignments []domain.RACIAssignment) ProjectOption {
	return func(p *domain.Project) {
		p.RACITasks = tasks
		p.RACIStakeholders = stakeholders
		p.RACIAssignments = assignments
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:                     uuid.New().String(),
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
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestPhase builds a phase with the given geometry and a deterministic id.
func NewTestPhase(name string, start, duration float64) domain.GanttPhase {
	return domain.GanttPhase{
		ID:           uuid.New().String(),
		Name:         name,
		StartMonth:   start,
		Duration:     duration,
		Deliverables: "",
		Color:        domain.ColorPurple,
	}
}
