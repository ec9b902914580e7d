package template

import (
	"strings"
	"time"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

const sowMermaid = `graph TB
    subgraph "Client Layer"
        Web[Web Application<br/>React]
    end

    subgraph "API Layer"
        Gateway[API Gateway]
        Auth[Auth Service]
    end

    subgraph "Application Layer"
        API[REST API<br/>Node.js]
    end

    subgraph "Data Layer"
        DB[(PostgreSQL<br/>Database)]
        Cache[(Redis<br/>Cache)]
    end

    Web --> Gateway
    Gateway --> Auth
    Gateway --> API
    API --> DB
    API --> Cache

    style Web fill:#61DAFB,stroke:#000,stroke-width:2px
    style Gateway fill:#FF6C37,stroke:#000,stroke-width:2px
    style Auth fill:#6DB33F,stroke:#000,stroke-width:2px
    style API fill:#68A063,stroke:#000,stroke-width:2px
    style DB fill:#336791,stroke:#000,stroke-width:2px
    style Cache fill:#DC382D,stroke:#000,stroke-width:2px`

const proposalMermaid = `graph LR
    Client[Client Portal<br/>Web Application]
    Server[Application Server<br/>Business Logic]
    DB[(Database<br/>Data Storage)]

    Client --> Server
    Server --> DB

    style Client fill:#61DAFB,stroke:#000,stroke-width:2px
    style Server fill:#68A063,stroke:#000,stroke-width:2px
    style DB fill:#336791,stroke:#000,stroke-width:2px`

// StarterProject builds a fully populated project document for the named
// starter ("sow" or "proposal"). Returns nil for unknown names. The newID
// func mints ids for the phases and flowchart steps; RACI rows keep stable
// ids so the canned assignments can reference them.
func StarterProject(name string, newID func() string, now time.Time) *domain.Project {
	switch strings.ToLower(name) {
	case "sow":
		return sowStarter(newID, now)
	case "proposal":
		return proposalStarter(newID, now)
	default:
		return nil
	}
}

// StarterNames lists the available starter projects.
func StarterNames() []string {
	return []string{"sow", "proposal"}
}

func sowStarter(newID func() string, now time.Time) *domain.Project {
	return &domain.Project{
		ID:             newID(),
		Name:           "SOW Project",
		TimelineMonths: 12,
		TimelineUnit:   domain.UnitMonths,
		GanttPhases: []domain.GanttPhase{
			{ID: newID(), Name: "Discovery & Planning", StartMonth: 1, Duration: 2,
				Deliverables: "Requirements document, Project plan, Technical architecture",
				Color:        domain.ColorPurple},
			{ID: newID(), Name: "Design & Development", StartMonth: 3, Duration: 4,
				Deliverables: "UI/UX designs, Core features, Database schema",
				Color:        domain.ColorBlue},
			{ID: newID(), Name: "Testing & QA", StartMonth: 7, Duration: 2,
				Deliverables: "Test cases, Bug fixes, Performance optimization",
				Color:        domain.ColorGreen},
			{ID: newID(), Name: "Deployment & Support", StartMonth: 9, Duration: 2,
				Deliverables: "Production deployment, User training, Documentation",
				Color:        domain.ColorOrange},
		},
		RACITasks: []domain.RACITask{
			{ID: "task-1", TaskName: "Requirements Gathering", Description: "Collect and document project requirements"},
			{ID: "task-2", TaskName: "System Design", Description: "Design system architecture and components"},
			{ID: "task-3", TaskName: "Frontend Development", Description: "Build user interface and client-side logic"},
			{ID: "task-4", TaskName: "Backend Development", Description: "Implement server-side logic and APIs"},
			{ID: "task-5", TaskName: "Quality Assurance", Description: "Test and verify system functionality"},
			{ID: "task-6", TaskName: "Deployment", Description: "Deploy to production environment"},
		},
		RACIStakeholders: []domain.RACIStakeholder{
			{ID: "sh-1", Name: "Project Manager", Role: "Management"},
			{ID: "sh-2", Name: "Tech Lead", Role: "Technical"},
			{ID: "sh-3", Name: "Business Analyst", Role: "Analysis"},
			{ID: "sh-4", Name: "Development Team", Role: "Engineering"},
			{ID: "sh-5", Name: "QA Team", Role: "Quality"},
		},
		RACIAssignments: []domain.RACIAssignment{
			{TaskID: "task-1", StakeholderID: "sh-3", Value: "R"},
			{TaskID: "task-1", StakeholderID: "sh-1", Value: "A"},
			{TaskID: "task-1", StakeholderID: "sh-4", Value: "I"},
			{TaskID: "task-2", StakeholderID: "sh-2", Value: "R"},
			{TaskID: "task-2", StakeholderID: "sh-1", Value: "A"},
			{TaskID: "task-2", StakeholderID: "sh-4", Value: "C"},
			{TaskID: "task-3", StakeholderID: "sh-4", Value: "R"},
			{TaskID: "task-3", StakeholderID: "sh-2", Value: "A"},
			{TaskID: "task-3", StakeholderID: "sh-5", Value: "I"},
			{TaskID: "task-4", StakeholderID: "sh-4", Value: "R"},
			{TaskID: "task-4", StakeholderID: "sh-2", Value: "A"},
			{TaskID: "task-5", StakeholderID: "sh-5", Value: "R"},
			{TaskID: "task-5", StakeholderID: "sh-1", Value: "A"},
			{TaskID: "task-5", StakeholderID: "sh-4", Value: "C"},
			{TaskID: "task-6", StakeholderID: "sh-2", Value: "R"},
			{TaskID: "task-6", StakeholderID: "sh-1", Value: "A"},
			{TaskID: "task-6", StakeholderID: "sh-4", Value: "C"},
		},
		ArchitectureComponents:  []domain.ArchitectureComponent{},
		ArchitectureMermaidCode: sowMermaid,
		FlowchartSteps: []domain.FlowchartStep{
			{ID: newID(), Label: "Start", Type: domain.StepStart, Position: domain.Position{X: 250, Y: 50}},
			{ID: newID(), Label: "User Authentication", Type: domain.StepProcess, Position: domain.Position{X: 250, Y: 150}},
			{ID: newID(), Label: "Valid Credentials?", Type: domain.StepDecision, Position: domain.Position{X: 250, Y: 250}},
			{ID: newID(), Label: "Access Granted", Type: domain.StepEnd, Position: domain.Position{X: 250, Y: 350}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func proposalStarter(newID func() string, now time.Time) *domain.Project {
	return &domain.Project{
		ID:             newID(),
		Name:           "Proposal Project",
		TimelineMonths: 6,
		TimelineUnit:   domain.UnitMonths,
		GanttPhases: []domain.GanttPhase{
			{ID: newID(), Name: "Research & Analysis", StartMonth: 1, Duration: 1,
				Deliverables: "Market research, Competitive analysis",
				Color:        domain.ColorPurple},
			{ID: newID(), Name: "Proposal Development", StartMonth: 2, Duration: 2,
				Deliverables: "Technical proposal, Cost estimation, Timeline",
				Color:        domain.ColorBlue},
			{ID: newID(), Name: "Review & Finalization", StartMonth: 4, Duration: 1,
				Deliverables: "Final proposal document, Presentation deck",
				Color:        domain.ColorGreen},
		},
		RACITasks: []domain.RACITask{
			{ID: "task-p1", TaskName: "Market Research", Description: "Analyze market and competitors"},
			{ID: "task-p2", TaskName: "Technical Writing", Description: "Write technical sections"},
			{ID: "task-p3", TaskName: "Cost Estimation", Description: "Calculate project costs"},
			{ID: "task-p4", TaskName: "Final Review", Description: "Review and approve proposal"},
		},
		RACIStakeholders: []domain.RACIStakeholder{
			{ID: "sh-p1", Name: "Sales Director", Role: "Sales"},
			{ID: "sh-p2", Name: "Proposal Manager", Role: "Management"},
			{ID: "sh-p3", Name: "Research Team", Role: "Research"},
			{ID: "sh-p4", Name: "Finance Team", Role: "Finance"},
		},
		RACIAssignments: []domain.RACIAssignment{
			{TaskID: "task-p1", StakeholderID: "sh-p3", Value: "R"},
			{TaskID: "task-p1", StakeholderID: "sh-p1", Value: "A"},
			{TaskID: "task-p2", StakeholderID: "sh-p2", Value: "R"},
			{TaskID: "task-p2", StakeholderID: "sh-p1", Value: "A"},
			{TaskID: "task-p3", StakeholderID: "sh-p4", Value: "R"},
			{TaskID: "task-p3", StakeholderID: "sh-p1", Value: "A"},
			{TaskID: "task-p3", StakeholderID: "sh-p2", Value: "C"},
			{TaskID: "task-p4", StakeholderID: "sh-p2", Value: "R"},
			{TaskID: "task-p4", StakeholderID: "sh-p1", Value: "A"},
		},
		ArchitectureComponents:  []domain.ArchitectureComponent{},
		ArchitectureMermaidCode: proposalMermaid,
		FlowchartSteps: []domain.FlowchartStep{
			{ID: newID(), Label: "Receive RFP", Type: domain.StepStart, Position: domain.Position{X: 250, Y: 50}},
			{ID: newID(), Label: "Analyze Requirements", Type: domain.StepProcess, Position: domain.Position{X: 250, Y: 150}},
			{ID: newID(), Label: "Submit Proposal", Type: domain.StepEnd, Position: domain.Position{X: 250, Y: 250}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
