package domain

// GanttPhase is one bar on the Gantt timeline. StartMonth and Duration are
// fractional to allow sub-unit positioning while dragging.
type GanttPhase struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	BarLabel     string             `json:"barLabel,omitempty"`
	StartMonth   float64            `json:"startMonth"`
	Duration     float64            `json:"duration"`
	Deliverables string             `json:"deliverables"`
	Color        PhaseColor         `json:"color,omitempty"`
	Months       []MonthlyBreakdown `json:"months,omitempty"`
}

// EndMonth returns the last timeline unit the phase occupies.
func (g *GanttPhase) EndMonth() float64 {
	return g.StartMonth + g.Duration - 1
}

// MonthlyBreakdown details one month inside a phase.
type MonthlyBreakdown struct {
	Month        int      `json:"month"`
	Title        string   `json:"title"`
	Highlights   []string `json:"highlights,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
	Milestones   []string `json:"milestones,omitempty"`
}

// TemplateStyle is a visual theme for the Gantt view. It is replaced
// wholesale when a template pack loads; the store never merges it.
type TemplateStyle struct {
	Background      string `json:"background"`
	HeaderBg        string `json:"headerBg"`
	HeaderText      string `json:"headerText"`
	RowBg           string `json:"rowBg"`
	RowBorder       string `json:"rowBorder"`
	BarStyle        string `json:"barStyle"`
	BarBorder       string `json:"barBorder"`
	MonthHeaderBg   string `json:"monthHeaderBg"`
	MonthHeaderText string `json:"monthHeaderText"`
	GridLines       string `json:"gridLines"`
	Shadow          string `json:"shadow"`
}

// ArchitectureComponent is one node of the architecture diagram.
type ArchitectureComponent struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     ComponentType `json:"type"`
	Position Position      `json:"position"`
}

// FlowchartStep is one node of the flowchart diagram.
type FlowchartStep struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Type     FlowchartStepType `json:"type"`
	Position Position          `json:"position"`
}

// Position is a diagram canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
