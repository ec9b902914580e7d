package domain

type TimelineUnit string

const (
	UnitWeeks  TimelineUnit = "weeks"
	UnitMonths TimelineUnit = "months"
)

type PhaseColor string

const (
	ColorPurple PhaseColor = "purple"
	ColorBlue   PhaseColor = "blue"
	ColorGreen  PhaseColor = "green"
	ColorOrange PhaseColor = "orange"
	ColorPink   PhaseColor = "pink"
	ColorTeal   PhaseColor = "teal"
	ColorRed    PhaseColor = "red"
	ColorIndigo PhaseColor = "indigo"
	ColorYellow PhaseColor = "yellow"
	ColorCyan   PhaseColor = "cyan"
)

// DefaultPhasePalette is the cycle of colors assigned to imported phases
// that carry no explicit color.
var DefaultPhasePalette = []PhaseColor{
	ColorPurple, ColorBlue, ColorGreen, ColorOrange, ColorPink, ColorTeal,
}

// ValidPhaseColors is the canonical set of accepted phase color strings.
var ValidPhaseColors = map[string]bool{
	"purple": true, "blue": true, "green": true, "orange": true,
	"pink": true, "teal": true, "red": true, "indigo": true,
	"yellow": true, "cyan": true,
}

type ComponentType string

const (
	ComponentFrontend ComponentType = "frontend"
	ComponentBackend  ComponentType = "backend"
	ComponentDatabase ComponentType = "database"
	ComponentService  ComponentType = "service"
)

type FlowchartStepType string

const (
	StepStart    FlowchartStepType = "start"
	StepProcess  FlowchartStepType = "process"
	StepDecision FlowchartStepType = "decision"
	StepEnd      FlowchartStepType = "end"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionTrialing  SubscriptionStatus = "trialing"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)
