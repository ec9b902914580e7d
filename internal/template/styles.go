// Package template ships the built-in Gantt style packs and starter
// projects, and loads user-supplied packs from JSON files.
package template

import (
	"fmt"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// StylePack is a named visual theme bundled with demo phase geometry. The
// phases carry no ids; the store mints fresh ones when a pack loads.
type StylePack struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Category       string               `json:"category"`
	TimelineMonths float64              `json:"timelineMonths"`
	Phases         []domain.GanttPhase  `json:"phases"`
	Style          domain.TemplateStyle `json:"style"`
}

// stylePhases lays out the six demo bars every pack ships with, colored
// from the pack's own sequence.
func stylePhases(colors [6]domain.PhaseColor) []domain.GanttPhase {
	geometry := []struct {
		start, duration float64
	}{
		{1, 2}, {2.5, 2}, {4.5, 1.5}, {6, 2.5}, {8.5, 1.5}, {10, 2},
	}
	phases := make([]domain.GanttPhase, len(geometry))
	for i, g := range geometry {
		phases[i] = domain.GanttPhase{
			Name:         fmt.Sprintf("Phase %d", i+1),
			StartMonth:   g.start,
			Duration:     g.duration,
			Deliverables: "Key deliverables",
			Color:        colors[i],
		}
	}
	return phases
}

// BuiltinStylePacks returns the packs bundled with the application.
func BuiltinStylePacks() []StylePack {
	return []StylePack{
		{
			ID:             "purple-gold-bold",
			Name:           "Purple Gold Bold",
			Description:    "Bold purple background with golden bars and thick borders",
			Category:       "Bold",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorPurple, domain.ColorPink, domain.ColorPurple,
				domain.ColorPink, domain.ColorPurple, domain.ColorPink,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(135deg, #7C3AED 10%, #9333EA 90%)",
				HeaderBg:        "#5B21B6",
				HeaderText:      "#FFFFFF",
				RowBg:           "#C4B5A0",
				RowBorder:       "#7C3AED",
				BarStyle:        "flat",
				BarBorder:       "3px solid #7C3AED",
				MonthHeaderBg:   "#7C3AED",
				MonthHeaderText: "#FFFFFF",
				GridLines:       "#7C3AED",
				Shadow:          "0 4px 6px rgba(124, 58, 237, 0.3)",
			},
		},
		{
			ID:             "neon-dark",
			Name:           "Neon Dark Glow",
			Description:    "Dark background with glowing neon purple and cyan bars",
			Category:       "Dark",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorPurple, domain.ColorCyan, domain.ColorIndigo,
				domain.ColorTeal, domain.ColorPurple, domain.ColorCyan,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(135deg, #0F172A 0%, #1E293B 100%)",
				HeaderBg:        "#1E293B",
				HeaderText:      "#A78BFA",
				RowBg:           "rgba(30, 41, 59, 0.5)",
				RowBorder:       "#7C3AED",
				BarStyle:        "glow",
				BarBorder:       "2px solid rgba(124, 58, 237, 0.8)",
				MonthHeaderBg:   "rgba(124, 58, 237, 0.3)",
				MonthHeaderText: "#E0E7FF",
				GridLines:       "rgba(124, 58, 237, 0.3)",
				Shadow:          "0 0 20px rgba(124, 58, 237, 0.6)",
			},
		},
		{
			ID:             "clean-business",
			Name:           "Clean Business",
			Description:    "White background with colorful category bands",
			Category:       "Professional",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorPurple, domain.ColorGreen, domain.ColorBlue,
				domain.ColorPink, domain.ColorOrange, domain.ColorRed,
			}),
			Style: domain.TemplateStyle{
				Background:      "#FFFFFF",
				HeaderBg:        "#F9FAFB",
				HeaderText:      "#111827",
				RowBg:           "#FFFFFF",
				RowBorder:       "#E5E7EB",
				BarStyle:        "rounded",
				BarBorder:       "1px solid rgba(0,0,0,0.1)",
				MonthHeaderBg:   "#F3F4F6",
				MonthHeaderText: "#374151",
				GridLines:       "#E5E7EB",
				Shadow:          "0 1px 3px rgba(0,0,0,0.1)",
			},
		},
		{
			ID:             "minimal-green",
			Name:           "Minimal Green",
			Description:    "Light background with green hexagonal headers",
			Category:       "Minimal",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorGreen, domain.ColorTeal, domain.ColorGreen,
				domain.ColorCyan, domain.ColorGreen, domain.ColorTeal,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(to bottom, #F0FDF4, #FFFFFF)",
				HeaderBg:        "#065F46",
				HeaderText:      "#FFFFFF",
				RowBg:           "#F9FAFB",
				RowBorder:       "#D1D5DB",
				BarStyle:        "rounded",
				BarBorder:       "none",
				MonthHeaderBg:   "#ECFDF5",
				MonthHeaderText: "#065F46",
				GridLines:       "#E5E7EB",
				Shadow:          "0 1px 2px rgba(0,0,0,0.05)",
			},
		},
		{
			ID:             "gradient-rainbow",
			Name:           "Gradient Rainbow",
			Description:    "Vibrant gradient background with rainbow bars",
			Category:       "Colorful",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorPink, domain.ColorOrange, domain.ColorYellow,
				domain.ColorGreen, domain.ColorCyan, domain.ColorPurple,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(135deg, #FEE2E2 0%, #DBEAFE 100%)",
				HeaderBg:        "linear-gradient(90deg, #FF6B6B, #4ECDC4)",
				HeaderText:      "#FFFFFF",
				RowBg:           "rgba(255, 255, 255, 0.9)",
				RowBorder:       "rgba(0,0,0,0.1)",
				BarStyle:        "gradient",
				BarBorder:       "none",
				MonthHeaderBg:   "rgba(255, 255, 255, 0.8)",
				MonthHeaderText: "#374151",
				GridLines:       "rgba(0,0,0,0.05)",
				Shadow:          "0 4px 6px rgba(0,0,0,0.1)",
			},
		},
		{
			ID:             "corporate-blue",
			Name:           "Corporate Blue",
			Description:    "Professional blue and gray theme",
			Category:       "Professional",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorBlue, domain.ColorIndigo, domain.ColorCyan,
				domain.ColorBlue, domain.ColorIndigo, domain.ColorCyan,
			}),
			Style: domain.TemplateStyle{
				Background:      "#F8FAFC",
				HeaderBg:        "#1E40AF",
				HeaderText:      "#FFFFFF",
				RowBg:           "#FFFFFF",
				RowBorder:       "#CBD5E1",
				BarStyle:        "flat",
				BarBorder:       "1px solid rgba(30, 64, 175, 0.2)",
				MonthHeaderBg:   "#EFF6FF",
				MonthHeaderText: "#1E40AF",
				GridLines:       "#E2E8F0",
				Shadow:          "0 1px 3px rgba(0,0,0,0.1)",
			},
		},
		{
			ID:             "warm-sunset",
			Name:           "Warm Sunset",
			Description:    "Warm oranges and reds with soft glow",
			Category:       "Warm",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorOrange, domain.ColorRed, domain.ColorYellow,
				domain.ColorOrange, domain.ColorPink, domain.ColorRed,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(135deg, #FFF7ED 0%, #FEF2F2 100%)",
				HeaderBg:        "linear-gradient(90deg, #F97316, #DC2626)",
				HeaderText:      "#FFFFFF",
				RowBg:           "rgba(255, 255, 255, 0.95)",
				RowBorder:       "#FED7AA",
				BarStyle:        "rounded",
				BarBorder:       "none",
				MonthHeaderBg:   "#FFEDD5",
				MonthHeaderText: "#9A3412",
				GridLines:       "#FED7AA",
				Shadow:          "0 2px 4px rgba(249, 115, 22, 0.2)",
			},
		},
		{
			ID:             "glass-modern",
			Name:           "Glass Modern",
			Description:    "Glassmorphism with frosted glass effect",
			Category:       "Modern",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorIndigo, domain.ColorPurple, domain.ColorPink,
				domain.ColorCyan, domain.ColorTeal, domain.ColorBlue,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(135deg, #6366F1 0%, #8B5CF6 100%)",
				HeaderBg:        "rgba(255, 255, 255, 0.2)",
				HeaderText:      "#FFFFFF",
				RowBg:           "rgba(255, 255, 255, 0.1)",
				RowBorder:       "rgba(255, 255, 255, 0.2)",
				BarStyle:        "rounded",
				BarBorder:       "1px solid rgba(255, 255, 255, 0.3)",
				MonthHeaderBg:   "rgba(255, 255, 255, 0.15)",
				MonthHeaderText: "#FFFFFF",
				GridLines:       "rgba(255, 255, 255, 0.1)",
				Shadow:          "0 8px 32px rgba(31, 38, 135, 0.37)",
			},
		},
		{
			ID:             "retro-vintage",
			Name:           "Retro Vintage",
			Description:    "Vintage brown and beige with classic feel",
			Category:       "Vintage",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorOrange, domain.ColorYellow, domain.ColorRed,
				domain.ColorOrange, domain.ColorYellow, domain.ColorRed,
			}),
			Style: domain.TemplateStyle{
				Background:      "#FEF3C7",
				HeaderBg:        "#78350F",
				HeaderText:      "#FEF3C7",
				RowBg:           "#FFFBEB",
				RowBorder:       "#92400E",
				BarStyle:        "flat",
				BarBorder:       "2px solid #92400E",
				MonthHeaderBg:   "#FDE68A",
				MonthHeaderText: "#78350F",
				GridLines:       "#D97706",
				Shadow:          "0 2px 4px rgba(120, 53, 15, 0.2)",
			},
		},
		{
			ID:             "pastel-soft",
			Name:           "Pastel Soft",
			Description:    "Soft pastel colors with gentle gradients",
			Category:       "Soft",
			TimelineMonths: 12,
			Phases: stylePhases([6]domain.PhaseColor{
				domain.ColorPink, domain.ColorOrange, domain.ColorYellow,
				domain.ColorTeal, domain.ColorCyan, domain.ColorPurple,
			}),
			Style: domain.TemplateStyle{
				Background:      "linear-gradient(135deg, #FDE2E4 0%, #E2ECE9 100%)",
				HeaderBg:        "#FDB4C4",
				HeaderText:      "#831843",
				RowBg:           "rgba(255, 255, 255, 0.7)",
				RowBorder:       "#F9C8D5",
				BarStyle:        "rounded",
				BarBorder:       "none",
				MonthHeaderBg:   "#FCE4EC",
				MonthHeaderText: "#881337",
				GridLines:       "#FBCFE8",
				Shadow:          "0 2px 4px rgba(244, 114, 182, 0.15)",
			},
		},
	}
}

// StylePackByID returns the built-in pack with the given id, or nil.
func StylePackByID(id string) *StylePack {
	packs := BuiltinStylePacks()
	for i := range packs {
		if packs[i].ID == id {
			return &packs[i]
		}
	}
	return nil
}

// Categories returns the distinct pack categories in declaration order.
func Categories() []string {
	seen := map[string]bool{}
	var categories []string
	for _, pack := range BuiltinStylePacks() {
		if !seen[pack.Category] {
			seen[pack.Category] = true
			categories = append(categories, pack.Category)
		}
	}
	return categories
}
