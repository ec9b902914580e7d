package template

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// LoadStylePack reads and validates a style pack JSON file.
func LoadStylePack(path string) (*StylePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pack StylePack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing style pack: %w", err)
	}
	if err := validatePack(&pack); err != nil {
		return nil, fmt.Errorf("invalid style pack %q: %w", path, err)
	}
	return &pack, nil
}

func validatePack(pack *StylePack) error {
	if pack.ID == "" {
		return fmt.Errorf("missing id")
	}
	if pack.Name == "" {
		return fmt.Errorf("missing name")
	}
	if pack.TimelineMonths <= 0 {
		pack.TimelineMonths = domain.DefaultTimelineMonths
	}
	for i := range pack.Phases {
		phase := &pack.Phases[i]
		if phase.Name == "" {
			return fmt.Errorf("phase %d: missing name", i)
		}
		if phase.Duration <= 0 {
			return fmt.Errorf("phase %d: duration must be positive", i)
		}
		if phase.Color != "" && !domain.ValidPhaseColors[string(phase.Color)] {
			return fmt.Errorf("phase %d: unknown color %q", i, phase.Color)
		}
	}
	return nil
}
