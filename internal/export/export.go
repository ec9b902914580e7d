// Package export serializes project documents for download and renders
// Mermaid code from the diagram collections.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// Document renders the project as indented JSON suitable for download or
// re-import.
func Document(p *domain.Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project document: %w", err)
	}
	return data, nil
}

// layerOrder fixes the top-to-bottom placement of architecture layers.
var layerOrder = []domain.ComponentType{
	domain.ComponentFrontend,
	domain.ComponentBackend,
	domain.ComponentService,
	domain.ComponentDatabase,
}

var layerNames = map[domain.ComponentType]string{
	domain.ComponentFrontend: "Frontend Layer",
	domain.ComponentBackend:  "Backend Layer",
	domain.ComponentService:  "Service Layer",
	domain.ComponentDatabase: "Data Layer",
}

var layerColors = map[domain.ComponentType]string{
	domain.ComponentFrontend: "#61DAFB",
	domain.ComponentBackend:  "#68A063",
	domain.ComponentService:  "#8B5CF6",
	domain.ComponentDatabase: "#336791",
}

// ArchitectureMermaid renders the component list as a layered Mermaid
// graph. Hand-written Mermaid code on the document takes precedence over
// generation.
func ArchitectureMermaid(p *domain.Project) string {
	if p.ArchitectureMermaidCode != "" {
		return p.ArchitectureMermaidCode
	}
	if len(p.ArchitectureComponents) == 0 {
		return ""
	}

	byLayer := map[domain.ComponentType][]domain.ArchitectureComponent{}
	for _, c := range p.ArchitectureComponents {
		byLayer[c.Type] = append(byLayer[c.Type], c)
	}

	var b strings.Builder
	b.WriteString("graph TB\n")
	for _, layer := range layerOrder {
		components := byLayer[layer]
		if len(components) == 0 {
			continue
		}
		sortByPosition(components)
		fmt.Fprintf(&b, "\n    subgraph %q\n", layerNames[layer])
		for _, c := range components {
			fmt.Fprintf(&b, "        %s\n", componentNode(c))
		}
		b.WriteString("    end\n")
	}

	b.WriteString("\n")
	for _, layer := range layerOrder {
		for _, c := range byLayer[layer] {
			fmt.Fprintf(&b, "    style %s fill:%s,stroke:#000,stroke-width:2px\n",
				nodeID(c.ID), layerColors[layer])
		}
	}
	return b.String()
}

// FlowchartMermaid renders the step list as Mermaid flowchart code. Steps
// chain top to bottom in vertical position order.
func FlowchartMermaid(p *domain.Project) string {
	if len(p.FlowchartSteps) == 0 {
		return ""
	}

	steps := make([]domain.FlowchartStep, len(p.FlowchartSteps))
	copy(steps, p.FlowchartSteps)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Position.Y < steps[j].Position.Y
	})

	var b strings.Builder
	b.WriteString("flowchart TD\n")
	for _, step := range steps {
		fmt.Fprintf(&b, "    %s\n", stepNode(step))
	}
	b.WriteString("\n")
	for i := 0; i < len(steps)-1; i++ {
		fmt.Fprintf(&b, "    %s --> %s\n", nodeID(steps[i].ID), nodeID(steps[i+1].ID))
	}
	return b.String()
}

func componentNode(c domain.ArchitectureComponent) string {
	label := escapeLabel(c.Name)
	if c.Type == domain.ComponentDatabase {
		return fmt.Sprintf("%s[(%s)]", nodeID(c.ID), label)
	}
	return fmt.Sprintf("%s[%s]", nodeID(c.ID), label)
}

func stepNode(s domain.FlowchartStep) string {
	label := escapeLabel(s.Label)
	switch s.Type {
	case domain.StepStart, domain.StepEnd:
		return fmt.Sprintf("%s([%s])", nodeID(s.ID), label)
	case domain.StepDecision:
		return fmt.Sprintf("%s{%s}", nodeID(s.ID), label)
	default:
		return fmt.Sprintf("%s[%s]", nodeID(s.ID), label)
	}
}

// nodeID strips characters Mermaid cannot carry in identifiers.
func nodeID(id string) string {
	var b strings.Builder
	b.WriteString("n")
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeLabel(label string) string {
	return strings.NewReplacer("[", "(", "]", ")", "{", "(", "}", ")", `"`, "'").Replace(label)
}

func sortByPosition(components []domain.ArchitectureComponent) {
	sort.SliceStable(components, func(i, j int) bool {
		if components[i].Position.X != components[j].Position.X {
			return components[i].Position.X < components[j].Position.X
		}
		return components[i].Position.Y < components[j].Position.Y
	})
}
