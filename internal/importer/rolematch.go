package importer

import (
	"regexp"
	"strings"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// Role keys on inline-format RACI tasks rarely match stakeholder names
// exactly; the AI service abbreviates ("PM", "MPS") and hand-written JSON
// drifts in casing and punctuation. RoleMatcher resolves such keys against
// the imported stakeholder list: exact simplified match first, substring
// match in either direction second, with a fixed synonym table for known
// abbreviations.
type RoleMatcher struct {
	mapping map[string]int
	keys    []string // insertion order, keeps substring fallback deterministic
}

var parenAbbrev = regexp.MustCompile(`\(([^)]+)\)`)

// roleSynonyms maps a substring of a stakeholder display name to the
// abbreviations that should resolve to it.
var roleSynonyms = map[string][]string{
	"ministry of public service": {"mps"},
	"pilot ministries":           {"pilotministries"},
	"mindmap digital":            {"mindmapdigital", "mindmap"},
	"government it":              {"govit", "governmentit"},
	"compliance officer":         {"complianceofficer"},
	"steering committee":         {"steeringcommittee"},
	"project manager":            {"pm"},
}

// SimplifyRoleKey lowercases and strips everything but letters and digits,
// so "Project Manager", "project-manager", and "ProjectManager" collide.
func SimplifyRoleKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewRoleMatcher builds the lookup table for a stakeholder list. Later
// stakeholders never displace earlier entries for the same simplified key.
func NewRoleMatcher(stakeholders []domain.RACIStakeholder) *RoleMatcher {
	m := &RoleMatcher{mapping: make(map[string]int)}
	for i, sh := range stakeholders {
		m.put(SimplifyRoleKey(sh.Name), i)

		// Abbreviation in parentheses, e.g. "Ministry of Finance (MoF)".
		if match := parenAbbrev.FindStringSubmatch(sh.Name); match != nil {
			m.put(SimplifyRoleKey(match[1]), i)
		}

		lower := strings.ToLower(sh.Name)
		for needle, abbrevs := range roleSynonyms {
			if strings.Contains(lower, needle) {
				for _, a := range abbrevs {
					m.put(a, i)
				}
			}
		}
	}
	return m
}

func (m *RoleMatcher) put(key string, index int) {
	if key == "" {
		return
	}
	if _, exists := m.mapping[key]; !exists {
		m.mapping[key] = index
		m.keys = append(m.keys, key)
	}
}

// Match resolves a raw role key to a stakeholder index. Exact simplified
// match wins; otherwise the first table entry that contains the key, or that
// the key contains, is taken.
func (m *RoleMatcher) Match(key string) (int, bool) {
	simplified := SimplifyRoleKey(key)
	if simplified == "" {
		return 0, false
	}
	if idx, ok := m.mapping[simplified]; ok {
		return idx, true
	}
	for _, mapped := range m.keys {
		if strings.Contains(mapped, simplified) || strings.Contains(simplified, mapped) {
			return m.mapping[mapped], true
		}
	}
	return 0, false
}
