package domain

import "strings"

// RACITask is one row of the RACI matrix.
type RACITask struct {
	ID          string `json:"id"`
	TaskName    string `json:"taskName"`
	Description string `json:"description,omitempty"`
}

// RACIStakeholder is one column of the RACI matrix.
type RACIStakeholder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// RACIAssignment relates one task to one stakeholder. Value is a non-empty
// "/"-joined subset of R, A, C, I in canonical order (e.g. "R/A"); an
// unassigned pair simply has no entry.
type RACIAssignment struct {
	TaskID        string `json:"taskId"`
	StakeholderID string `json:"stakeholderId"`
	Value         string `json:"value"`
}

// raciOrder fixes the canonical letter ordering R < A < C < I.
var raciOrder = []string{"R", "A", "C", "I"}

// NormalizeRACIValue rewrites a raw cell value into canonical form: letters
// uppercased, deduplicated, invalid letters dropped, ordered R/A/C/I.
// Returns "" if nothing valid remains.
func NormalizeRACIValue(raw string) string {
	present := map[string]bool{}
	for _, part := range strings.Split(raw, "/") {
		letter := strings.ToUpper(strings.TrimSpace(part))
		for _, valid := range raciOrder {
			if letter == valid {
				present[letter] = true
			}
		}
	}
	var out []string
	for _, letter := range raciOrder {
		if present[letter] {
			out = append(out, letter)
		}
	}
	return strings.Join(out, "/")
}

// ToggleRACILetter adds the letter to the cell value if absent, removes it if
// present, keeping canonical ordering. Returns "" when the last letter is
// removed, meaning the assignment should be cleared.
func ToggleRACILetter(current, letter string) string {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	valid := false
	for _, l := range raciOrder {
		if letter == l {
			valid = true
		}
	}
	if !valid {
		return NormalizeRACIValue(current)
	}

	present := map[string]bool{}
	if current != "" {
		for _, part := range strings.Split(current, "/") {
			present[strings.ToUpper(strings.TrimSpace(part))] = true
		}
	}
	present[letter] = !present[letter]

	var out []string
	for _, l := range raciOrder {
		if present[l] {
			out = append(out, l)
		}
	}
	return strings.Join(out, "/")
}
