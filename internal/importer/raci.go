package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

// RACIResult is the canonical fragment produced by a RACI import, ready to
// replace the project's matrix wholesale.
type RACIResult struct {
	Tasks        []domain.RACITask
	Stakeholders []domain.RACIStakeholder
	Assignments  []domain.RACIAssignment
}

// raciEnvelope recognizes the flat body and the nested "raciMatrix" wrapper;
// the nested form wins when present.
type raciEnvelope struct {
	RACIMatrix *raciBody `json:"raciMatrix"`
	raciBody
}

// raciBody holds stakeholders and tasks as raw messages because both accept
// either plain strings or objects. Assignments, when present as an explicit
// map, take priority over inline per-task role keys.
type raciBody struct {
	Stakeholders []json.RawMessage            `json:"stakeholders"`
	Roles        []json.RawMessage            `json:"roles"`
	Tasks        []json.RawMessage            `json:"tasks"`
	Assignments  map[string]map[string]string `json:"assignments"`
}

// taskFieldNames are the keys on an inline-format task object that describe
// the task itself; every other key is treated as a stakeholder reference.
var taskFieldNames = map[string]bool{
	"activity": true, "taskName": true, "name": true,
	"category": true, "description": true,
}

// ImportRACI normalizes a RACI payload of unknown shape into a canonical
// fragment. Stakeholders and tasks get freshly minted ids; assignments are
// resolved against those ids. Unmatched role keys are logged and skipped
// rather than failing the import.
func (n *Normalizer) ImportRACI(data []byte) (*RACIResult, error) {
	var env raciEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing import data: %w", err)
	}

	body := env.raciBody
	if env.RACIMatrix != nil {
		body = *env.RACIMatrix
	}

	rawStakeholders := body.Stakeholders
	if len(rawStakeholders) == 0 {
		rawStakeholders = body.Roles
	}
	if len(rawStakeholders) == 0 && len(body.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	stakeholders := make([]domain.RACIStakeholder, 0, len(rawStakeholders))
	for _, raw := range rawStakeholders {
		sh, err := n.parseStakeholder(raw)
		if err != nil {
			return nil, err
		}
		stakeholders = append(stakeholders, sh)
	}

	tasks := make([]domain.RACITask, 0, len(body.Tasks))
	inline := make([]map[string]string, 0, len(body.Tasks)) // role key -> value per task
	for _, raw := range body.Tasks {
		task, roleValues, err := n.parseTask(raw)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
		inline = append(inline, roleValues)
	}

	var assignments []domain.RACIAssignment
	if len(body.Assignments) > 0 {
		assignments = n.resolveExplicitAssignments(body.Assignments, tasks, stakeholders)
	} else {
		assignments = n.resolveInlineAssignments(inline, tasks, stakeholders)
	}

	return &RACIResult{
		Tasks:        tasks,
		Stakeholders: stakeholders,
		Assignments:  assignments,
	}, nil
}

// parseStakeholder accepts "Name (Role)" / "Name - Role" strings or
// {name, role} objects.
func (n *Normalizer) parseStakeholder(raw json.RawMessage) (domain.RACIStakeholder, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		name, role := splitNameAndRole(s)
		return domain.RACIStakeholder{ID: n.newID(), Name: name, Role: role}, nil
	}

	var obj struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.RACIStakeholder{}, fmt.Errorf("parsing stakeholder entry: %w", err)
	}
	name := obj.Name
	if name == "" {
		name = "Unnamed Stakeholder"
	}
	return domain.RACIStakeholder{ID: n.newID(), Name: name, Role: obj.Role}, nil
}

// splitNameAndRole breaks "Name (Role)" or "Name - Role" into parts; with no
// separator the whole string is the name.
func splitNameAndRole(s string) (name, role string) {
	idx := strings.IndexAny(s, "(-")
	if idx < 0 {
		return strings.TrimSpace(s), ""
	}
	name = strings.TrimSpace(s[:idx])
	if name == "" {
		name = strings.TrimSpace(s)
	}
	role = strings.TrimSpace(strings.Trim(s[idx+1:], ")] "))
	return name, role
}

// parseTask accepts plain strings or objects carrying activity/taskName/name
// plus category/description. Every other object key is collected as an
// inline role reference.
func (n *Normalizer) parseTask(raw json.RawMessage) (domain.RACITask, map[string]string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.RACITask{ID: n.newID(), TaskName: s}, nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.RACITask{}, nil, fmt.Errorf("parsing task entry: %w", err)
	}

	str := func(key string) string {
		var v string
		if raw, ok := fields[key]; ok {
			_ = json.Unmarshal(raw, &v)
		}
		return v
	}

	task := domain.RACITask{
		ID:          n.newID(),
		TaskName:    domain.FirstNonEmpty(str("activity"), str("taskName"), str("name"), "Unnamed Task"),
		Description: domain.FirstNonEmpty(str("category"), str("description")),
	}

	roleValues := map[string]string{}
	for key := range fields {
		if taskFieldNames[key] {
			continue
		}
		if v := str(key); v != "" {
			roleValues[key] = v
		}
	}
	return task, roleValues, nil
}

// resolveExplicitAssignments handles the {taskKey: {stakeholderKey: value}}
// form. Task keys match task names exactly; stakeholder keys match exactly or
// by substring of the stakeholder name.
func (n *Normalizer) resolveExplicitAssignments(
	explicit map[string]map[string]string,
	tasks []domain.RACITask,
	stakeholders []domain.RACIStakeholder,
) []domain.RACIAssignment {
	var out []domain.RACIAssignment
	for _, taskKey := range sortedKeys(explicit) {
		cells := explicit[taskKey]
		taskIdx := findTaskByName(tasks, taskKey)
		if taskIdx < 0 {
			n.log.WithField("task", taskKey).Warn("import: assignment references unknown task, skipping")
			continue
		}
		for _, shKey := range sortedKeys(cells) {
			value := cells[shKey]
			shIdx := findStakeholderByName(stakeholders, shKey)
			if shIdx < 0 {
				n.log.WithField("stakeholder", shKey).Warn("import: assignment references unknown stakeholder, skipping")
				continue
			}
			normalized := domain.NormalizeRACIValue(value)
			if normalized == "" {
				continue
			}
			out = append(out, domain.RACIAssignment{
				TaskID:        tasks[taskIdx].ID,
				StakeholderID: stakeholders[shIdx].ID,
				Value:         normalized,
			})
		}
	}
	return out
}

// resolveInlineAssignments handles role keys carried directly on task
// objects, resolved through the fuzzy RoleMatcher.
func (n *Normalizer) resolveInlineAssignments(
	inline []map[string]string,
	tasks []domain.RACITask,
	stakeholders []domain.RACIStakeholder,
) []domain.RACIAssignment {
	matcher := NewRoleMatcher(stakeholders)

	var out []domain.RACIAssignment
	for i, roleValues := range inline {
		for _, roleKey := range sortedKeys(roleValues) {
			value := roleValues[roleKey]
			shIdx, ok := matcher.Match(roleKey)
			if !ok {
				n.log.WithField("role", roleKey).Warn("import: no stakeholder match for role key, skipping")
				continue
			}
			normalized := domain.NormalizeRACIValue(value)
			if normalized == "" {
				continue
			}
			out = append(out, domain.RACIAssignment{
				TaskID:        tasks[i].ID,
				StakeholderID: stakeholders[shIdx].ID,
				Value:         normalized,
			})
		}
	}
	return out
}

// sortedKeys keeps map traversal deterministic so imported assignment order
// is stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func findTaskByName(tasks []domain.RACITask, key string) int {
	for i, t := range tasks {
		if t.TaskName == key {
			return i
		}
	}
	for i, t := range tasks {
		if strings.Contains(t.TaskName, key) {
			return i
		}
	}
	return -1
}

func findStakeholderByName(stakeholders []domain.RACIStakeholder, key string) int {
	for i, sh := range stakeholders {
		if sh.Name == key {
			return i
		}
	}
	for i, sh := range stakeholders {
		if strings.Contains(sh.Name, key) || strings.Contains(key, sh.Name) {
			return i
		}
	}
	return -1
}
