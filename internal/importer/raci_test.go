package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignmentByNames(t *testing.T, res *RACIResult, taskName, shName string) string {
	t.Helper()
	var taskID, shID string
	for _, task := range res.Tasks {
		if task.TaskName == taskName {
			taskID = task.ID
		}
	}
	for _, sh := range res.Stakeholders {
		if sh.Name == shName {
			shID = sh.ID
		}
	}
	require.NotEmpty(t, taskID, "task %q not found", taskName)
	require.NotEmpty(t, shID, "stakeholder %q not found", shName)
	for _, a := range res.Assignments {
		if a.TaskID == taskID && a.StakeholderID == shID {
			return a.Value
		}
	}
	return ""
}

func TestImportRACI_InlineRoleKeys(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"stakeholders": ["PM (Manager)", "Dev (Engineer)"],
		"tasks": [{"activity": "Build API", "PM": "A", "Dev": "R"}]
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	require.Len(t, res.Stakeholders, 2)
	require.Len(t, res.Assignments, 2)

	assert.Equal(t, "A", assignmentByNames(t, res, "Build API", "PM"))
	assert.Equal(t, "R", assignmentByNames(t, res, "Build API", "Dev"))
}

func TestImportRACI_StringStakeholderParsing(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"stakeholders": ["Alice (Tech Lead)", "Bob - QA", "Carol"],
		"tasks": ["Review design"]
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	require.Len(t, res.Stakeholders, 3)

	assert.Equal(t, "Alice", res.Stakeholders[0].Name)
	assert.Equal(t, "Tech Lead", res.Stakeholders[0].Role)
	assert.Equal(t, "Bob", res.Stakeholders[1].Name)
	assert.Equal(t, "QA", res.Stakeholders[1].Role)
	assert.Equal(t, "Carol", res.Stakeholders[2].Name)
	assert.Empty(t, res.Stakeholders[2].Role)
}

func TestImportRACI_ObjectStakeholdersAndTasks(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"stakeholders": [{"name": "Project Manager", "role": "Management"}],
		"tasks": [{"taskName": "Kickoff", "description": "First meeting"}]
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	assert.Equal(t, "Project Manager", res.Stakeholders[0].Name)
	assert.Equal(t, "Management", res.Stakeholders[0].Role)
	assert.Equal(t, "Kickoff", res.Tasks[0].TaskName)
	assert.Equal(t, "First meeting", res.Tasks[0].Description)
}

func TestImportRACI_ExplicitAssignmentMap(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"raciMatrix": {
			"roles": ["PM (Manager)", "Dev Team"],
			"tasks": ["Design", "Build"],
			"assignments": {
				"Design": {"PM": "A", "Dev Team": "C"},
				"Build": {"Dev Team": "R"}
			}
		}
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 3)

	assert.Equal(t, "A", assignmentByNames(t, res, "Design", "PM"))
	assert.Equal(t, "C", assignmentByNames(t, res, "Design", "Dev Team"))
	assert.Equal(t, "R", assignmentByNames(t, res, "Build", "Dev Team"))
}

func TestImportRACI_ExplicitMapSkipsUnknownKeys(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"roles": ["PM"],
		"tasks": ["Design"],
		"assignments": {
			"Design": {"PM": "R", "Nobody Known": "A"},
			"Ghost Task": {"PM": "C"}
		}
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	// Only the resolvable cell survives; unknown keys never fail the import.
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "R", assignmentByNames(t, res, "Design", "PM"))
}

func TestImportRACI_InlineUnmatchedRoleSkipped(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"stakeholders": ["PM (Manager)"],
		"tasks": [{"activity": "Build", "PM": "R", "ZZZUnknown": "A"}]
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "R", assignmentByNames(t, res, "Build", "PM"))
}

func TestImportRACI_ValuesNormalizedToCanonicalOrder(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"stakeholders": ["PM"],
		"tasks": [{"activity": "Build", "PM": "a/r"}]
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "R/A", res.Assignments[0].Value)
}

func TestImportRACI_NestedMatrixWins(t *testing.T) {
	n := newTestNormalizer()
	data := []byte(`{
		"tasks": ["outer"],
		"raciMatrix": {"tasks": ["inner"], "roles": ["PM"]}
	}`)

	res, err := n.ImportRACI(data)
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "inner", res.Tasks[0].TaskName)
}

func TestImportRACI_Errors(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.ImportRACI([]byte(`not json`))
	require.Error(t, err)

	_, err = n.ImportRACI([]byte(`{}`))
	assert.ErrorIs(t, err, ErrNoTasks)
}
