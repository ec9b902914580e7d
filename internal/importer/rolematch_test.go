package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmapdigital/projectflow/internal/domain"
)

func TestSimplifyRoleKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Project Manager", "projectmanager"},
		{"project-manager", "projectmanager"},
		{"PM", "pm"},
		{"Dev_Team (Core)", "devteamcore"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SimplifyRoleKey(tt.in), "input %q", tt.in)
	}
}

func stakeholderList(names ...string) []domain.RACIStakeholder {
	out := make([]domain.RACIStakeholder, len(names))
	for i, name := range names {
		out[i] = domain.RACIStakeholder{ID: name, Name: name}
	}
	return out
}

func TestRoleMatcher_ExactMatch(t *testing.T) {
	m := NewRoleMatcher(stakeholderList("Project Manager", "Dev Team"))

	idx, ok := m.Match("ProjectManager")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = m.Match("dev team")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestRoleMatcher_ParenthesizedAbbreviation(t *testing.T) {
	m := NewRoleMatcher(stakeholderList("Ministry of Finance (MoF)", "Dev Team"))

	idx, ok := m.Match("MOF")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestRoleMatcher_SynonymTable(t *testing.T) {
	m := NewRoleMatcher(stakeholderList(
		"Ministry of Public Service",
		"MindMap Digital Ltd",
		"Steering Committee",
	))

	tests := []struct {
		key  string
		want int
	}{
		{"MPS", 0},
		{"mindmap", 1},
		{"SteeringCommittee", 2},
	}
	for _, tt := range tests {
		idx, ok := m.Match(tt.key)
		require.True(t, ok, "key %q", tt.key)
		assert.Equal(t, tt.want, idx, "key %q", tt.key)
	}
}

func TestRoleMatcher_SubstringFallback(t *testing.T) {
	m := NewRoleMatcher(stakeholderList("Government IT Department"))

	idx, ok := m.Match("governmentitdepartmentteam")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestRoleMatcher_NoMatch(t *testing.T) {
	m := NewRoleMatcher(stakeholderList("Dev Team"))

	_, ok := m.Match("Finance")
	assert.False(t, ok)

	_, ok = m.Match("")
	assert.False(t, ok)
}

func TestRoleMatcher_FirstStakeholderWinsOnCollision(t *testing.T) {
	m := NewRoleMatcher(stakeholderList("PM", "PM"))

	idx, ok := m.Match("pm")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}
