package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	out, err := ExtractJSON(`{"phases": [{"name": "Design"}]}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phases": [{"name": "Design"}]}`, string(out))
}

func TestExtractJSON_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(out))
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := "Here is your chart:\n{\"a\": {\"b\": 2}}\nLet me know if you need changes."
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": 2}}`, string(out))
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"name": "curly } brace", "n": 1}`
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestExtractJSON_StripsComments(t *testing.T) {
	raw := `{
		"a": 1, // inline note
		/* block note */
		"b": 2
	}`
	out, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": 2}`, string(out))
}

func TestExtractJSON_Errors(t *testing.T) {
	_, err := ExtractJSON("no json here")
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = ExtractJSON(`{"unbalanced": `)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
