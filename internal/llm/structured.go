package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the JSON object out of raw assistant text. Models wrap
// output in markdown fences, prepend prose, or sprinkle comments despite
// instructions not to; this strips all of that and returns the first balanced
// { ... } block, verified to be valid JSON. The caller feeds the result to
// the import normalizer, which owns shape tolerance.
func ExtractJSON(raw string) (json.RawMessage, error) {
	block := balancedObject(dropFences(raw))
	if block == "" {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	block = dropComments(block)

	if !json.Valid([]byte(block)) {
		return nil, fmt.Errorf("%w: extracted block is not valid JSON", ErrInvalidOutput)
	}
	return json.RawMessage(block), nil
}

// dropFences deletes markdown fence lines (``` or ```json), keeping the
// fenced content itself.
func dropFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for rest := s; rest != ""; {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			rest = ""
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

// balancedObject returns the first brace-balanced object in s, tracking
// string literals so braces inside values do not count. Empty when no
// complete object exists.
func balancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	var (
		nesting int
		quoted  bool
		escaped bool
	)
	for i := start; i < len(s); i++ {
		switch c := s[i]; {
		case escaped:
			escaped = false
		case quoted:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				quoted = false
			}
		case c == '"':
			quoted = true
		case c == '{':
			nesting++
		case c == '}':
			nesting--
			if nesting == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// dropComments removes //-line and /* */ block comments outside string
// literals. Some models emit commented "JSON" no matter what the prompt says.
func dropComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var quoted, escaped bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quoted {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				quoted = false
			}
			continue
		}

		switch {
		case c == '"':
			quoted = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
