package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/sanitizer"
)

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "nil becomes empty string", input: nil, expected: ""},
		{name: "true becomes 1", input: true, expected: "1"},
		{name: "false becomes empty string", input: false, expected: ""},
		{name: "whole float", input: float64(42), expected: "42"},
		{name: "fractional float", input: 3.5, expected: "3.5"},
		{name: "int", input: 7, expected: "7"},
		{name: "string", input: " <i>chef</i> ", expected: "chef"},
		{
			name:     "slice keeps order",
			input:    []any{" a ", "<b>b</b>", nil},
			expected: []any{"a", "b", ""},
		},
		{
			name:     "string slice",
			input:    []string{"x ", "y&z"},
			expected: []any{"x", "y&amp;z"},
		},
		{
			name: "nested map",
			input: map[string]any{
				"fullName": "  <b>Ada</b> ",
				"meta": map[string]any{
					"tags": []any{"<i>chef</i>", float64(1)},
				},
			},
			expected: map[string]any{
				"fullName": "Ada",
				"meta": map[string]any{
					"tags": []any{"chef", "1"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Value(tt.input))
		})
	}
}

func TestValueIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []any{
		nil,
		"  <script>x</script>Hi & bye ",
		[]any{"'q'", []any{"<p>deep</p>", true}},
		map[string]any{
			"a": map[string]any{"b": []any{`"c"`, nil, 2.25}},
			"d": "&amp;",
		},
	}

	for _, input := range inputs {
		once := sanitizer.Value(input)
		assert.Equal(t, once, sanitizer.Value(once))
	}
}

func TestMap(t *testing.T) {
	t.Parallel()

	out := sanitizer.Map(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)

	out = sanitizer.Map(map[string]any{"email": " ada@example.com "})
	assert.Equal(t, "ada@example.com", out["email"])
}
