package task

import (
	"encoding/json"
	"testing"
)

func TestCoerceDone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"zero", float64(0), false},
		{"nonzero", float64(1), true},
		{"negative", float64(-2), true},
		{"empty string", "", false},
		{"nonempty string", "yes", true},
		{"falsey-looking string is still truthy", "no", true},
		{"empty array", []any{}, false},
		{"nonempty array", []any{1.0}, true},
		{"empty object", map[string]any{}, false},
		{"nonempty object", map[string]any{"k": 1.0}, true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := CoerceDone(testCase.input)
			if got != testCase.want {
				t.Errorf("CoerceDone(%#v) = %v, want %v", testCase.input, got, testCase.want)
			}
		})
	}
}

// Coercion operates on values as encoding/json decodes them, so the table
// must hold for a round trip through the decoder too.
func TestCoerceDoneOnDecodedJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want bool
	}{
		{`null`, false},
		{`true`, true},
		{`false`, false},
		{`0`, false},
		{`1`, true},
		{`"yes"`, true},
		{`""`, false},
		{`[]`, false},
		{`[0]`, true},
		{`{}`, false},
		{`{"a":1}`, true},
	}

	for _, testCase := range tests {
		testCase := testCase
		var v any
		if err := json.Unmarshal([]byte(testCase.raw), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", testCase.raw, err)
		}

		if got := CoerceDone(v); got != testCase.want {
			t.Errorf("CoerceDone(%s) = %v, want %v", testCase.raw, got, testCase.want)
		}
	}
}
