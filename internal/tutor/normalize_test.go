package tutor

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"tagged fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n[1,2]\n```  \n", `[1,2]`},
		{"fence without newline", "```json{\"a\":1}```", `{"a":1}`},
		{"plain text untouched", "hello", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseStructuredRoundTrip(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"latex\":\"x^2\",\"hint\":\"h\",\"solution\":\"s\"}\n```"
	var got MathProblem
	if err := ParseStructured(raw, &got); err != nil {
		t.Fatalf("ParseStructured failed: %v", err)
	}
	want := MathProblem{LaTeX: "x^2", Hint: "h", Solution: "s"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseStructuredRejectsNonJSON(t *testing.T) {
	t.Parallel()

	var got MathProblem
	err := ParseStructured("not json", &got)
	if err == nil {
		t.Fatal("expected parse failure")
	}
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("expected ErrMalformedOutput, got %v", err)
	}
	if got != (MathProblem{}) {
		t.Errorf("no default value may be produced, got %+v", got)
	}
}
