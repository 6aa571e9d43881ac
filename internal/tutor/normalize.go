package tutor

import (
	"encoding/json"
	"strings"
)

// Normalize strips the code-fence wrapper models habitually emit around
// JSON payloads, tagged ("```json") or bare, plus surrounding
// whitespace. Fences inside the payload are left alone.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		s = rest
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseStructured normalizes raw model output and unmarshals it into v.
// A parse failure always surfaces as ErrMalformedOutput; the structured
// actions have no fallback shape and never partially trust the output.
func ParseStructured(raw string, v any) error {
	if err := json.Unmarshal([]byte(Normalize(raw)), v); err != nil {
		return errf(ErrMalformedOutput, "malformed model output: %v", err)
	}
	return nil
}
