// Package extract locates and repairs the JSON payload embedded in a
// model's free-form output. The source is untrusted: prose may surround
// the object and string values may contain unescaped control characters.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// diagnosticLimit bounds the raw-text prefix attached to errors.
const diagnosticLimit = 500

// ExtractionError means no JSON-like region was found in the buffer.
type ExtractionError struct {
	Diagnostic string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no JSON object found in model output: %q", e.Diagnostic)
}

// MalformedPayloadError means a JSON-like region was found but could not
// be parsed even after both repair stages.
type MalformedPayloadError struct {
	Diagnostic string
	Cause      error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v (raw: %q)", e.Cause, e.Diagnostic)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Cause }

// Payload is the schema-shaped audit result decoded from the repaired
// JSON object. Score is deliberately untyped: a non-numeric score is
// defaulted during assembly instead of failing the whole payload.
type Payload struct {
	OverallRisk       string           `json:"overallRisk"`
	Score             any              `json:"score"`
	Summary           string           `json:"summary"`
	Findings          []FindingPayload `json:"findings"`
	GasAnalysis       string           `json:"gasAnalysis"`
	ArchitectureNotes string           `json:"architectureNotes"`
}

// FindingPayload is one finding as reported by the model, before ID
// assignment. Severity and category are free text at this stage.
type FindingPayload struct {
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Recommendation string `json:"recommendation"`
	CodeSnippet    string `json:"codeSnippet"`
}

// Parse extracts the first balanced-looking JSON object from buffer and
// decodes it, repairing common streaming corruptions along the way.
// Repair is staged: control characters are first escaped only inside
// string literals so structural whitespace stays intact; only when that
// still fails to parse is the whole candidate scrubbed of control
// characters as a last resort.
func Parse(buffer string) (*Payload, error) {
	candidate, err := locate(buffer)
	if err != nil {
		return nil, err
	}

	escaped := escapeControlInStrings(candidate)

	payload, parseErr := decode(escaped)
	if parseErr == nil {
		return payload, nil
	}

	// Aggressive fallback: scrub control characters everywhere. This can
	// drop information, so it runs only after the scoped repair failed.
	scrubbed := scrubControl(candidate)
	payload, retryErr := decode(scrubbed)
	if retryErr == nil {
		return payload, nil
	}

	return nil, &MalformedPayloadError{
		Diagnostic: truncate(buffer, diagnosticLimit),
		Cause:      parseErr,
	}
}

// locate takes the substring from the first '{' to the last '}' inclusive.
// Absent any '{' the buffer cannot contain a payload at all. A missing
// closing brace falls through to the parse stages, which will reject it.
func locate(buffer string) (string, error) {
	start := strings.IndexByte(buffer, '{')
	if start == -1 {
		return "", &ExtractionError{Diagnostic: truncate(buffer, diagnosticLimit)}
	}

	end := strings.LastIndexByte(buffer, '}')
	if end <= start {
		return buffer[start:], nil
	}
	return buffer[start : end+1], nil
}

// escapeControlInStrings replaces literal newline, carriage-return and tab
// characters with their two-character escapes, but only inside quoted
// string spans. Quote tracking respects backslash escaping so an escaped
// quote does not terminate a span.
func escapeControlInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			if escaped {
				escaped = false
				b.WriteByte(c)
				continue
			}
			switch c {
			case '\\':
				escaped = true
				b.WriteByte(c)
			case '"':
				inString = false
				b.WriteByte(c)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				b.WriteByte(c)
			}
			continue
		}

		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}

	return b.String()
}

// scrubControl escapes newline/CR/tab and deletes every other ASCII
// control character across the entire candidate, string spans or not.
func scrubControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			// dropped
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func decode(candidate string) (*Payload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
