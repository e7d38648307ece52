package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

const sampleLimit = 500

// ParseError reports model output that could not be decoded as a JSON object.
type ParseError struct {
	Err error
	// Sample holds at most the first 500 characters of the raw output.
	Sample string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractJSON strips code fences and any prose around the outermost JSON
// object in text.
func ExtractJSON(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		s = s[start : end+1]
	}
	return s
}

// ParseJSON decodes the JSON object embedded in model output.
func ParseJSON(text string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &out); err != nil {
		return nil, &ParseError{Err: err, Sample: truncate(text, sampleLimit)}
	}
	if out == nil {
		return nil, &ParseError{Err: fmt.Errorf("response is not a JSON object"), Sample: truncate(text, sampleLimit)}
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
