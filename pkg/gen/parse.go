package gen

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/errors"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:arduino|cpp|ino|c\\+\\+)?\\s*(.*?)```")

// ExtractCode pulls Arduino source out of a model response. The first
// fenced code block wins; a response with no fences is assumed to be bare
// code and returned trimmed.
func ExtractCode(text string) string {
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// ParseCircuit is the single parse step between raw model text and the
// core: it either yields a valid [circuit.Data] or a BAD_RESPONSE error.
// It tolerates fenced JSON and surrounding prose by extracting the
// outermost JSON object, but it never passes unvalidated shapes through.
func ParseCircuit(text string) (circuit.Data, error) {
	raw := extractJSON(text)
	if raw == "" {
		return circuit.Data{}, errors.New(errors.ErrCodeBadResponse, "model response contains no JSON object")
	}

	// Decode loosely first so a missing "components" key can be told apart
	// from malformed JSON.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return circuit.Data{}, errors.Wrap(errors.ErrCodeBadResponse, err, "model response is not valid JSON")
	}
	if _, ok := probe["components"]; !ok {
		return circuit.Data{}, errors.New(errors.ErrCodeBadResponse, "model response has no components array")
	}

	var d circuit.Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return circuit.Data{}, errors.Wrap(errors.ErrCodeBadResponse, err, "model response does not match the circuit format")
	}
	return d, nil
}

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSON locates the outermost JSON object in a model response,
// looking inside code fences first.
func extractJSON(text string) string {
	candidate := text
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start < 0 || end <= start {
		return ""
	}
	return candidate[start : end+1]
}
