package plan

import (
	"encoding/json"
	"regexp"
	"strings"

	"lnlfit/internal/errors"
)

// ErrGenerationParse is returned when generated content cannot be parsed as
// JSON, neither directly nor out of a fenced code block. Terminal for the
// meal plan; never retried automatically.
var ErrGenerationParse = errors.New("failed to parse generated content as JSON")

// Models frequently wrap JSON replies in a markdown fence despite being told
// not to.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON parses a generator reply into raw JSON. It first attempts a
// direct parse and falls back to extracting a fenced code block. No schema
// validation is performed beyond structural JSON validity; callers must treat
// missing sub-fields as legitimately optional.
func ExtractJSON(content string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(content)
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if match := fencedJSON.FindStringSubmatch(trimmed); match != nil {
		inner := strings.TrimSpace(match[1])
		if json.Valid([]byte(inner)) {
			return json.RawMessage(inner), nil
		}
	}

	return nil, errors.WithStack(ErrGenerationParse)
}
