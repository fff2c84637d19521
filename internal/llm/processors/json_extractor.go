package processors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"career-relay/internal/logging"
	"career-relay/pkg/utils"
)

// FallbackPolicy selects what Extract returns when no array can be recovered
type FallbackPolicy int

const (
	// FallbackEmpty yields an empty, non-nil slice
	FallbackEmpty FallbackPolicy = iota
	// FallbackNone yields nil
	FallbackNone
)

// snippetLength bounds the diagnostic excerpt logged on parse failure
const snippetLength = 200

var (
	// ErrEmptyCompletion is the cause when the completion is blank
	ErrEmptyCompletion = errors.New("empty completion")
	// ErrNoJSONArray is the cause when no '[' ... ']' span exists
	ErrNoJSONArray = errors.New("no JSON array delimiters in completion")
	// ErrNotJSONArray is the cause when the span decodes to something other than an array
	ErrNotJSONArray = errors.New("parsed JSON is not an array")
	// ErrMalformedJSON wraps the decoder error when the span is not valid JSON
	ErrMalformedJSON = errors.New("malformed JSON array")
)

// trailingComma matches a comma, and any whitespace after it, directly before } or ]
var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// ExtractionResult is the outcome of one extraction. Cause is nil on success;
// otherwise Records holds the fallback value.
type ExtractionResult struct {
	Records []any
	Cause   error
}

// OK reports whether a JSON array was recovered
func (r ExtractionResult) OK() bool {
	return r.Cause == nil
}

// JSONExtractor recovers a JSON array embedded in free-text completions
type JSONExtractor struct {
	logger logging.Logger
}

// NewJSONExtractor creates an extractor that reports failures to logger
func NewJSONExtractor(logger logging.Logger) *JSONExtractor {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &JSONExtractor{logger: logger}
}

// Extract locates the span between the first '[' and the last ']', drops trailing
// commas and decodes it. It never fails: every irregularity degrades to the
// fallback selected by policy, with the cause logged and returned.
func (e *JSONExtractor) Extract(raw string, policy FallbackPolicy) ExtractionResult {
	text := strings.TrimSpace(raw)
	if text == "" {
		e.logger.Warn("Empty response for JSON parsing")
		return fallback(policy, ErrEmptyCompletion)
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		e.logger.Error("Could not find JSON array delimiters in response", map[string]interface{}{
			"response_length": len(text),
		})
		return fallback(policy, ErrNoJSONArray)
	}

	jsonText := trailingComma.ReplaceAllString(text[start:end+1], "$1")

	parsed, err := decodeJSON(jsonText)
	if err != nil {
		e.logger.Error("JSON parse error after cleaning", map[string]interface{}{
			"error":   err.Error(),
			"snippet": utils.Truncate(jsonText, snippetLength) + "...",
		})
		return fallback(policy, fmt.Errorf("%w: %v", ErrMalformedJSON, err))
	}

	records, ok := parsed.([]any)
	if !ok {
		e.logger.Warn("Parsed JSON is not a list")
		return fallback(policy, ErrNotJSONArray)
	}

	e.logger.Debug("Extracted JSON array from completion", map[string]interface{}{
		"records": len(records),
	})
	return ExtractionResult{Records: records}
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number so
// they re-encode unchanged
func decodeJSON(text string) (any, error) {
	d := json.NewDecoder(strings.NewReader(text))
	d.UseNumber()

	var parsed any
	if err := d.Decode(&parsed); err != nil {
		return nil, err
	}
	if _, err := d.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return parsed, nil
}

func fallback(policy FallbackPolicy, cause error) ExtractionResult {
	if policy == FallbackNone {
		return ExtractionResult{Cause: cause}
	}
	return ExtractionResult{Records: []any{}, Cause: cause}
}
