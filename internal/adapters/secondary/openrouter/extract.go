package openrouter

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a model response contains no brace-
// delimited region at all.
var ErrNoJSONObject = errors.New("response contains no JSON object")

// ExtractJSONObject carves the candidate JSON payload out of a raw model
// response. Models frequently wrap the requested JSON in prose or code
// fences; the first '{' and the last '}' bound the widest region that
// can contain the object. The result is a candidate only — the caller
// still has to unmarshal it.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')

	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}

	return raw[start : end+1], nil
}
