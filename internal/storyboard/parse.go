package storyboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

const rawPreviewLimit = 100

// ExtractJSON cuts the candidate JSON object out of raw model output: the
// substring from the first '{' to the last '}' inclusive. Models wrap the
// object in code fences or commentary often enough that this is the reliable
// way to recover it. Returns ErrMalformedOutput when no such window exists.
func ExtractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: %s", ErrMalformedOutput, preview(raw))
	}
	return raw[start : end+1], nil
}

// Parse runs the full pipeline on raw model output: extraction, JSON
// decoding, then schema validation. The returned error wraps
// ErrMalformedOutput or ErrSchemaViolation so callers can tell the two
// failure kinds apart.
func Parse(raw string) (*Script, error) {
	candidate, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("%w: invalid JSON: %s", ErrMalformedOutput, preview(candidate))
	}

	var script Script
	if err := json.Unmarshal([]byte(candidate), &script); err != nil {
		// Valid JSON that does not decode into the script shape is a
		// schema problem, not a parse problem.
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return &script, nil
}

// Validate checks the script against the structural contract: a non-empty
// title and exactly SceneCount scenes numbered 1..SceneCount in order, each
// with a non-empty visual description. Scene counts other than SceneCount
// are rejected rather than padded or truncated.
func (s *Script) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrSchemaViolation)
	}
	if len(s.Scenes) != SceneCount {
		return fmt.Errorf("%w: got %d scenes, want %d", ErrSchemaViolation, len(s.Scenes), SceneCount)
	}
	for i, scene := range s.Scenes {
		if scene.SceneNum != i+1 {
			return fmt.Errorf("%w: scene %d has scene_num %d", ErrSchemaViolation, i+1, scene.SceneNum)
		}
		if strings.TrimSpace(scene.VisualDescription) == "" {
			return fmt.Errorf("%w: scene %d has no visual description", ErrSchemaViolation, i+1)
		}
	}
	return nil
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= rawPreviewLimit {
		return s
	}
	return string(runes[:rawPreviewLimit]) + "..."
}
