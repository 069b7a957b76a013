// Package storyboard holds the storyboard script domain model and the
// parse-validate-fallback pipeline applied to model output.
package storyboard

import "errors"

// SceneCount is the fixed number of scenes in every script.
const SceneCount = 5

// Failure taxonomy. Shape failures (ErrMalformedOutput, ErrSchemaViolation)
// are absorbed into a fallback script; provider failures are surfaced to the
// caller and each surface decides how to report them.
var (
	ErrProviderUnavailable = errors.New("script provider unavailable")
	ErrMalformedOutput     = errors.New("no JSON object found in model output")
	ErrSchemaViolation     = errors.New("model output does not match the script schema")
	ErrImageProvider       = errors.New("image provider failure")
)

// Scene is one storyboard unit. Scenes are never mutated after construction.
type Scene struct {
	SceneNum          int    `json:"scene_num"`
	VisualDescription string `json:"visual_description"`
	Voiceover         string `json:"voiceover"`
	Dialogue          string `json:"dialogue"`
}

// Script is a complete storyboard: a title and exactly SceneCount ordered
// scenes. Scripts are replaced wholesale, never edited field by field.
type Script struct {
	Title  string  `json:"title"`
	Scenes []Scene `json:"scenes"`
}
