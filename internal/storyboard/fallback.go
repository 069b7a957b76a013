package storyboard

import "fmt"

const fallbackTitleLimit = 50

// Fallback builds a structurally valid script carrying diagnostics instead
// of content. The caller always gets exactly SceneCount scenes, so render
// paths never need a separate error branch.
func Fallback(idea, tone string, cause error) *Script {
	detail := "unknown error"
	if cause != nil {
		detail = truncate(cause.Error(), fallbackTitleLimit)
	}

	scenes := make([]Scene, SceneCount)
	for i := range scenes {
		scenes[i] = Scene{
			SceneNum:          i + 1,
			VisualDescription: fmt.Sprintf("placeholder scene (idea: %q, tone: %q)", idea, tone),
		}
	}

	return &Script{
		Title:  "Generation failed: " + detail,
		Scenes: scenes,
	}
}

// IsFallback reports whether the script was produced by Fallback.
func IsFallback(s *Script) bool {
	return s != nil && len(s.Title) >= len("Generation failed: ") && s.Title[:len("Generation failed: ")] == "Generation failed: "
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
