package llm

import (
	"context"

	"storyboardgen/internal/storyboard"
)

// Client produces a storyboard script for an idea and tone. Implementations
// must always return a well-formed script for shape failures (malformed or
// schema-violating model output) by substituting the diagnostic fallback;
// only provider-level failures are returned as errors.
type Client interface {
	GenerateScript(ctx context.Context, idea, tone string) (*storyboard.Script, error)
}
