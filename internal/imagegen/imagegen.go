// Package imagegen turns scene descriptions into illustrative images via the
// Hugging Face Inference API, with deterministic placeholders for failures.
package imagegen

import (
	"context"
	"encoding/base64"
)

// DefaultStyle is applied when a caller passes an empty style tag.
const DefaultStyle = "cartoon"

// Generator produces PNG bytes for a scene description. A failed generation
// returns an error; callers substitute Placeholder or TransparentPixel so
// every scene always renders.
type Generator interface {
	Generate(ctx context.Context, description, style string) ([]byte, error)
}

// DataURI wraps PNG bytes in the data-URI form the HTTP API returns.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
