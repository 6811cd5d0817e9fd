// Package classify defines the image-classification capability: an external
// service/model that returns confidence-scored labels for an image. The
// pipeline treats it as best-effort; failures are swallowed by the caller.
package classify

import "context"

// Label is one classifier observation.
type Label struct {
	Name       string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier returns confidence-scored labels for raw image bytes.
type Classifier interface {
	Classify(ctx context.Context, imageBytes []byte) ([]Label, error)
}
