// Package tags derives entry tags from a caption and, when the caption has
// no hashtags, from the image-classification capability.
package tags

import (
	"context"
	"strings"

	"github.com/firejournal/firejournal/internal/classify"
	"github.com/firejournal/firejournal/internal/common"
	"github.com/firejournal/firejournal/internal/logging"
)

// Tags is the derivation result. At most one of the two fields is non-nil.
type Tags struct {
	// User holds hashtags parsed from the caption, nil when there were none.
	User []string
	// Auto holds classifier labels, nil unless derivation fell back to the
	// classifier (it may then still be empty).
	Auto []string
}

// ParseHashtags returns the caption's qualifying tags in token order.
// A qualifying tag is a whitespace-delimited token that starts with '#' and
// is longer than one character; the value is the token minus the '#'.
// Case and duplicates are preserved as written.
func ParseHashtags(caption string) []string {
	var out []string
	for _, tok := range strings.Fields(caption) {
		if strings.HasPrefix(tok, "#") && len(tok) > 1 {
			out = append(out, tok[1:])
		}
	}
	return out
}

// Deriver applies the tag precedence policy: user hashtags win, and only
// when the caption has none is the classifier consulted.
type Deriver struct {
	classifier classify.Classifier
	log        logging.Logger
}

// NewDeriver builds a Deriver. classifier may be nil (e.g. the share entry
// point carries none); derivation then falls back to empty auto tags.
func NewDeriver(classifier classify.Classifier, log logging.Logger) *Deriver {
	return &Deriver{classifier: classifier, log: log}
}

// Derive produces tags for a caption/image pair.
//
//   - Caption has qualifying hashtags: those become User, the classifier is
//     not invoked at all.
//   - No hashtags but an image: the classifier runs; labels with confidence
//     above the threshold are kept, deduplicated, as Auto. Classifier
//     failures are swallowed and yield empty Auto.
//   - No hashtags and no image: both fields stay nil.
func (d *Deriver) Derive(ctx context.Context, caption string, imageBytes []byte) Tags {
	if user := ParseHashtags(caption); len(user) > 0 {
		return Tags{User: user}
	}

	if len(imageBytes) == 0 {
		return Tags{}
	}

	auto := []string{}
	if d.classifier == nil {
		return Tags{Auto: auto}
	}

	labels, err := d.classifier.Classify(ctx, imageBytes)
	if err != nil {
		d.log.Warn(ctx, "image classification failed", "error", err)
		return Tags{Auto: auto}
	}

	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l.Confidence <= common.AutoTagMinConfidence {
			continue
		}
		if _, ok := seen[l.Name]; ok {
			continue
		}
		seen[l.Name] = struct{}{}
		auto = append(auto, l.Name)
	}

	return Tags{Auto: auto}
}
