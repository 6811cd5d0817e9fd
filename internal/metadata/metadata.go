// Package metadata extracts capture-time information (timestamp, GPS
// coordinates) from an image's embedded EXIF properties.
//
// Extraction is split in two: a Reader pulls the raw property fields out of
// the image bytes, and Extract interprets them. Extract is pure and total:
// absent or malformed properties yield an empty Result, never an error.
package metadata

import (
	"context"
	"time"

	"github.com/firejournal/firejournal/internal/logging"
)

// exifTimeLayout is the EXIF DateTimeOriginal format: colon-separated date,
// space-separated time, no timezone.
const exifTimeLayout = "2006:01:02 15:04:05"

// Properties is the raw property set a Reader pulls from an image.
// Zero values mean "field not present".
type Properties struct {
	// DateTimeOriginal is the raw EXIF date string, e.g. "2025:05:16 20:10:00".
	DateTimeOriginal string

	// GPS magnitudes are always non-negative; the hemisphere lives in the
	// reference fields ("N"/"S", "E"/"W").
	Latitude     *float64
	LatitudeRef  string
	Longitude    *float64
	LongitudeRef string
}

// Reader pulls raw EXIF properties out of image bytes.
type Reader interface {
	Read(imageBytes []byte) (Properties, error)
}

// Outcome reports how a Result was produced, so callers (and tests) can tell
// "image had no metadata" apart from "the reader failed".
type Outcome int

const (
	// OutcomeOK means the reader ran and at least one field was extracted.
	OutcomeOK Outcome = iota
	// OutcomeNoMetadata means the reader ran but nothing usable was present.
	OutcomeNoMetadata
	// OutcomeReadFailed means the reader itself returned an error.
	OutcomeReadFailed
)

// Result holds whatever could be extracted. Any field may be nil. Latitude
// and Longitude are either both set or both nil: a partially present GPS
// block yields no coordinates at all.
type Result struct {
	Timestamp *time.Time
	Latitude  *float64
	Longitude *float64
	Outcome   Outcome
}

// Extract interprets raw properties. The timestamp is parsed in the local
// timezone because EXIF carries none; this intentionally matches the capture
// device's own convention (or mismatches it; there is no way to tell).
//
// GPS sign convention: a "S" latitude reference negates the magnitude, as
// does a "W" longitude reference. If any one of the four GPS fields is
// missing, no coordinates are returned.
func Extract(p Properties) Result {
	r := Result{Outcome: OutcomeNoMetadata}

	if p.DateTimeOriginal != "" {
		if ts, err := time.ParseInLocation(exifTimeLayout, p.DateTimeOriginal, time.Local); err == nil {
			r.Timestamp = &ts
			r.Outcome = OutcomeOK
		}
	}

	if p.Latitude != nil && p.LatitudeRef != "" && p.Longitude != nil && p.LongitudeRef != "" {
		lat := *p.Latitude
		if p.LatitudeRef == "S" {
			lat = -lat
		}
		lon := *p.Longitude
		if p.LongitudeRef == "W" {
			lon = -lon
		}
		r.Latitude = &lat
		r.Longitude = &lon
		r.Outcome = OutcomeOK
	}

	return r
}

// Extractor runs a Reader over image bytes and extracts a Result. Reader
// failures are swallowed: capture metadata is best-effort and never blocks
// a submit.
type Extractor struct {
	reader Reader
	log    logging.Logger
}

func NewExtractor(reader Reader, log logging.Logger) *Extractor {
	return &Extractor{reader: reader, log: log}
}

// FromImage extracts metadata from raw image bytes. A nil image or a reader
// failure yields an empty Result with OutcomeReadFailed / OutcomeNoMetadata.
func (e *Extractor) FromImage(ctx context.Context, imageBytes []byte) Result {
	if len(imageBytes) == 0 {
		return Result{Outcome: OutcomeNoMetadata}
	}

	props, err := e.reader.Read(imageBytes)
	if err != nil {
		e.log.Warn(ctx, "image metadata read failed", "error", err)
		return Result{Outcome: OutcomeReadFailed}
	}

	return Extract(props)
}
