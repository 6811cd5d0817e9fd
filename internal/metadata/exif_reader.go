package metadata

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifReader reads EXIF properties using goexif. It satisfies Reader.
type ExifReader struct{}

func NewExifReader() *ExifReader {
	return &ExifReader{}
}

// Read decodes the EXIF block and copies out the fields the extractor cares
// about. Individual missing tags are fine; only an undecodable image is an
// error.
func (r *ExifReader) Read(imageBytes []byte) (Properties, error) {
	x, err := exif.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return Properties{}, fmt.Errorf("exif decode: %w", err)
	}

	var p Properties

	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := tag.StringVal(); err == nil {
			p.DateTimeOriginal = s
		}
	}

	if tag, err := x.Get(exif.GPSLatitude); err == nil {
		if v, err := dmsToDegrees(tag); err == nil {
			p.Latitude = &v
		}
	}
	if tag, err := x.Get(exif.GPSLatitudeRef); err == nil {
		if s, err := tag.StringVal(); err == nil {
			p.LatitudeRef = s
		}
	}
	if tag, err := x.Get(exif.GPSLongitude); err == nil {
		if v, err := dmsToDegrees(tag); err == nil {
			p.Longitude = &v
		}
	}
	if tag, err := x.Get(exif.GPSLongitudeRef); err == nil {
		if s, err := tag.StringVal(); err == nil {
			p.LongitudeRef = s
		}
	}

	return p, nil
}

// dmsToDegrees converts an EXIF degrees/minutes/seconds rational triple into
// a decimal magnitude. The sign is carried separately in the reference tag.
func dmsToDegrees(tag *tiff.Tag) (float64, error) {
	divisors := []float64{1, 60, 3600}

	var out float64
	for i, div := range divisors {
		if i >= int(tag.Count) {
			break
		}
		rat, err := tag.Rat(i)
		if err != nil {
			return 0, fmt.Errorf("gps component %d: %w", i, err)
		}
		f, _ := rat.Float64()
		out += f / div
	}
	return out, nil
}
