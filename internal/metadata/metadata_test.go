package metadata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/firejournal/firejournal/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func f(v float64) *float64 { return &v }

func TestExtract_Timestamp(t *testing.T) {
	got := Extract(Properties{DateTimeOriginal: "2025:05:16 20:10:00"})

	require.NotNil(t, got.Timestamp)
	want := time.Date(2025, 5, 16, 20, 10, 0, 0, time.Local)
	require.True(t, got.Timestamp.Equal(want))
	require.Equal(t, OutcomeOK, got.Outcome)
}

func TestExtract_MalformedTimestamp(t *testing.T) {
	got := Extract(Properties{DateTimeOriginal: "2025-05-16T20:10:00Z"})

	require.Nil(t, got.Timestamp)
	require.Equal(t, OutcomeNoMetadata, got.Outcome)
}

func TestExtract_GPSSignConvention(t *testing.T) {
	tests := []struct {
		name            string
		latRef, lonRef  string
		wantLat, wantLon float64
	}{
		{"north east positive", "N", "E", 34.05, 118.25},
		{"south negates latitude", "S", "E", -34.05, 118.25},
		{"west negates longitude", "N", "W", 34.05, -118.25},
		{"south west negates both", "S", "W", -34.05, -118.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(Properties{
				Latitude: f(34.05), LatitudeRef: tt.latRef,
				Longitude: f(118.25), LongitudeRef: tt.lonRef,
			})
			require.NotNil(t, got.Latitude)
			require.NotNil(t, got.Longitude)
			require.InDelta(t, tt.wantLat, *got.Latitude, 1e-9)
			require.InDelta(t, tt.wantLon, *got.Longitude, 1e-9)
		})
	}
}

func TestExtract_PartialGPSYieldsNothing(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
	}{
		{"missing latitude", Properties{LatitudeRef: "N", Longitude: f(1), LongitudeRef: "E"}},
		{"missing latitude ref", Properties{Latitude: f(1), Longitude: f(1), LongitudeRef: "E"}},
		{"missing longitude", Properties{Latitude: f(1), LatitudeRef: "N", LongitudeRef: "E"}},
		{"missing longitude ref", Properties{Latitude: f(1), LatitudeRef: "N", Longitude: f(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.props)
			require.Nil(t, got.Latitude)
			require.Nil(t, got.Longitude)
		})
	}
}

func TestExtract_Empty(t *testing.T) {
	got := Extract(Properties{})

	require.Nil(t, got.Timestamp)
	require.Nil(t, got.Latitude)
	require.Nil(t, got.Longitude)
	require.Equal(t, OutcomeNoMetadata, got.Outcome)
}

type fakeReader struct {
	props Properties
	err   error
}

func (r *fakeReader) Read([]byte) (Properties, error) { return r.props, r.err }

func TestExtractor_ReaderFailureSwallowed(t *testing.T) {
	e := NewExtractor(&fakeReader{err: errors.New("not an image")}, testLogger())

	got := e.FromImage(context.Background(), []byte{1, 2, 3})

	require.Equal(t, OutcomeReadFailed, got.Outcome)
	require.Nil(t, got.Timestamp)
	require.Nil(t, got.Latitude)
}

func TestExtractor_NilImage(t *testing.T) {
	e := NewExtractor(&fakeReader{}, testLogger())

	got := e.FromImage(context.Background(), nil)

	require.Equal(t, OutcomeNoMetadata, got.Outcome)
}

func TestExifReader_InvalidBytes(t *testing.T) {
	r := NewExifReader()

	_, err := r.Read([]byte("definitely not a jpeg"))

	require.Error(t, err)
}
