package common

const (
	// ImageContentType is the content type set on every uploaded entry image.
	ImageContentType = "image/jpeg"

	// MaxImageReadSize caps blob reads when fetching an entry image back
	// for display.
	MaxImageReadSize = 5 * 1024 * 1024

	// AutoTagMinConfidence is the exclusive lower bound a classifier label
	// must clear to become an auto tag.
	AutoTagMinConfidence = 0.5
)
