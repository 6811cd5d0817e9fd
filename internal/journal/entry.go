// Package journal defines the Entry record and the assembly rules that turn
// captured input (caption, image metadata, tags) into a normalized Entry,
// both for first submission and for edits.
package journal

import "time"

// Entry is one journal record. Pointer and nil-slice fields are genuinely
// optional: the document store does not write absent fields at all.
//
// Tag fields follow a precedence rule: UserTags holds hashtags parsed from
// the caption; AutoTags holds classifier labels and is only populated when no
// user tags were found. They are never merged, but search treats them alike.
type Entry struct {
	// ID is assigned by the document store on creation; empty before the
	// entry is first persisted.
	ID string

	// UserID is the owning user. Immutable after creation.
	UserID string

	Caption    string
	IsFavorite bool

	// UserTags are hashtags parsed from the caption, in caption order,
	// case and duplicates preserved. Nil when the caption had none.
	UserTags []string

	// AutoTags are classifier labels with confidence above the threshold,
	// deduplicated. Nil when user tags were present or no image was given;
	// may be empty when classification produced nothing.
	AutoTags []string

	// Metadata fields come from the image's EXIF data at capture time and
	// are independent of CreatedAt.
	MetadataTimestamp *time.Time
	MetadataLatitude  *float64
	MetadataLongitude *float64

	// ImagePath is the blob-store key of the associated image, set only
	// after the upload has been confirmed.
	ImagePath *string

	// CreatedAt is assigned by the document store at write time. Immutable.
	CreatedAt *time.Time
}

// EntryPatch is a merge-update payload. Nil fields are not written, so the
// store preserves their current values. A pointer to an empty slice clears
// a tag field; a nil slice pointer leaves it alone.
type EntryPatch struct {
	Caption           *string
	IsFavorite        *bool
	UserTags          *[]string
	AutoTags          *[]string
	MetadataTimestamp *time.Time
	MetadataLatitude  *float64
	MetadataLongitude *float64
	ImagePath         *string
}
