package journal

import (
	"github.com/firejournal/firejournal/internal/metadata"
	"github.com/firejournal/firejournal/internal/tags"
)

// Assemble builds a new Entry from already-derived parts. It is pure
// construction: callers are responsible for the caption/image emptiness rule
// and for having run tag derivation with the right precedence.
func Assemble(userID, caption string, isFavorite bool, meta metadata.Result, t tags.Tags, imagePath *string) Entry {
	return Entry{
		UserID:            userID,
		Caption:           caption,
		IsFavorite:        isFavorite,
		UserTags:          t.User,
		AutoTags:          t.Auto,
		MetadataTimestamp: meta.Timestamp,
		MetadataLatitude:  meta.Latitude,
		MetadataLongitude: meta.Longitude,
		ImagePath:         imagePath,
	}
}

// Edit carries the fields an edit flow supplies. UserTags must already be
// parsed from the new caption (nil when it had no qualifying hashtags).
// Metadata is only meaningful when a new image was picked; otherwise pass
// the existing entry's values so they carry over.
type Edit struct {
	Caption    string
	IsFavorite bool
	UserTags   []string
	Metadata   metadata.Result
	ImagePath  *string
}

// ApplyEdit merges an edit over an existing entry and returns the updated
// record together with the merge patch to persist.
//
// Edits never re-run classification: AutoTags is always cleared to an empty
// list, even when the new caption has no hashtags. UserTags is only written
// when the edit produced some; otherwise the stored value is left untouched
// by the patch (merge semantics), mirroring the update flow this replaces.
// Metadata fields follow the same merge rule: nil edit fields keep the
// stored values in both the patch and the returned record, so an edit can
// never clear metadata.
func ApplyEdit(existing Entry, edit Edit) (Entry, EntryPatch) {
	updated := existing
	updated.Caption = edit.Caption
	updated.IsFavorite = edit.IsFavorite
	if edit.Metadata.Timestamp != nil {
		updated.MetadataTimestamp = edit.Metadata.Timestamp
	}
	if edit.Metadata.Latitude != nil {
		updated.MetadataLatitude = edit.Metadata.Latitude
	}
	if edit.Metadata.Longitude != nil {
		updated.MetadataLongitude = edit.Metadata.Longitude
	}
	updated.AutoTags = []string{}
	if edit.ImagePath != nil {
		updated.ImagePath = edit.ImagePath
	}
	if len(edit.UserTags) > 0 {
		updated.UserTags = edit.UserTags
	}

	patch := EntryPatch{
		Caption:           ptr(edit.Caption),
		IsFavorite:        ptr(edit.IsFavorite),
		AutoTags:          ptr([]string{}),
		MetadataTimestamp: edit.Metadata.Timestamp,
		MetadataLatitude:  edit.Metadata.Latitude,
		MetadataLongitude: edit.Metadata.Longitude,
		ImagePath:         edit.ImagePath,
	}
	if len(edit.UserTags) > 0 {
		ut := append([]string(nil), edit.UserTags...)
		patch.UserTags = &ut
	}

	return updated, patch
}

func ptr[T any](v T) *T { return &v }

// Ptr returns a pointer to v. Handy for optional Entry fields in callers
// and tests.
func Ptr[T any](v T) *T { return &v }
