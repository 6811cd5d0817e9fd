package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/firejournal/firejournal/internal/metadata"
	"github.com/firejournal/firejournal/internal/tags"
)

func TestAssemble(t *testing.T) {
	ts := time.Date(2025, 5, 16, 20, 10, 0, 0, time.Local)
	lat, lon := 34.05, -118.25
	path := "users/u1/entryImages/x.jpg"

	e := Assemble("u1", "Sunset at the #beach", true,
		metadata.Result{Timestamp: &ts, Latitude: &lat, Longitude: &lon},
		tags.Tags{User: []string{"beach"}},
		&path)

	require.Equal(t, "u1", e.UserID)
	require.Equal(t, "Sunset at the #beach", e.Caption)
	require.True(t, e.IsFavorite)
	require.Equal(t, []string{"beach"}, e.UserTags)
	require.Nil(t, e.AutoTags)
	require.Equal(t, &ts, e.MetadataTimestamp)
	require.Equal(t, &lat, e.MetadataLatitude)
	require.Equal(t, &lon, e.MetadataLongitude)
	require.Equal(t, &path, e.ImagePath)
	require.Empty(t, e.ID, "id is store-assigned")
	require.Nil(t, e.CreatedAt, "createdAt is store-assigned")
}

func existingEntry() Entry {
	created := time.Now()
	return Entry{
		ID:        "e1",
		UserID:    "u1",
		Caption:   "old #words",
		UserTags:  []string{"words"},
		AutoTags:  nil,
		ImagePath: Ptr("users/u1/entryImages/old.jpg"),
		CreatedAt: &created,
	}
}

func TestApplyEdit_ReplacesSuppliedFields(t *testing.T) {
	existing := existingEntry()

	updated, patch := ApplyEdit(existing, Edit{
		Caption:    "new caption #travel",
		IsFavorite: true,
		UserTags:   []string{"travel"},
	})

	require.Equal(t, "new caption #travel", updated.Caption)
	require.True(t, updated.IsFavorite)
	require.Equal(t, []string{"travel"}, updated.UserTags)

	require.Equal(t, "new caption #travel", *patch.Caption)
	require.True(t, *patch.IsFavorite)
	require.Equal(t, []string{"travel"}, *patch.UserTags)
}

func TestApplyEdit_AutoTagsClearedNotRecomputed(t *testing.T) {
	existing := existingEntry()
	existing.UserTags = nil
	existing.AutoTags = []string{"dog", "pet"}

	updated, patch := ApplyEdit(existing, Edit{Caption: "no hashtags anymore"})

	require.Empty(t, updated.AutoTags)
	require.NotNil(t, patch.AutoTags)
	require.Empty(t, *patch.AutoTags)
	// No user tags produced: the patch must not touch the stored value.
	require.Nil(t, patch.UserTags)
}

func TestApplyEdit_CarriesImagePathWhenUntouched(t *testing.T) {
	existing := existingEntry()

	updated, patch := ApplyEdit(existing, Edit{Caption: "changed"})

	require.Equal(t, existing.ImagePath, updated.ImagePath)
	require.Nil(t, patch.ImagePath, "merge must leave the stored image path alone")
}

func TestApplyEdit_NewImagePath(t *testing.T) {
	existing := existingEntry()
	newPath := "users/u1/entryImages/new.jpg"

	updated, patch := ApplyEdit(existing, Edit{Caption: "changed", ImagePath: &newPath})

	require.Equal(t, &newPath, updated.ImagePath)
	require.Equal(t, &newPath, patch.ImagePath)
}

func TestApplyEdit_MetadataCarriedFromEdit(t *testing.T) {
	existing := existingEntry()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	lat := 1.5

	_, patch := ApplyEdit(existing, Edit{
		Caption:  "changed",
		Metadata: metadata.Result{Timestamp: &ts, Latitude: &lat},
	})

	require.Equal(t, &ts, patch.MetadataTimestamp)
	require.Equal(t, &lat, patch.MetadataLatitude)
	require.Nil(t, patch.MetadataLongitude)
}

// A replacement image whose EXIF yields nothing must not diverge from
// what the merge persists: the returned record keeps the stored metadata,
// just like the patch leaves it untouched.
func TestApplyEdit_EmptyMetadataKeepsStoredValues(t *testing.T) {
	existing := existingEntry()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	lat, lon := 34.05, -118.25
	existing.MetadataTimestamp = &ts
	existing.MetadataLatitude = &lat
	existing.MetadataLongitude = &lon
	newPath := "users/u1/entryImages/new.jpg"

	updated, patch := ApplyEdit(existing, Edit{
		Caption:   "swapped the photo",
		Metadata:  metadata.Result{},
		ImagePath: &newPath,
	})

	require.Equal(t, &ts, updated.MetadataTimestamp)
	require.Equal(t, &lat, updated.MetadataLatitude)
	require.Equal(t, &lon, updated.MetadataLongitude)
	require.Nil(t, patch.MetadataTimestamp)
	require.Nil(t, patch.MetadataLatitude)
	require.Nil(t, patch.MetadataLongitude)
}
