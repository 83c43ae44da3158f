package outfit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfit-studio/models"
)

func testAvatar() *models.BaseAvatarConfig {
	return &models.BaseAvatarConfig{
		ID:        "avatar-1",
		AgeGroup:  models.AgeGroupAdult,
		Gender:    models.GenderFemale,
		FaceStyle: "oval",
		SkinTone:  "#f1c27d",
		HairStyle: "long",
		HairColor: "#2c1b18",
		BodyType:  "slim",
		EyeStyle:  "round",
		EyeColor:  "#634e34",
	}
}

func TestFinalizeRejectsEmptyOutfit(t *testing.T) {
	_, err := Finalize(testAvatar(), NewSlots())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyOutfit))

	var emptyErr *EmptyOutfitError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, "avatar-1", emptyErr.AvatarID)
}

func TestFinalizeRequiresAvatar(t *testing.T) {
	slots := NewSlots()
	slots.Apply(models.CatalogItem{ID: "p1", Title: "Linen Shirt", Price: 10})

	_, err := Finalize(nil, slots)
	assert.ErrorIs(t, err, ErrMissingAvatar)
}

func TestFinalizeSnapshotsOutfit(t *testing.T) {
	avatar := testAvatar()
	slots := NewSlots()
	applied := slots.Apply(models.CatalogItem{ID: "p1", Title: "Linen Shirt", Price: 10})

	payload, err := Finalize(avatar, slots)
	require.NoError(t, err)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, applied, payload.Items[0])
	assert.Equal(t, *avatar, payload.Avatar)

	// later edits to the builder do not leak into the payload
	slots.Remove(applied.InstanceID)
	avatar.HairColor = "#ffffff"
	assert.Len(t, payload.Items, 1)
	assert.Equal(t, "#2c1b18", payload.Avatar.HairColor)
}

func TestPayloadJSONShape(t *testing.T) {
	slots := NewSlots()
	slots.Apply(models.CatalogItem{ID: "p1", Title: "Red Dress", Price: 49.99, ImageURL: "https://img/p1.png"})

	payload, err := Finalize(testAvatar(), slots)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	items := doc["items"].([]any)
	require.Len(t, items, 1)
	applied := items[0].(map[string]any)
	delete(applied, "instanceId")

	want := map[string]any{
		"region": "Dress",
		"glyph":  applied["glyph"],
		"item": map[string]any{
			"id":       "p1",
			"title":    "Red Dress",
			"price":    49.99,
			"imageUrl": "https://img/p1.png",
		},
		"position": map[string]any{"x": 50.0, "y": 45.0},
		"scale":    1.4,
		"layer":    1.0,
	}
	if diff := cmp.Diff(want, applied); diff != "" {
		t.Errorf("applied item JSON mismatch (-want +got):\n%s", diff)
	}

	avatar := doc["avatar"].(map[string]any)
	assert.Equal(t, "avatar-1", avatar["id"])
	assert.Equal(t, "adult", avatar["ageGroup"])
}
