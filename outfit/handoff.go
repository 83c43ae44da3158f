package outfit

import (
	"errors"

	"outfit-studio/models"
)

// EmptyOutfitError is returned when the user tries to finalize a look with nothing applied
type EmptyOutfitError struct {
	AvatarID string
}

func (e *EmptyOutfitError) Error() string {
	return "outfit has no items: add at least one item before continuing"
}

// Is lets errors.Is(err, ErrEmptyOutfit) match any EmptyOutfitError
func (e *EmptyOutfitError) Is(target error) bool {
	_, ok := target.(*EmptyOutfitError)
	return ok
}

// ErrEmptyOutfit is the sentinel for EmptyOutfitError
var ErrEmptyOutfit = &EmptyOutfitError{}

// ErrMissingAvatar is returned when finalizing without a base avatar
var ErrMissingAvatar = errors.New("base avatar has not been created")

// Finalize snapshots the avatar and its applied items into a handoff payload.
// The payload shares no memory with slots.
func Finalize(avatar *models.BaseAvatarConfig, slots *Slots) (models.OutfitPayload, error) {
	if avatar == nil {
		return models.OutfitPayload{}, ErrMissingAvatar
	}
	if slots == nil || slots.Len() == 0 {
		return models.OutfitPayload{}, &EmptyOutfitError{AvatarID: avatar.ID}
	}

	return models.OutfitPayload{
		Avatar: *avatar,
		Items:  slots.List(),
	}, nil
}
