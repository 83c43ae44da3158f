package models

// AgeGroup values accepted by the avatar creator
const (
	AgeGroupAdult = "adult"
	AgeGroupKid   = "kid"
)

// Gender values accepted by the avatar creator
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// BaseAvatarConfig represents the base avatar built in the creator step.
// It is immutable for the lifetime of an outfit session.
type BaseAvatarConfig struct {
	ID        string `json:"id"`
	AgeGroup  string `json:"ageGroup"`
	Gender    string `json:"gender"`
	FaceStyle string `json:"faceStyle"`
	SkinTone  string `json:"skinTone"`
	HairStyle string `json:"hairStyle"`
	HairColor string `json:"hairColor"`
	BodyType  string `json:"bodyType"`
	EyeStyle  string `json:"eyeStyle"`
	EyeColor  string `json:"eyeColor"`
}

// CreateAvatarRequest represents the request body for POST /api/avatar
// Example: {"ageGroup": "adult", "gender": "female", "faceStyle": "oval", "skinTone": "#f1c27d",
//           "hairStyle": "long", "hairColor": "#2c1b18", "bodyType": "slim", "eyeStyle": "round", "eyeColor": "#634e34"}
type CreateAvatarRequest struct {
	AgeGroup  string `json:"ageGroup"`
	Gender    string `json:"gender"`
	FaceStyle string `json:"faceStyle"`
	SkinTone  string `json:"skinTone"`
	HairStyle string `json:"hairStyle"`
	HairColor string `json:"hairColor"`
	BodyType  string `json:"bodyType"`
	EyeStyle  string `json:"eyeStyle"`
	EyeColor  string `json:"eyeColor"`
}
