package model

// Gender of a cat profile
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// CatProfile is a single card in the deck. Values are never mutated once dealt.
type CatProfile struct {
	Image  string `json:"image"`  // opaque image reference (URL)
	Name   string `json:"name"`   // display name
	Color  string `json:"color"`  // coat color label
	Gender Gender `json:"gender"` // Male or Female
}
