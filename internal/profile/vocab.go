package profile

import "github.com/pawsprefs/paws/internal/model"

// Names cats are dealt from
var Names = []string{
	"Whiskers", "Mittens", "Luna", "Simba", "Oliver", "Cleo",
	"Shadow", "Tiger", "Nala", "Milo", "Pumpkin", "Smokey",
	"Ginger", "Pepper", "Biscuit", "Mochi",
}

// Colors are the coat color labels
var Colors = []string{
	"Black", "White", "Orange", "Grey", "Calico",
	"Tabby", "Tortoiseshell", "Cream", "Tuxedo",
}

// Genders holds both values of model.Gender
var Genders = []model.Gender{model.GenderMale, model.GenderFemale}
