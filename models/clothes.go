package models

import (
	"regexp"
	"time"

	"wardrobeapi/outfit"

	"github.com/go-playground/validator"
	"gorm.io/datatypes"
)

type Clothing struct {
	JsonModel
	Owner     UserAccount `json:"-"`
	OwnerID   uint        `gorm:"index" json:"-"`
	Name      string      `json:"name"`
	Filename  string      `json:"filename"`
	ImagePath *string     `json:"image_path"`
	// e.g., top, bottom, skirt, outerwear, footwear, hat, bag, accessory
	Category  string `gorm:"index" json:"category"`
	Type      string `json:"type"` // free text: t-shirt, jeans, long dress...
	Color     string `gorm:"index" json:"color"`
	ColorTone string `json:"color_tone"` // warm, cool, neutral, multi
	Material  string `json:"material"`
	Thickness string `json:"thickness"` // thin, medium, thick

	Style     datatypes.JSONSlice[string] `json:"style"`
	Season    datatypes.JSONSlice[string] `json:"season"`
	Occasions datatypes.JSONSlice[string] `json:"suitable_occasions"`
	Features  datatypes.JSONSlice[string] `json:"features"`

	Description *string  `gorm:"type:text" json:"description"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price"`
	UserNotes   *string  `gorm:"type:text" json:"user_notes"`

	IsFavorite bool `gorm:"default:false" json:"is_favorite"`
	// archived clothes are kept but never recommended
	IsArchived bool `gorm:"default:false" json:"is_archived"`

	WearCount  int        `gorm:"default:0" json:"wear_count"`
	LastWornAt *time.Time `json:"last_worn_at"`
}

// Garment is the view of the record the outfit engine works on.
func (c Clothing) Garment() outfit.Garment {
	return outfit.Garment{
		ID:        c.ID,
		Name:      c.Name,
		Category:  c.Category,
		Type:      c.Type,
		Color:     c.Color,
		Style:     []string(c.Style),
		Season:    []string(c.Season),
		Occasions: []string(c.Occasions),
		Archived:  c.IsArchived,
	}
}

func Garments(clothes []Clothing) []outfit.Garment {
	garments := make([]outfit.Garment, len(clothes))
	for i, c := range clothes {
		garments[i] = c.Garment()
	}
	return garments
}

// OutfitRecord is a worn outfit logged by the user.
type OutfitRecord struct {
	JsonModel
	OwnerID     uint                      `gorm:"index" json:"-"`
	Owner       UserAccount               `json:"-"`
	Name        string                    `json:"outfit_name"`
	ClothingIDs datatypes.JSONSlice[uint] `json:"clothing_ids"`
	WornAt      time.Time                 `json:"worn_at"`
	Weather     string                    `json:"weather"`
	Temperature *float64                  `json:"temperature"`
	Occasion    string                    `json:"occasion"`
	Mood        string                    `json:"mood"`
	Rating      *int                      `json:"rating"`
	Notes       *string                   `gorm:"type:text" json:"notes"`
	// set once the wear counts of the clothes have been bumped
	WearApplied bool `gorm:"default:false" json:"wear_applied"`
}

var seasonRegex = regexp.MustCompile("^(spring|summer|autumn|winter)$")

func ValidateSeason(fl validator.FieldLevel) bool {
	return seasonRegex.MatchString(fl.Field().String())
}
