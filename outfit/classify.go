package outfit

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Kind is the structural class of a garment.
type Kind int

const (
	KindOther Kind = iota
	// KindFullBody replaces both a top and a bottom (dresses, jumpsuits).
	KindFullBody
	// KindPartialLower needs a top (skirts that are not dresses).
	KindPartialLower
)

func (k Kind) String() string {
	switch k {
	case KindFullBody:
		return "full_body"
	case KindPartialLower:
		return "partial_lower"
	default:
		return "other"
	}
}

var (
	fullBodyMarkers = []string{"连衣裙", "长裙", "连体", "dress", "long skirt", "maxi skirt", "jumpsuit", "romper", "overalls"}
	// worn with other pieces despite the word "dress"
	dressWear    = []string{"dress shirt", "dress pants", "dress trousers", "dress shoe"}
	skirtMarkers = []string{"裙", "skirt"}
	// categories whose type never makes the garment body wear, e.g. "dress boots"
	nonBodyCategories = []string{CategoryOuterwear, CategoryFootwear, CategoryHat, CategoryBag, CategoryAccessory}
)

var categoryNeeds = map[string][]string{
	CategoryTop:       {CategoryBottom, CategorySkirt, CategoryFootwear},
	CategoryBottom:    {CategoryTop, CategoryFootwear},
	CategorySkirt:     {CategoryTop, CategoryFootwear},
	CategoryOuterwear: {CategoryTop, CategoryBottom, CategorySkirt, CategoryFootwear},
	CategoryFootwear:  {CategoryTop, CategoryBottom, CategorySkirt},
	CategoryHat:       {CategoryTop, CategoryBottom, CategorySkirt, CategoryFootwear},
	CategoryBag:       {CategoryTop, CategoryBottom, CategorySkirt, CategoryFootwear},
	CategoryAccessory: {CategoryTop, CategoryBottom, CategorySkirt, CategoryFootwear},
	CategoryFullBody:  {CategoryFootwear, CategoryBag, CategoryAccessory},
}

var (
	fullBodyNeeds = []string{CategoryFootwear, CategoryBag, CategoryAccessory}
	skirtNeeds    = []string{CategoryTop, CategoryFootwear}
	defaultNeeds  = []string{CategoryTop, CategoryBottom, CategoryFootwear}
)

// Classify decides the structural kind from the category and the free-text
// type. The type wins over the category: a "long dress" filed under skirt is
// still full body. Footwear, outerwear, hats, bags and accessories are
// always KindOther.
func Classify(category, garmentType string) Kind {
	if slices.Contains(nonBodyCategories, category) {
		return KindOther
	}
	folded := cases.Fold().String(garmentType)
	if category == CategoryFullBody || (containsAny(folded, fullBodyMarkers) && !containsAny(folded, dressWear)) {
		return KindFullBody
	}
	if containsAny(folded, skirtMarkers) {
		return KindPartialLower
	}
	return KindOther
}

// NeededCategories lists the categories that complete an outfit around a
// garment of the given category and type.
func NeededCategories(category, garmentType string) []string {
	switch Classify(category, garmentType) {
	case KindFullBody:
		return slices.Clone(fullBodyNeeds)
	case KindPartialLower:
		return slices.Clone(skirtNeeds)
	}
	if needs, ok := categoryNeeds[category]; ok {
		return slices.Clone(needs)
	}
	return slices.Clone(defaultNeeds)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
