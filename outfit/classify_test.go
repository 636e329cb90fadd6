package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		category, garmentType string
		want                  Kind
	}{
		{CategorySkirt, "连衣裙", KindFullBody},
		{CategorySkirt, "长裙", KindFullBody},
		{CategoryBottom, "连体裤", KindFullBody},
		{CategorySkirt, "Long Dress", KindFullBody},
		{CategoryBottom, "JUMPSUIT", KindFullBody},
		{CategoryFullBody, "", KindFullBody},
		{CategorySkirt, "半身裙", KindPartialLower},
		{CategorySkirt, "half skirt", KindPartialLower},
		{CategorySkirt, "Pleated Skirt", KindPartialLower},
		{CategoryTop, "dress shirt", KindOther},
		{CategoryFootwear, "dress boots", KindOther},
		{CategoryOuterwear, "dress coat", KindOther},
		{CategoryAccessory, "dress watch", KindOther},
		{CategoryBag, "skirt clutch", KindOther},
		{"romperwear", "romper", KindFullBody},
		{CategoryTop, "t-shirt", KindOther},
		{CategoryBottom, "jeans", KindOther},
		{"", "", KindOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.category, tc.garmentType), "%s/%s", tc.category, tc.garmentType)
	}
}

func TestNeededCategoriesFullBodyNeverNeedsTop(t *testing.T) {
	for _, typ := range []string{"连衣裙", "long dress", "jumpsuit", "长裙"} {
		needs := NeededCategories(CategorySkirt, typ)
		assert.NotContains(t, needs, CategoryTop, typ)
		assert.Equal(t, []string{CategoryFootwear, CategoryBag, CategoryAccessory}, needs)
	}
}

func TestNeededCategoriesHalfSkirtNeedsTop(t *testing.T) {
	for _, typ := range []string{"half skirt", "半身裙", "mini skirt"} {
		assert.Equal(t, []string{CategoryTop, CategoryFootwear}, NeededCategories(CategorySkirt, typ), typ)
	}
}

func TestNeededCategoriesByCategory(t *testing.T) {
	assert.Equal(t, []string{CategoryBottom, CategorySkirt, CategoryFootwear}, NeededCategories(CategoryTop, "t-shirt"))
	assert.Equal(t, []string{CategoryTop, CategoryFootwear}, NeededCategories(CategoryBottom, "jeans"))
	assert.Equal(t, []string{CategoryTop, CategoryBottom, CategorySkirt, CategoryFootwear}, NeededCategories(CategoryOuterwear, "trench coat"))
	assert.Equal(t, []string{CategoryTop, CategoryBottom, CategorySkirt}, NeededCategories(CategoryFootwear, "sneakers"))
	assert.Equal(t, []string{CategoryTop, CategoryBottom, CategorySkirt}, NeededCategories(CategoryFootwear, "dress boots"))
	assert.Equal(t, []string{CategoryTop, CategoryBottom, CategorySkirt, CategoryFootwear}, NeededCategories(CategoryOuterwear, "dress coat"))
	// unknown category
	assert.Equal(t, []string{CategoryTop, CategoryBottom, CategoryFootwear}, NeededCategories("scarf", "silk"))
}

func TestNeededCategoriesReturnsFreshSlice(t *testing.T) {
	first := NeededCategories(CategoryBottom, "")
	first[0] = "mutated"
	assert.Equal(t, []string{CategoryTop, CategoryFootwear}, NeededCategories(CategoryBottom, ""))
}
