// Package outfit scores garment compatibility and assembles outfit
// combinations from a catalog snapshot.
//
// The package is pure computation: callers hand in already materialized
// garments and get back transient results. An Engine holds only its
// compatibility tables and configuration, both read-only after construction,
// so one Engine can serve concurrent requests.
package outfit

// Category labels the engine knows rules for. Any other label is accepted and
// treated as an opaque key.
const (
	CategoryTop       = "top"
	CategoryBottom    = "bottom"
	CategorySkirt     = "skirt"
	CategoryFullBody  = "full-body"
	CategoryOuterwear = "outerwear"
	CategoryFootwear  = "footwear"
	CategoryHat       = "hat"
	CategoryBag       = "bag"
	CategoryAccessory = "accessory"
)

// Status tells callers how a request ended. Failures are returned as data.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNotFound Status = "not_found"
	StatusEmpty    Status = "empty"
)

// Garment is the read-only view of one catalog entry.
type Garment struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name,omitempty"`
	Category  string   `json:"category"`
	Type      string   `json:"type"`
	Color     string   `json:"color"`
	Style     []string `json:"style"`
	Season    []string `json:"season"`
	Occasions []string `json:"suitable_occasions"`
	Archived  bool     `json:"is_archived"`
}

type ScoredGarment struct {
	Garment
	Score float64 `json:"score"`
}

// OutfitCombination is one candidate outfit.
type OutfitCombination struct {
	Items []Garment `json:"items"`
	Score float64   `json:"score"`
	Type  string    `json:"type"`
}

// RecommendationResult is built per request and never stored.
type RecommendationResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`

	// single-base recommendations
	Base            *Garment                   `json:"base_item,omitempty"`
	Recommendations map[string][]ScoredGarment `json:"recommendations,omitempty"`
	Suggestions     []string                   `json:"suggestions,omitempty"`

	// occasion recommendations
	Occasion string              `json:"occasion,omitempty"`
	Season   string              `json:"season,omitempty"`
	Outfits  []OutfitCombination `json:"outfits,omitempty"`
}

// Success reports whether the request produced a usable answer.
func (r RecommendationResult) Success() bool {
	return r.Status == StatusOK
}

// ItemRequest asks for garments that complete an outfit around BaseID.
type ItemRequest struct {
	BaseID   uint
	Occasion string
	Season   string
	// Limit caps each category list. Zero means Config.DefaultLimit.
	Limit int
}

// OccasionRequest asks for whole outfits for an occasion.
type OccasionRequest struct {
	Occasion        string
	Season          string
	StylePreference []string
	// Count caps the number of outfits. Zero means Config.DefaultCount.
	Count int
}
