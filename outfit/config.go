package outfit

const (
	DefaultLimit    = 5
	MaxLimit        = 10
	DefaultCount    = 3
	DefaultMinScore = 0.3
)

// Bounds caps how many garments of each pool enter the cross product, which
// keeps the worst case at Tops*Bottoms*Footwear + Tops*Skirts*Footwear +
// FullBody combinations regardless of catalog size.
type Bounds struct {
	Tops     int `json:"tops"`
	Bottoms  int `json:"bottoms"`
	Skirts   int `json:"skirts"`
	Footwear int `json:"footwear"`
	FullBody int `json:"full_body"`
}

func DefaultBounds() Bounds {
	return Bounds{Tops: 5, Bottoms: 3, Skirts: 3, Footwear: 3, FullBody: 5}
}

// Config tunes the engine. Zero bounds and limits fall back to defaults in
// NewEngine, a negative MinCombinationScore falls back to DefaultMinScore.
type Config struct {
	Bounds Bounds `json:"bounds"`

	// MinCombinationScore drops weaker outfits before ranking.
	MinCombinationScore float64 `json:"min_combination_score"`

	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
	DefaultCount int `json:"default_count"`

	// EnforceSymmetry repairs one-way table entries at construction.
	EnforceSymmetry bool `json:"enforce_symmetry"`
}

func DefaultConfig() Config {
	return Config{
		Bounds:              DefaultBounds(),
		MinCombinationScore: DefaultMinScore,
		DefaultLimit:        DefaultLimit,
		MaxLimit:            MaxLimit,
		DefaultCount:        DefaultCount,
		EnforceSymmetry:     true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Bounds.Tops <= 0 {
		c.Bounds.Tops = d.Bounds.Tops
	}
	if c.Bounds.Bottoms <= 0 {
		c.Bounds.Bottoms = d.Bounds.Bottoms
	}
	if c.Bounds.Skirts <= 0 {
		c.Bounds.Skirts = d.Bounds.Skirts
	}
	if c.Bounds.Footwear <= 0 {
		c.Bounds.Footwear = d.Bounds.Footwear
	}
	if c.Bounds.FullBody <= 0 {
		c.Bounds.FullBody = d.Bounds.FullBody
	}
	if c.MinCombinationScore < 0 {
		c.MinCombinationScore = d.MinCombinationScore
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = d.MaxLimit
	}
	if c.DefaultCount <= 0 {
		c.DefaultCount = d.DefaultCount
	}
	return c
}
