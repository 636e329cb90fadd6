package outfit

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Engine answers recommendation requests over catalog snapshots.
type Engine struct {
	tables Tables
	scorer *Scorer
	cfg    Config
	logger zerolog.Logger
}

// NewEngine builds an engine around tables. With cfg.EnforceSymmetry the
// tables are repaired first and every repaired entry is logged as a data
// quality warning.
func NewEngine(tables Tables, cfg Config, logger zerolog.Logger) *Engine {
	cfg = cfg.withDefaults()
	logger = logger.With().Str("component", "outfit_engine").Logger()
	if edges := tables.Asymmetries(); len(edges) > 0 {
		for _, e := range edges {
			logger.Warn().Str("table", e.Table).Str("from", e.From).Str("to", e.To).
				Bool("repaired", cfg.EnforceSymmetry).Msg("one-way compatibility entry")
		}
		if cfg.EnforceSymmetry {
			tables = tables.Symmetrize()
		}
	}
	return &Engine{
		tables: tables,
		scorer: NewScorer(tables),
		cfg:    cfg,
		logger: logger,
	}
}

func (e *Engine) Tables() Tables { return e.tables }

// RecommendForItem ranks, per needed category, the catalog garments that go
// best with the base garment.
func (e *Engine) RecommendForItem(catalog []Garment, req ItemRequest) RecommendationResult {
	base, ok := findActive(catalog, req.BaseID)
	if !ok {
		return RecommendationResult{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("base garment %d not found", req.BaseID),
		}
	}
	limit := e.limit(req.Limit)
	season := req.Season
	if season == "" && len(base.Season) > 0 {
		season = base.Season[0]
	}
	e.traceUnknownLabels(base)

	needs := NeededCategories(base.Category, base.Type)
	dropFullBody := slices.Contains(needs, CategoryTop)

	recs := map[string][]ScoredGarment{}
	for _, category := range needs {
		var scored []ScoredGarment
		for _, g := range catalog {
			if g.Archived || g.ID == base.ID || g.Category != category {
				continue
			}
			if dropFullBody && Classify(g.Category, g.Type) == KindFullBody {
				continue
			}
			if season != "" && !slices.Contains(g.Season, season) {
				continue
			}
			if req.Occasion != "" && !slices.Contains(g.Occasions, req.Occasion) {
				continue
			}
			scored = append(scored, ScoredGarment{
				Garment: g,
				Score:   e.scorer.Score(g, base.Color, base.Style, season),
			})
		}
		if len(scored) == 0 {
			continue
		}
		slices.SortFunc(scored, func(a, b ScoredGarment) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		recs[category] = scored[:min(limit, len(scored))]
	}

	return RecommendationResult{
		Status:          StatusOK,
		Base:            &base,
		Recommendations: recs,
		Suggestions:     e.suggestions(base),
		Season:          season,
		Occasion:        req.Occasion,
	}
}

// RecommendForOccasion assembles whole outfits from the garments suitable for
// an occasion.
func (e *Engine) RecommendForOccasion(catalog []Garment, req OccasionRequest) RecommendationResult {
	var items []Garment
	for _, g := range catalog {
		if g.Archived || !slices.Contains(g.Occasions, req.Occasion) {
			continue
		}
		if req.Season != "" && !slices.Contains(g.Season, req.Season) {
			continue
		}
		items = append(items, g)
	}
	if len(items) == 0 {
		msg := fmt.Sprintf("no garments found for occasion %q", req.Occasion)
		if req.Season != "" {
			msg = fmt.Sprintf("no garments found for occasion %q in %s", req.Occasion, req.Season)
		}
		return RecommendationResult{Status: StatusEmpty, Message: msg, Occasion: req.Occasion, Season: req.Season}
	}

	count := req.Count
	if count <= 0 {
		count = e.cfg.DefaultCount
	}
	outfits := e.combinations(groupPools(items), req.StylePreference)
	e.logger.Debug().Str("occasion", req.Occasion).Int("garments", len(items)).
		Int("combinations", len(outfits)).Msg("assembled outfits")

	return RecommendationResult{
		Status:   StatusOK,
		Occasion: req.Occasion,
		Season:   req.Season,
		Outfits:  outfits[:min(count, len(outfits))],
	}
}

type pools struct {
	tops, bottoms, skirts, footwear, fullBody []Garment
}

// groupPools sorts garments by ID and routes them into the pools the
// enumerator draws from. Full-body garments never land in the top, bottom or
// skirt pools, whatever their category.
func groupPools(items []Garment) pools {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b Garment) int { return cmp.Compare(a.ID, b.ID) })

	var p pools
	for _, g := range sorted {
		if Classify(g.Category, g.Type) == KindFullBody {
			p.fullBody = append(p.fullBody, g)
			continue
		}
		switch g.Category {
		case CategoryTop:
			p.tops = append(p.tops, g)
		case CategoryBottom:
			p.bottoms = append(p.bottoms, g)
		case CategorySkirt:
			p.skirts = append(p.skirts, g)
		case CategoryFootwear:
			p.footwear = append(p.footwear, g)
		}
	}
	return p
}

func (e *Engine) combinations(p pools, stylePreference []string) []OutfitCombination {
	b := e.cfg.Bounds
	tops := capped(p.tops, b.Tops)
	footwear := capped(p.footwear, b.Footwear)

	var out []OutfitCombination
	keep := func(items []Garment) {
		score := e.scorer.ScoreCombination(items, stylePreference)
		if score < e.cfg.MinCombinationScore {
			return
		}
		out = append(out, OutfitCombination{Items: items, Score: score, Type: comboType(items)})
	}
	pair := func(lowers []Garment) {
		for _, top := range tops {
			for _, lower := range lowers {
				if len(footwear) == 0 {
					keep([]Garment{top, lower})
					continue
				}
				for _, shoe := range footwear {
					keep([]Garment{top, lower, shoe})
				}
			}
		}
	}
	pair(capped(p.bottoms, b.Bottoms))
	pair(capped(p.skirts, b.Skirts))

	for _, dress := range capped(p.fullBody, b.FullBody) {
		out = append(out, OutfitCombination{
			Items: []Garment{dress},
			Score: e.scorer.ScoreCombination([]Garment{dress}, stylePreference),
			Type:  CategoryFullBody,
		})
	}

	slices.SortStableFunc(out, func(a, b OutfitCombination) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return compareIDs(a.Items, b.Items)
	})
	return out
}

func (e *Engine) limit(requested int) int {
	if requested <= 0 {
		return e.cfg.DefaultLimit
	}
	return min(requested, e.cfg.MaxLimit)
}

// traceUnknownLabels notes labels the tables cannot score. Open vocabulary is
// expected, so this never fails the request.
func (e *Engine) traceUnknownLabels(g Garment) {
	if g.Color != "" {
		if _, ok := e.tables.Colors[g.Color]; !ok {
			e.logger.Debug().Uint("garment_id", g.ID).Str("color", g.Color).Msg("color has no compatibility entry")
		}
	}
	for _, s := range g.Style {
		if _, ok := e.tables.Styles[s]; !ok {
			e.logger.Debug().Uint("garment_id", g.ID).Str("style", s).Msg("style has no compatibility entry")
		}
	}
}

func findActive(catalog []Garment, id uint) (Garment, bool) {
	for _, g := range catalog {
		if g.ID == id && !g.Archived {
			return g, true
		}
	}
	return Garment{}, false
}

func capped(items []Garment, n int) []Garment {
	return items[:min(n, len(items))]
}

func comboType(items []Garment) string {
	labels := make([]string, len(items))
	for i, g := range items {
		labels[i] = g.Category
	}
	return strings.Join(labels, "+")
}

func compareIDs(a, b []Garment) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i].ID, b[i].ID); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
