package outfit

import (
	"math"
	"slices"
)

// Term caps. They add up to 1.0 so a perfect match needs no normalization.
const (
	ColorWeight  = 0.4
	StyleWeight  = 0.4
	SeasonWeight = 0.2

	sameColorScore      = 0.2
	otherColorScore     = 0.1
	relatedStyleScore   = 0.2
	adjacentSeasonScore = 0.1

	recurringStyleScore = 0.3
	preferredStyleScore = 0.1
	singleItemScore     = 0.5

	scorePrecision = 1e4
)

// Scorer computes match scores against one rule set.
type Scorer struct {
	tables Tables
}

func NewScorer(tables Tables) *Scorer {
	return &Scorer{tables: tables}
}

// Score rates candidate against a base described by its color, styles and a
// single season. Labels missing from the tables contribute nothing.
func (s *Scorer) Score(candidate Garment, baseColor string, baseStyles []string, baseSeason string) float64 {
	score := s.colorTerm(candidate.Color, baseColor) +
		s.styleTerm(candidate.Style, baseStyles) +
		s.seasonTerm(candidate.Season, baseSeason)
	return clamp(score)
}

func (s *Scorer) colorTerm(color, baseColor string) float64 {
	switch {
	case color == "" || baseColor == "":
		return 0
	case color == baseColor:
		return sameColorScore
	case s.tables.colorsCompatible(baseColor, color):
		return ColorWeight
	default:
		return otherColorScore
	}
}

func (s *Scorer) styleTerm(styles, baseStyles []string) float64 {
	base := uniq(baseStyles)
	if len(base) == 0 || len(styles) == 0 {
		return 0
	}
	overlap := 0
	for _, b := range base {
		if slices.Contains(styles, b) {
			overlap++
		}
	}
	if overlap > 0 {
		return StyleWeight * float64(overlap) / float64(len(base))
	}
	for _, b := range base {
		related := s.tables.Styles[b]
		for _, st := range styles {
			if slices.Contains(related, st) {
				return relatedStyleScore
			}
		}
	}
	return 0
}

func (s *Scorer) seasonTerm(seasons []string, baseSeason string) float64 {
	if baseSeason == "" || len(seasons) == 0 {
		return 0
	}
	if slices.Contains(seasons, baseSeason) {
		return SeasonWeight
	}
	adjacent := s.tables.Seasons[baseSeason]
	for _, season := range seasons {
		if slices.Contains(adjacent, season) {
			return adjacentSeasonScore
		}
	}
	return 0
}

// ScoreCombination rates a whole outfit. Fewer than two items always get the
// fixed single-item score.
func (s *Scorer) ScoreCombination(items []Garment, stylePreference []string) float64 {
	if len(items) < 2 {
		return singleItemScore
	}
	score := s.pairwiseColorTerm(items) + s.styleConsensusTerm(items, stylePreference)
	if sharesSeason(items) {
		score += SeasonWeight
	}
	return clamp(score)
}

func (s *Scorer) pairwiseColorTerm(items []Garment) float64 {
	var colors []string
	for _, item := range items {
		if item.Color != "" {
			colors = append(colors, item.Color)
		}
	}
	if len(colors) < 2 {
		return 0
	}
	pairs, matched := 0, 0
	for i := range colors {
		for j := i + 1; j < len(colors); j++ {
			pairs++
			if colors[i] == colors[j] || s.tables.colorsCompatible(colors[i], colors[j]) {
				matched++
			}
		}
	}
	return ColorWeight * float64(matched) / float64(pairs)
}

func (s *Scorer) styleConsensusTerm(items []Garment, stylePreference []string) float64 {
	counts := map[string]int{}
	for _, item := range items {
		for _, style := range uniq(item.Style) {
			counts[style]++
		}
	}
	if len(counts) == 0 {
		return 0
	}
	recurring := 0
	for _, n := range counts {
		if n > 1 {
			recurring++
		}
	}
	score := min(recurringStyleScore*float64(recurring), StyleWeight)
	// not capped on its own, ScoreCombination clamps the total
	for _, pref := range uniq(stylePreference) {
		if counts[pref] > 0 {
			score += preferredStyleScore
		}
	}
	return score
}

func sharesSeason(items []Garment) bool {
	var common []string
	seen := false
	for _, item := range items {
		if len(item.Season) == 0 {
			continue
		}
		if !seen {
			common = uniq(item.Season)
			seen = true
			continue
		}
		common = slices.DeleteFunc(common, func(s string) bool { return !slices.Contains(item.Season, s) })
	}
	return len(common) > 0
}

func uniq(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// clamp rounds to scorePrecision so equal term sums compare equal, then
// bounds the score to [0, 1].
func clamp(score float64) float64 {
	score = math.Round(score*scorePrecision) / scorePrecision
	return max(0, min(score, 1))
}
