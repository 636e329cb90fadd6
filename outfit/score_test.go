package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultScorer() *Scorer {
	return NewScorer(DefaultTables().Symmetrize())
}

func TestScoreBlackBottomWhiteTop(t *testing.T) {
	s := defaultScorer()
	top := Garment{ID: 2, Category: CategoryTop, Color: "white", Style: []string{"casual"}, Season: []string{"autumn"}}

	score := s.Score(top, "black", []string{"casual"}, "autumn")
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreColorTerm(t *testing.T) {
	s := defaultScorer()
	cases := []struct {
		name      string
		color     string
		baseColor string
		want      float64
	}{
		{"compatible", "white", "black", 0.4},
		{"identical", "black", "black", 0.2},
		{"unrelated", "green", "red", 0.1},
		{"unknown base color", "white", "chartreuse", 0.1},
		{"unknown identical color", "chartreuse", "chartreuse", 0.2},
		{"missing candidate color", "", "black", 0},
		{"missing base color", "white", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Score(Garment{Color: tc.color}, tc.baseColor, nil, "")
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCompatibleColorsAlwaysEarnFullColorTerm(t *testing.T) {
	tables := DefaultTables().Symmetrize()
	s := NewScorer(tables)
	for base, compatible := range tables.Colors {
		for _, color := range compatible {
			got := s.colorTerm(color, base)
			assert.GreaterOrEqual(t, got, ColorWeight, "%s against %s", color, base)
		}
	}
}

func TestIdenticalColorIgnoresSelfListing(t *testing.T) {
	tables := Tables{Colors: map[string][]string{"navy": {"navy", "white"}}}
	s := NewScorer(tables)
	assert.InDelta(t, 0.2, s.colorTerm("navy", "navy"), 1e-9)
}

func TestScoreStyleTerm(t *testing.T) {
	s := defaultScorer()

	assert.InDelta(t, 0.4, s.Score(Garment{Style: []string{"casual", "street"}}, "", []string{"casual"}, ""), 1e-9)
	assert.InDelta(t, 0.2, s.Score(Garment{Style: []string{"casual"}}, "", []string{"casual", "formal"}, ""), 1e-9)
	// no overlap, but casual lists street
	assert.InDelta(t, 0.2, s.Score(Garment{Style: []string{"street"}}, "", []string{"casual"}, ""), 1e-9)
	assert.InDelta(t, 0.0, s.Score(Garment{Style: []string{"sporty"}}, "", []string{"formal"}, ""), 1e-9)
	assert.InDelta(t, 0.0, s.Score(Garment{Style: []string{"boho"}}, "", []string{"unheard-of"}, ""), 1e-9)
}

func TestScoreSeasonTerm(t *testing.T) {
	s := defaultScorer()

	assert.InDelta(t, 0.2, s.Score(Garment{Season: []string{"spring", "summer"}}, "", nil, "spring"), 1e-9)
	assert.InDelta(t, 0.1, s.Score(Garment{Season: []string{"autumn"}}, "", nil, "spring"), 1e-9)
	assert.InDelta(t, 0.0, s.Score(Garment{Season: []string{"summer"}}, "", nil, "winter"), 1e-9)
	assert.InDelta(t, 0.0, s.Score(Garment{Season: []string{"summer"}}, "", nil, ""), 1e-9)
}

func TestScoreCombinationSingleItem(t *testing.T) {
	s := defaultScorer()
	dress := Garment{ID: 1, Category: CategorySkirt, Type: "long dress", Color: "red"}

	assert.Equal(t, 0.5, s.ScoreCombination([]Garment{dress}, nil))
	assert.Equal(t, 0.5, s.ScoreCombination(nil, []string{"casual"}))
}

func TestScoreCombinationTerms(t *testing.T) {
	s := defaultScorer()
	top := Garment{ID: 1, Category: CategoryTop, Color: "white", Style: []string{"casual"}, Season: []string{"autumn", "spring"}}
	bottom := Garment{ID: 2, Category: CategoryBottom, Color: "black", Style: []string{"casual"}, Season: []string{"autumn"}}

	// 0.4 colors + 0.3 one recurring style + 0.2 shared season
	assert.InDelta(t, 0.9, s.ScoreCombination([]Garment{top, bottom}, nil), 1e-9)
	assert.InDelta(t, 1.0, s.ScoreCombination([]Garment{top, bottom}, []string{"casual"}), 1e-9)

	bottom.Season = []string{"summer"}
	assert.InDelta(t, 0.7, s.ScoreCombination([]Garment{top, bottom}, nil), 1e-9)

	clash := Garment{ID: 3, Category: CategoryBottom, Color: "green"}
	red := Garment{ID: 4, Category: CategoryTop, Color: "red"}
	assert.InDelta(t, 0.0, s.ScoreCombination([]Garment{red, clash}, nil), 1e-9)
}

func TestScoreCombinationPairwiseFraction(t *testing.T) {
	s := defaultScorer()
	items := []Garment{
		{ID: 1, Color: "red"},
		{ID: 2, Color: "green"},
		{ID: 3, Color: "white"},
	}
	// red-white and green-white match, red-green does not
	assert.Equal(t, 0.2667, s.ScoreCombination(items, nil))
}

func TestEqualTermSumsCompareEqual(t *testing.T) {
	s := defaultScorer()
	// 0.4 compatible color + 0.2 related style + 0.1 adjacent season
	a := Garment{ID: 5, Color: "white", Style: []string{"sporty"}, Season: []string{"spring"}}
	// 0.1 other color + 0.4 exact style + 0.2 exact season
	b := Garment{ID: 3, Color: "teal", Style: []string{"casual"}, Season: []string{"autumn"}}

	scoreA := s.Score(a, "black", []string{"casual"}, "autumn")
	scoreB := s.Score(b, "black", []string{"casual"}, "autumn")
	assert.Equal(t, 0.7, scoreA)
	assert.Equal(t, scoreA, scoreB)
}

func TestScoreCombinationIsClamped(t *testing.T) {
	s := defaultScorer()
	styles := []string{"casual", "street", "sporty", "fashion", "vintage"}
	items := []Garment{
		{ID: 1, Color: "white", Style: styles, Season: []string{"summer"}},
		{ID: 2, Color: "black", Style: styles, Season: []string{"summer"}},
		{ID: 3, Color: "black", Style: styles, Season: []string{"summer"}},
	}

	score := s.ScoreCombination(items, styles)
	require.LessOrEqual(t, score, 1.0)
	assert.Equal(t, 1.0, score)
}

func TestScoresStayInUnitRange(t *testing.T) {
	s := defaultScorer()
	colors := []string{"", "black", "white", "red", "denim", "chartreuse"}
	styleSets := [][]string{nil, {"casual"}, {"casual", "casual"}, {"formal", "elegant", "commute"}, {"boho"}}
	seasons := [][]string{nil, {"spring"}, {"autumn", "winter"}, {"monsoon"}}

	for _, c1 := range colors {
		for _, c2 := range colors {
			for _, st1 := range styleSets {
				for _, st2 := range styleSets {
					for _, se := range seasons {
						a := Garment{ID: 1, Color: c1, Style: st1, Season: se}
						b := Garment{ID: 2, Color: c2, Style: st2, Season: se}
						baseSeason := ""
						if len(se) > 0 {
							baseSeason = se[0]
						}
						one := s.Score(a, c2, st2, baseSeason)
						assert.True(t, one >= 0 && one <= 1, "score %v out of range", one)
						combo := s.ScoreCombination([]Garment{a, b}, st1)
						assert.True(t, combo >= 0 && combo <= 1, "combination %v out of range", combo)
					}
				}
			}
		}
	}
}
