package outfit

import (
	"fmt"
	"slices"
	"strings"
)

var styleSuggestions = []struct {
	style string
	text  string
}{
	{"formal", "Fits business meetings and formal occasions"},
	{"casual", "A great pick for relaxed everyday wear"},
	{"sporty", "Works for workouts and outdoor activities"},
}

// suggestions builds the free-text tips shown next to a recommendation.
// They are templated from the base garment and not scored.
func (e *Engine) suggestions(base Garment) []string {
	var out []string

	switch kind := Classify(base.Category, base.Type); {
	case kind == KindFullBody:
		out = append(out, "A dress works on its own, just finish it with a good pair of shoes")
	case kind == KindPartialLower, base.Category == CategorySkirt:
		out = append(out, "This skirt looks best with a fitted top")
	case base.Category == CategoryTop:
		out = append(out, "This top pairs well with casual trousers or jeans")
	case base.Category == CategoryBottom:
		out = append(out, "These trousers go well with a minimalist top")
	}

	if base.Color != "" {
		if colors := e.tables.LookupColors(base.Color); len(colors) > 0 {
			out = append(out, fmt.Sprintf("Try pieces in %s", strings.Join(colors[:min(3, len(colors))], ", ")))
		}
	}

	for _, s := range styleSuggestions {
		if slices.Contains(base.Style, s.style) {
			out = append(out, s.text)
		}
	}
	return out
}
