package outfit

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tables holds the compatibility rule sets the scorer reads.
// A Tables value is treated as immutable once handed to an Engine.
type Tables struct {
	Colors  map[string][]string `yaml:"colors" json:"colors"`
	Styles  map[string][]string `yaml:"styles" json:"styles"`
	Seasons map[string][]string `yaml:"seasons" json:"seasons"`
}

// Edge is a one-way compatibility entry whose reverse entry is missing.
type Edge struct {
	Table string `json:"table"`
	From  string `json:"from"`
	To    string `json:"to"`
}

var neutralColors = []string{"black", "white", "gray"}

// DefaultTables returns the built-in rule set.
func DefaultTables() Tables {
	return Tables{
		Colors: map[string][]string{
			// neutrals go with everything
			"black": {"white", "gray", "beige", "blue", "red", "green", "yellow", "orange", "purple", "pink", "brown", "denim"},
			"white": {"black", "gray", "beige", "blue", "red", "green", "yellow", "orange", "purple", "pink", "brown", "denim"},
			"gray":  {"black", "white", "beige", "blue", "red", "pink", "denim"},
			"beige": {"black", "white", "gray", "brown", "blue", "green", "denim"},

			"blue":   {"black", "white", "gray", "beige", "denim"},
			"red":    {"black", "white", "gray", "beige"},
			"green":  {"black", "white", "beige", "brown"},
			"yellow": {"black", "white", "gray", "blue"},
			"orange": {"black", "white", "blue", "denim"},
			"purple": {"black", "white", "gray", "beige"},
			"pink":   {"black", "white", "gray", "beige", "blue"},
			"brown":  {"white", "beige", "blue", "green", "denim"},
			"denim":  {"black", "white", "gray", "beige", "red", "yellow", "orange", "brown"},
		},
		Styles: map[string][]string{
			"casual":     {"casual", "sporty", "street"},
			"formal":     {"formal", "elegant", "commute"},
			"sporty":     {"sporty", "casual", "street"},
			"fashion":    {"fashion", "street", "elegant", "vintage"},
			"street":     {"street", "casual", "fashion", "sporty"},
			"vintage":    {"vintage", "fashion", "elegant"},
			"minimalist": {"minimalist", "casual", "commute", "elegant"},
			"elegant":    {"elegant", "formal", "fashion", "minimalist"},
			"sweet":      {"sweet", "elegant", "fashion"},
			"commute":    {"commute", "formal", "minimalist", "elegant"},
		},
		Seasons: map[string][]string{
			"spring": {"spring", "autumn"},
			"summer": {"summer"},
			"autumn": {"autumn", "spring", "winter"},
			"winter": {"winter", "autumn"},
		},
	}
}

// LoadTables reads a rule set from YAML. Sections missing from the document
// are left empty, so every lookup against them yields nothing.
func LoadTables(r io.Reader) (Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return Tables{}, fmt.Errorf("decode compatibility tables: %w", err)
	}
	if t.Colors == nil {
		t.Colors = map[string][]string{}
	}
	if t.Styles == nil {
		t.Styles = map[string][]string{}
	}
	if t.Seasons == nil {
		t.Seasons = map[string][]string{}
	}
	return t, nil
}

// LoadTablesFile is LoadTables over a file on disk.
func LoadTablesFile(path string) (Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("open compatibility tables: %w", err)
	}
	defer f.Close()
	return LoadTables(f)
}

// LookupColors returns the colors listed as compatible with color.
// Unknown colors yield an empty slice: only literal equality can match them.
func (t Tables) LookupColors(color string) []string {
	return lookup(t.Colors, color)
}

// CompatibleStyles returns the styles listed for style, empty when unknown.
func (t Tables) CompatibleStyles(style string) []string {
	return lookup(t.Styles, style)
}

// AdjacentSeasons returns the seasons adjacent to season, empty when unknown.
func (t Tables) AdjacentSeasons(season string) []string {
	return lookup(t.Seasons, season)
}

// ColorSuggestions is LookupColors with a neutral fallback for colors that
// have no entry, used for "what goes with X" answers.
func (t Tables) ColorSuggestions(color string) []string {
	if colors, ok := t.Colors[color]; ok && len(colors) > 0 {
		return slices.Clone(colors)
	}
	return slices.Clone(neutralColors)
}

func (t Tables) colorsCompatible(a, b string) bool {
	return slices.Contains(t.Colors[a], b)
}

// Asymmetries lists color and style entries A -> B where B does not list A.
// Output is sorted so reports are stable.
func (t Tables) Asymmetries() []Edge {
	var edges []Edge
	edges = append(edges, asymmetries("colors", t.Colors)...)
	edges = append(edges, asymmetries("styles", t.Styles)...)
	return edges
}

// Symmetrize returns a copy where every missing reverse entry has been
// appended and colors no longer list themselves. The receiver is untouched.
func (t Tables) Symmetrize() Tables {
	out := Tables{
		Colors:  cloneTable(t.Colors),
		Styles:  cloneTable(t.Styles),
		Seasons: cloneTable(t.Seasons),
	}
	for color, list := range out.Colors {
		out.Colors[color] = slices.DeleteFunc(list, func(c string) bool { return c == color })
	}
	for _, e := range asymmetries("colors", out.Colors) {
		out.Colors[e.To] = append(out.Colors[e.To], e.From)
	}
	for _, e := range asymmetries("styles", out.Styles) {
		out.Styles[e.To] = append(out.Styles[e.To], e.From)
	}
	return out
}

func asymmetries(name string, table map[string][]string) []Edge {
	keys := sortedKeys(table)
	var edges []Edge
	for _, from := range keys {
		for _, to := range table[from] {
			if to == from {
				continue
			}
			if !slices.Contains(table[to], from) {
				edges = append(edges, Edge{Table: name, From: from, To: to})
			}
		}
	}
	return edges
}

func lookup(table map[string][]string, key string) []string {
	list, ok := table[key]
	if !ok {
		return []string{}
	}
	return slices.Clone(list)
}

func cloneTable(table map[string][]string) map[string][]string {
	out := make(map[string][]string, len(table))
	for k, v := range table {
		out[k] = slices.Clone(v)
	}
	return out
}

func sortedKeys(table map[string][]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
