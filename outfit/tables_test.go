package outfit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupColorsUnknownIsEmpty(t *testing.T) {
	tables := DefaultTables()

	got := tables.LookupColors("chartreuse")
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Contains(t, tables.LookupColors("black"), "white")
	assert.Empty(t, tables.CompatibleStyles("boho"))
	assert.Equal(t, []string{"summer"}, tables.AdjacentSeasons("summer"))
}

func TestLookupReturnsCopy(t *testing.T) {
	tables := DefaultTables()
	colors := tables.LookupColors("red")
	colors[0] = "mutated"
	assert.Equal(t, "black", tables.LookupColors("red")[0])
}

func TestColorSuggestionsFallsBackToNeutrals(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, []string{"black", "white", "gray"}, tables.ColorSuggestions("chartreuse"))
	assert.Equal(t, tables.Colors["red"], tables.ColorSuggestions("red"))
}

func TestAsymmetries(t *testing.T) {
	tables := Tables{
		Colors: map[string][]string{"a": {"a", "b", "c"}, "b": {"a"}},
		Styles: map[string][]string{"x": {"x", "y"}},
	}

	assert.Equal(t, []Edge{
		{Table: "colors", From: "a", To: "c"},
		{Table: "styles", From: "x", To: "y"},
	}, tables.Asymmetries())
}

func TestSymmetrize(t *testing.T) {
	tables := Tables{
		Colors: map[string][]string{"a": {"a", "b", "c"}, "b": {"a"}},
		Styles: map[string][]string{"x": {"x", "y"}},
	}

	fixed := tables.Symmetrize()
	assert.Empty(t, fixed.Asymmetries())
	assert.Equal(t, []string{"b", "c"}, fixed.Colors["a"])
	assert.Equal(t, []string{"a"}, fixed.Colors["c"])
	assert.Equal(t, []string{"x"}, fixed.Styles["y"])
	// receiver untouched
	assert.Equal(t, []string{"a", "b", "c"}, tables.Colors["a"])
	_, ok := tables.Colors["c"]
	assert.False(t, ok)
}

func TestDefaultTablesHaveKnownAsymmetries(t *testing.T) {
	tables := DefaultTables()
	assert.NotEmpty(t, tables.Asymmetries())
	assert.Empty(t, tables.Symmetrize().Asymmetries())
}

func TestLoadTables(t *testing.T) {
	doc := `
colors:
  navy: [white, beige]
  white: [navy]
styles:
  preppy: [preppy, classic]
seasons:
  dry: [dry]
`
	tables, err := LoadTables(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"white", "beige"}, tables.LookupColors("navy"))
	assert.Equal(t, []string{"preppy", "classic"}, tables.CompatibleStyles("preppy"))
	assert.Equal(t, []string{"dry"}, tables.AdjacentSeasons("dry"))
}

func TestLoadTablesEmptyDocument(t *testing.T) {
	tables, err := LoadTables(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, tables.Colors)
	assert.Empty(t, tables.LookupColors("black"))
}

func TestLoadTablesMalformed(t *testing.T) {
	_, err := LoadTables(strings.NewReader("colors: [not, a, map"))
	assert.Error(t, err)
}

func TestLoadTablesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  black: [white]\n"), 0o644))

	tables, err := LoadTablesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"white"}, tables.LookupColors("black"))

	_, err = LoadTablesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
