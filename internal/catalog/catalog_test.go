package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordchart-api/internal/chord"
)

var defaultFiles = []string{
	"C_Guitar.png", "C_Piano.png", "C_Bass.png", "Am_Guitar.png", "Am_Piano.png",
	"G_Guitar.png", "G_Piano.png", "G_Bass.png", "D_Guitar.png", "D_Piano.png", "D_Bass.png",
	"Em_Guitar.png", "Em_Piano.png", "E_Guitar.png", "E_Piano.png", "E_Bass.png",
}

func TestResolve(t *testing.T) {
	c := New("assets", defaultFiles, WithRootOnlyInstruments("Bass"))

	tests := []struct {
		name       string
		symbol     string
		instrument string
		expected   string
		found      bool
	}{
		{"major guitar", "C", "Guitar", "C_Guitar.png", true},
		{"minor piano", "Am", "Piano", "Am_Piano.png", true},
		{"extension stripped", "Cadd9", "Guitar", "C_Guitar.png", true},
		{"bass strips minor", "Em", "Bass", "E_Bass.png", true},
		{"no bass diagram", "Am", "Bass", "", false},
		{"unknown chord", "F", "Guitar", "", false},
		{"unknown instrument", "C", "Ukulele", "", false},
		{"unparseable", "N.C.", "Guitar", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, ok := c.ResolveSymbol(tt.symbol, tt.instrument)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, file)
		})
	}
}

func TestResolve_BassMinorAndMajorShareDiagram(t *testing.T) {
	c := New("assets", []string{"A_Bass.png"}, WithRootOnlyInstruments("Bass"))

	minor, ok := c.Resolve(chord.MustParse("Am"), "Bass")
	require.True(t, ok)
	major, ok := c.Resolve(chord.MustParse("A"), "Bass")
	require.True(t, ok)

	assert.Equal(t, "A_Bass.png", minor)
	assert.Equal(t, "A_Bass.png", major)
}

func TestResolve_ExtensionStripping(t *testing.T) {
	c := New("assets", []string{"C_Guitar.png"})

	file, ok := c.Resolve(chord.MustParse("Cadd9"), "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C_Guitar.png", file)
}

func TestResolve_IsPure(t *testing.T) {
	c := New("assets", defaultFiles, WithRootOnlyInstruments("Bass"))

	for _, symbol := range []string{"C", "Am", "Em7", "G", "Dadd9", "F#"} {
		for _, inst := range []string{"Guitar", "Piano", "Bass"} {
			first, ok1 := c.ResolveSymbol(symbol, inst)
			second, ok2 := c.ResolveSymbol(symbol, inst)
			assert.Equal(t, first, second)
			assert.Equal(t, ok1, ok2)
		}
	}
}

func TestResolve_EnharmonicPairsDoNotShadowNaturals(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"C_Guitar.png", "C#_or_Db_Guitar.png", "A_Bass.png", "A#_or_Bb_Bass.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	c, err := ScanDir(dir, WithRootOnlyInstruments("Bass"))
	require.NoError(t, err)
	require.Equal(t, []string{"A#_or_Bb_Bass.png", "A_Bass.png", "C#_or_Db_Guitar.png", "C_Guitar.png"}, c.Files())

	tests := []struct {
		symbol     string
		instrument string
		expected   string
	}{
		{"C", "Guitar", "C_Guitar.png"},
		{"C7", "Guitar", "C_Guitar.png"},
		{"C#", "Guitar", "C#_or_Db_Guitar.png"},
		{"A", "Bass", "A_Bass.png"},
		{"Am", "Bass", "A_Bass.png"},
		{"A#m", "Bass", "A#_or_Bb_Bass.png"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol+"/"+tt.instrument, func(t *testing.T) {
			file, ok := c.ResolveSymbol(tt.symbol, tt.instrument)
			require.True(t, ok)
			assert.Equal(t, tt.expected, file)
		})
	}

	// names match from their first chord only
	_, ok := c.ResolveSymbol("Db", "Guitar")
	assert.False(t, ok)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	c := New("assets", []string{"C_Guitar.png", "C_Guitar_Open.png"})

	file, ok := c.ResolveSymbol("C", "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C_Guitar.png", file)

	file, ok = New("assets", []string{"C_Guitar_Open.png", "C_Guitar.png"}).ResolveSymbol("C", "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C_Guitar_Open.png", file)
}

func TestResolve_UnconventionalNamesFallBackToPrefix(t *testing.T) {
	c := New("assets", []string{"Cvoicing-guitar.png", "C-Guitar.png"})

	file, ok := c.ResolveSymbol("C", "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C-Guitar.png", file)

	// a conventional entry is preferred over an earlier unconventional one
	file, ok = New("assets", []string{"C-Guitar.png", "C_Guitar.png"}).ResolveSymbol("C", "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C_Guitar.png", file)
}

func TestResolve_ExtendedDiagramsAreLastResort(t *testing.T) {
	file, ok := New("assets", []string{"C7_Guitar.png", "C_Guitar.png"}).ResolveSymbol("C7", "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C_Guitar.png", file)

	file, ok = New("assets", []string{"C7_Guitar.png"}).ResolveSymbol("C", "Guitar")
	require.True(t, ok)
	assert.Equal(t, "C7_Guitar.png", file, "prefix rule still applies when nothing names C exactly")
}

func TestNew_DropsBlankAndDuplicateEntries(t *testing.T) {
	c := New("assets", []string{"C_Guitar.png", " ", "C_Guitar.png", "G_Guitar.png"})
	assert.Equal(t, []string{"C_Guitar.png", "G_Guitar.png"}, c.Files())
	assert.Equal(t, 2, c.Len())
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("files:\n  - C_Guitar.png\n  - Am_Piano.png\n"), 0o600))

	c, err := LoadManifest(manifestPath, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"C_Guitar.png", "Am_Piano.png"}, c.Files())
	assert.Equal(t, dir, c.Dir())
}

func TestLoadManifest_Invalid(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("files: [unterminated"), 0o600))

	_, err := LoadManifest(manifestPath, dir)
	assert.Error(t, err)

	_, err = LoadManifest(filepath.Join(dir, "absent.yaml"), dir)
	assert.Error(t, err)
}

func TestLoad_BuiltinManifest(t *testing.T) {
	c, err := Load(BuiltinManifest, "static/images", WithRootOnlyInstruments("Bass"))
	require.NoError(t, err)

	assert.Equal(t, 16, c.Len())
	assert.Equal(t, "C_Guitar.png", c.Files()[0])

	file, ok := c.ResolveSymbol("Em", "Bass")
	require.True(t, ok)
	assert.Equal(t, "E_Bass.png", file)

	_, ok = c.ResolveSymbol("Am", "Bass")
	assert.False(t, ok)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"G_Guitar.png", "C_Guitar.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o700))

	c, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"C_Guitar.png", "G_Guitar.png"}, c.Files())
}

func TestLocateAndMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C_Guitar.png"), []byte("x"), 0o600))

	c := New(dir, []string{"C_Guitar.png", "G_Guitar.png"})

	path, ok := c.Locate("C_Guitar.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "C_Guitar.png"), path)

	_, ok = c.Locate("G_Guitar.png")
	assert.False(t, ok)

	assert.Equal(t, []string{"G_Guitar.png"}, c.Missing())
}

func TestResolve_PrefersExactQuality(t *testing.T) {
	for _, files := range [][]string{
		{"Am_Guitar.png", "A_Guitar.png"},
		{"A_Guitar.png", "Am_Guitar.png"},
	} {
		c := New("assets", files)

		file, ok := c.ResolveSymbol("A", "Guitar")
		require.True(t, ok)
		assert.Equal(t, "A_Guitar.png", file, "order %v", files)

		file, ok = c.ResolveSymbol("Am", "Guitar")
		require.True(t, ok)
		assert.Equal(t, "Am_Guitar.png", file, "order %v", files)
	}
}
