// Package catalog holds the set of chord-diagram images the chart builder can
// embed, and resolves (chord, instrument) pairs against it.
//
// A catalog is loaded once at startup, either from a YAML manifest or by
// scanning the asset directory, and is read-only afterwards so it can be
// shared across requests without locking.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/chordchart-api/internal/chord"
	"github.com/Conceptual-Machines/chordchart-api/pkg/embedded"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Catalog is an ordered list of supported diagram filenames rooted at a directory
type Catalog struct {
	dir      string
	files    []string
	entries  []entry
	rootOnly map[string]bool
}

// entry is a filename split into the chords it depicts and its instrument.
// "C#_or_Db_Guitar.png" depicts C# and Db on Guitar. Stems that do not
// follow that layout, or name an extended chord such as "C7", keep only the
// raw filename and are matched by prefix.
type entry struct {
	file       string
	chords     []chord.Name
	instrument string
	parsed     bool
}

func parseEntry(file string) entry {
	e := entry{file: file}
	parts := strings.Split(strings.TrimSuffix(file, filepath.Ext(file)), "_")

	members := []string{parts[0]}
	i := 1
	for i+1 < len(parts) && strings.EqualFold(parts[i], "or") {
		members = append(members, parts[i+1])
		i += 2
	}
	if i >= len(parts) {
		return e
	}

	for _, m := range members {
		name, err := chord.Parse(m)
		if err != nil || name.Extension != "" || name.String() != m {
			return entry{file: file}
		}
		e.chords = append(e.chords, name)
	}
	e.instrument = strings.Join(parts[i:], "_")
	e.parsed = true
	return e
}

// matches reports whether the entry's name begins with exactly the chord
// key and names the instrument
func (e entry) matches(key, instrument string, rootOnly bool) bool {
	return e.chords[0].LookupKey(rootOnly) == key && strings.Contains(e.instrument, instrument)
}

// Option configures a Catalog
type Option func(*Catalog)

// WithRootOnlyInstruments marks instruments whose diagrams ignore the minor marker
func WithRootOnlyInstruments(instruments ...string) Option {
	return func(c *Catalog) {
		for _, inst := range instruments {
			c.rootOnly[strings.ToLower(strings.TrimSpace(inst))] = true
		}
	}
}

// New builds a catalog from an explicit file list. Order is preserved and
// decides which entry wins when several match.
func New(dir string, files []string, opts ...Option) *Catalog {
	c := &Catalog{
		dir:      dir,
		files:    make([]string, 0, len(files)),
		rootOnly: map[string]bool{},
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		c.files = append(c.files, f)
		c.entries = append(c.entries, parseEntry(f))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type manifest struct {
	Files []string `yaml:"files"`
}

// LoadManifest reads a YAML manifest of the form:
//
//	files:
//	  - C_Guitar.png
//	  - Am_Piano.png
func LoadManifest(path, dir string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read manifest %s: %w", path, err)
	}

	c, err := ParseManifest(data, dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse manifest %s: %w", path, err)
	}
	return c, nil
}

// ParseManifest builds a catalog from manifest contents already in memory
func ParseManifest(data []byte, dir string, opts ...Option) (*Catalog, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return New(dir, m.Files, opts...), nil
}

// ScanDir builds a catalog from the image files present in dir, sorted by name
func ScanDir(dir string, opts ...Option) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return New(dir, files, opts...), nil
}

// BuiltinManifest selects the manifest compiled into the binary
const BuiltinManifest = "builtin"

// Load uses the manifest when one is configured, otherwise scans dir
func Load(manifestPath, dir string, opts ...Option) (*Catalog, error) {
	switch manifestPath {
	case "":
		return ScanDir(dir, opts...)
	case BuiltinManifest:
		c, err := ParseManifest(embedded.CatalogManifestYAML, dir, opts...)
		if err != nil {
			return nil, fmt.Errorf("catalog: parse built-in manifest: %w", err)
		}
		return c, nil
	default:
		return LoadManifest(manifestPath, dir, opts...)
	}
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.files)
}

// Files returns a copy of the entries in catalog order
func (c *Catalog) Files() []string {
	return append([]string(nil), c.files...)
}

// Dir returns the directory assets are read from
func (c *Catalog) Dir() string {
	return c.dir
}

// IsRootOnly reports whether diagrams for the instrument ignore chord quality
func (c *Catalog) IsRootOnly(instrument string) bool {
	return c.rootOnly[strings.ToLower(instrument)]
}

// Resolve returns the diagram for a chord on an instrument. Entries whose
// name begins with the chord's exact lookup key win, in catalog order;
// entries that do not follow the naming layout are then tried by prefix.
// Extensions never take part in the lookup.
func (c *Catalog) Resolve(name chord.Name, instrument string) (string, bool) {
	rootOnly := c.IsRootOnly(instrument)
	key := name.LookupKey(rootOnly)

	for _, e := range c.entries {
		if e.parsed && e.matches(key, instrument, rootOnly) {
			return e.file, true
		}
	}
	for _, e := range c.entries {
		if !e.parsed && strings.HasPrefix(e.file, key) && strings.Contains(e.file, instrument) {
			return e.file, true
		}
	}
	return "", false
}

// ResolveSymbol parses a raw chord symbol and resolves it.
// Unparseable symbols simply do not match.
func (c *Catalog) ResolveSymbol(symbol, instrument string) (string, bool) {
	name, err := chord.Parse(symbol)
	if err != nil {
		return "", false
	}
	return c.Resolve(name, instrument)
}

// Locate returns the on-disk path of an entry, or false when the file is
// listed but missing.
func (c *Catalog) Locate(file string) (string, bool) {
	path := filepath.Join(c.dir, file)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Missing lists entries that are not present on disk
func (c *Catalog) Missing() []string {
	var missing []string
	for _, f := range c.files {
		if _, ok := c.Locate(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
