package chord

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyChord is returned when a chord symbol has no content
var ErrEmptyChord = errors.New("empty chord symbol")

// Name is a parsed chord symbol such as "C", "F#m" or "Ebadd9".
//
// Normalization rules:
//   - the root letter is upper-cased ("a" -> "A")
//   - "min" and "-" quality markers are folded into "m" ("Amin7" -> "Am7")
//   - "maj" is never treated as minor ("Cmaj7" is a major chord with extension "maj7")
//   - everything after the quality marker is kept verbatim as the extension
//
// String() returns the normalized symbol, so Parse(n.String()) == n.
type Name struct {
	Letter     string // A-G
	Accidental string // "#", "b" or ""
	Minor      bool
	Extension  string // "7", "add9", "sus4", "maj7", ...
}

// Parse converts a chord symbol into a Name
func Parse(symbol string) (Name, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return Name{}, ErrEmptyChord
	}

	letter := strings.ToUpper(s[:1])
	if letter < "A" || letter > "G" {
		return Name{}, fmt.Errorf("invalid root note %q in chord %q", s[:1], symbol)
	}
	n := Name{Letter: letter}
	rest := s[1:]

	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		n.Accidental = rest[:1]
		rest = rest[1:]
	}

	switch {
	case strings.HasPrefix(rest, "maj"):
		// major seventh family, not a minor marker
	case strings.HasPrefix(rest, "min"):
		n.Minor = true
		rest = rest[len("min"):]
	case strings.HasPrefix(rest, "m"), strings.HasPrefix(rest, "-"):
		n.Minor = true
		rest = rest[1:]
	}

	n.Extension = rest
	return n, nil
}

// MustParse is Parse for literals in tests and tables; it panics on error
func MustParse(symbol string) Name {
	n, err := Parse(symbol)
	if err != nil {
		panic(err)
	}
	return n
}

// Root returns the pitch without quality, e.g. "F#"
func (n Name) Root() string {
	return n.Letter + n.Accidental
}

// String returns the normalized chord symbol
func (n Name) String() string {
	var b strings.Builder
	b.WriteString(n.Root())
	if n.Minor {
		b.WriteString("m")
	}
	b.WriteString(n.Extension)
	return b.String()
}

// LookupKey is the prefix used to find a diagram for this chord.
// Extensions are always dropped; the minor marker is dropped too when
// rootOnly is set (instruments such as bass whose diagrams only show the root).
func (n Name) LookupKey(rootOnly bool) string {
	if n.Minor && !rootOnly {
		return n.Root() + "m"
	}
	return n.Root()
}
