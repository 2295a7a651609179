package chord

import "strings"

const (
	listSeparator       = ","
	enharmonicSeparator = "/"
	labelSeparator      = " / "
)

// Group is one chord token as it occupies the chart: a single chord, or an
// enharmonic pair ("F#/Gb") that shares a merged header cell.
type Group struct {
	Chords []string
}

// Row is a width-bounded run of groups rendered as one table
type Row []Group

// Label is the header text for the group, e.g. "F# / Gb"
func (g Group) Label() string {
	return strings.Join(g.Chords, labelSeparator)
}

// Width is the number of table columns the group occupies
func (g Group) Width() int {
	return len(g.Chords)
}

// IsPair reports whether the group is an enharmonic pair
func (g Group) IsPair() bool {
	return len(g.Chords) == 2
}

// SplitList splits a comma-delimited chord list into trimmed tokens.
// Blank tokens (from "C,,G" or a trailing comma) are dropped.
func SplitList(raw string) []string {
	var tokens []string
	for _, part := range strings.Split(raw, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// SplitToken turns a token into its group. Only the first "/" separates the
// pair, so a group never holds more than two chords.
func SplitToken(token string) Group {
	parts := strings.SplitN(token, enharmonicSeparator, 2)
	g := Group{Chords: make([]string, 0, len(parts))}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			g.Chords = append(g.Chords, p)
		}
	}
	return g
}

// Groups converts tokens into groups, preserving order and skipping tokens
// that contain no chord at all (e.g. a lone "/").
func Groups(tokens []string) []Group {
	groups := make([]Group, 0, len(tokens))
	for _, t := range tokens {
		if g := SplitToken(t); g.Width() > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// Rows partitions groups into rows of at most perRow groups. A pair counts
// as one group. A non-positive perRow yields a single unbounded row.
func Rows(groups []Group, perRow int) []Row {
	if len(groups) == 0 {
		return nil
	}
	if perRow <= 0 {
		return []Row{append(Row(nil), groups...)}
	}

	rows := make([]Row, 0, (len(groups)+perRow-1)/perRow)
	for start := 0; start < len(groups); start += perRow {
		end := min(start+perRow, len(groups))
		rows = append(rows, append(Row(nil), groups[start:end]...))
	}
	return rows
}

// Flatten returns the chords of a row in column order
func (r Row) Flatten() []string {
	var out []string
	for _, g := range r {
		out = append(out, g.Chords...)
	}
	return out
}

// Columns is the number of chord columns in the row
func (r Row) Columns() int {
	n := 0
	for _, g := range r {
		n += g.Width()
	}
	return n
}
