// Package chart turns a song request into a layout: sections of width-bounded
// tables whose cells are resolved chord diagrams or missing placeholders.
// The layout is independent of the document format it is rendered to.
package chart

import (
	"github.com/Conceptual-Machines/chordchart-api/internal/catalog"
	"github.com/Conceptual-Machines/chordchart-api/internal/chord"
	"github.com/Conceptual-Machines/chordchart-api/internal/models"
)

// DefaultGroupsPerRow bounds a table to what fits a landscape page
const DefaultGroupsPerRow = 4

// Chart is the fully resolved layout of one song
type Chart struct {
	Title    string
	Composer string
	Key      string
	Sections []Section
}

// Section is a named part of the song rendered as one or more tables
type Section struct {
	Name   string
	Tables []Table
}

// Table is one LayoutRow: a header row plus one row per instrument
type Table struct {
	Headers []Header
	Rows    []InstrumentRow
}

// Header is a header cell spanning one column, or two for an enharmonic pair
type Header struct {
	Label string
	Span  int
}

// InstrumentRow holds one instrument's diagrams in column order
type InstrumentRow struct {
	Instrument string
	Cells      []Cell
}

// Cell is a single chord for a single instrument. Asset is the on-disk path
// of the diagram; it is empty when Missing is set.
type Cell struct {
	Chord   string
	File    string
	Asset   string
	Missing bool
}

// Columns is the total column count including the leading label column
func (t Table) Columns() int {
	n := 1
	for _, h := range t.Headers {
		n += h.Span
	}
	return n
}

// RowCount is the total row count including the header row
func (t Table) RowCount() int {
	return len(t.Rows) + 1
}

// MissingCount returns the number of placeholder cells in the chart
func (c Chart) MissingCount() int {
	n := 0
	for _, s := range c.Sections {
		for _, t := range s.Tables {
			for _, r := range t.Rows {
				for _, cell := range r.Cells {
					if cell.Missing {
						n++
					}
				}
			}
		}
	}
	return n
}

// TableCount returns the number of tables across all sections
func (c Chart) TableCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Tables)
	}
	return n
}

// Builder groups chords into rows and resolves cells against a catalog
type Builder struct {
	catalog      *catalog.Catalog
	groupsPerRow int
}

// NewBuilder creates a builder. A non-positive groupsPerRow emits one
// unbounded table per section.
func NewBuilder(cat *catalog.Catalog, groupsPerRow int) *Builder {
	return &Builder{
		catalog:      cat,
		groupsPerRow: groupsPerRow,
	}
}

// Build lays out the request. Incomplete sections are skipped; unresolvable
// chords become missing cells rather than errors.
func (b *Builder) Build(req models.SongRequest) Chart {
	c := Chart{
		Title:    req.Title,
		Composer: req.Composer,
		Key:      req.Key,
	}

	for _, s := range req.Sections {
		if !s.IsComplete() {
			continue
		}
		rows := chord.Rows(chord.Groups(s.Chords), b.groupsPerRow)
		if len(rows) == 0 {
			continue
		}

		section := Section{Name: s.Name, Tables: make([]Table, 0, len(rows))}
		for _, row := range rows {
			section.Tables = append(section.Tables, b.buildTable(row, req.Instruments))
		}
		c.Sections = append(c.Sections, section)
	}
	return c
}

func (b *Builder) buildTable(row chord.Row, instruments []string) Table {
	t := Table{
		Headers: make([]Header, 0, len(row)),
		Rows:    make([]InstrumentRow, 0, len(instruments)),
	}
	for _, g := range row {
		t.Headers = append(t.Headers, Header{Label: g.Label(), Span: g.Width()})
	}

	chords := row.Flatten()
	for _, inst := range instruments {
		r := InstrumentRow{Instrument: inst, Cells: make([]Cell, 0, len(chords))}
		for _, symbol := range chords {
			r.Cells = append(r.Cells, b.resolve(symbol, inst))
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

// resolve treats a catalog entry that is absent on disk the same as no match
func (b *Builder) resolve(symbol, instrument string) Cell {
	cell := Cell{Chord: symbol, Missing: true}
	if b.catalog == nil {
		return cell
	}
	file, ok := b.catalog.ResolveSymbol(symbol, instrument)
	if !ok {
		return cell
	}
	cell.File = file
	if path, ok := b.catalog.Locate(file); ok {
		cell.Asset = path
		cell.Missing = false
	}
	return cell
}
