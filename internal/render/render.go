// Package render assembles a chart layout into a .docx document
package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"io"
	"os"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/Conceptual-Machines/chordchart-api/internal/chart"
	"github.com/Conceptual-Machines/chordchart-api/internal/config"
	"github.com/Conceptual-Machines/chordchart-api/internal/logger"
)

const (
	// MissingPlaceholder is shown in cells without a chord diagram
	MissingPlaceholder = "[Missing]"

	signatureLine = "_________________________"

	defaultTitleSizePt      = 20
	defaultComposerSizePt   = 9
	defaultSignatureLines   = 4
	defaultLabelColumnWidth = 1.0
	cellPaddingInches       = 0.2
	borderColor             = "000000"
	borderSizeEighths       = 4
)

// Options controls page geometry and styling
type Options struct {
	Page              PageSetup
	Font              string
	TitleSizePt       uint64
	ComposerSizePt    uint64
	ImageWidthInches  float64
	LabelColumnInches float64
	Borders           bool
	SignatureLines    int
}

// DefaultOptions is the bordered landscape layout with 1in diagrams
func DefaultOptions() Options {
	return Options{
		Page:              LetterLandscape,
		Font:              "Bodoni MT Black",
		TitleSizePt:       defaultTitleSizePt,
		ComposerSizePt:    defaultComposerSizePt,
		ImageWidthInches:  1.0,
		LabelColumnInches: defaultLabelColumnWidth,
		Borders:           true,
		SignatureLines:    defaultSignatureLines,
	}
}

// OptionsFromConfig applies the configured font, diagram width and border policy
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg.FontName != "" {
		opts.Font = cfg.FontName
	}
	if cfg.ImageWidthInches > 0 {
		opts.ImageWidthInches = cfg.ImageWidthInches
	}
	opts.Borders = cfg.TableBorders
	return opts
}

// Renderer turns charts into documents
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Document lays out the chart: title, composer, one block of tables per
// section with page breaks between sections, then the key and signature lines.
func (r *Renderer) Document(c chart.Chart) (*docx.RootDoc, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}
	r.opts.Page.apply(doc)

	title := doc.AddEmptyParagraph()
	title.Justification(stypes.JustificationCenter)
	r.text(title, c.Title).Bold(true).Size(r.opts.TitleSizePt)

	composer := doc.AddEmptyParagraph()
	composer.Justification(stypes.JustificationRight)
	r.text(composer, c.Composer).Size(r.opts.ComposerSizePt)

	for i, section := range c.Sections {
		if i > 0 {
			doc.AddPageBreak()
		}
		r.text(doc.AddEmptyParagraph(), section.Name).Bold(true)

		for j, table := range section.Tables {
			if j > 0 {
				// keeps Word from joining adjacent tables into one grid
				doc.AddEmptyParagraph()
			}
			r.table(doc, table)
		}
	}

	r.text(doc.AddEmptyParagraph(), "Key: "+c.Key).Bold(true)
	for range r.opts.SignatureLines {
		r.text(doc.AddEmptyParagraph(), signatureLine)
	}
	return doc, nil
}

// Write renders the chart and serializes it to w
func (r *Renderer) Write(c chart.Chart, w io.Writer) error {
	doc, err := r.Document(c)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := doc.Write(w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (r *Renderer) text(p *docx.Paragraph, s string) *docx.Run {
	return p.AddText(s).Font(r.opts.Font)
}

// columnWidths returns the grid in twips and the diagram width in inches.
// Chord columns shrink evenly when the row would not fit between the margins.
func (r *Renderer) columnWidths(t chart.Table) ([]int, float64) {
	label := inchesToTwips(r.opts.LabelColumnInches)
	pad := inchesToTwips(cellPaddingInches)
	column := inchesToTwips(r.opts.ImageWidthInches) + pad

	chords := t.Columns() - 1
	if usable := r.opts.Page.usableWidthTwips(); chords > 0 && label+chords*column > usable {
		column = (usable - label) / chords
	}

	diagram := column - pad
	if diagram < column/2 {
		diagram = column / 2
	}

	widths := make([]int, chords+1)
	widths[0] = label
	for i := 1; i < len(widths); i++ {
		widths[i] = column
	}
	return widths, float64(diagram) / twipsPerInch
}

func (r *Renderer) table(doc *docx.RootDoc, t chart.Table) {
	widths, diagramInches := r.columnWidths(t)

	grid := make([]uint64, len(widths))
	for i, w := range widths {
		grid[i] = uint64(w)
	}
	tbl := doc.AddTable()
	tbl.Layout(stypes.TableLayoutFixed).Grid(grid...)

	header := tbl.AddRow()
	r.cell(header, widths[0], 1).AddEmptyPara()
	col := 1
	for _, h := range t.Headers {
		width := 0
		for _, w := range widths[col : col+h.Span] {
			width += w
		}
		col += h.Span

		p := r.cell(header, width, h.Span).AddEmptyPara()
		p.Justification(stypes.JustificationCenter)
		r.text(p, h.Label).Bold(true)
	}

	for _, ir := range t.Rows {
		row := tbl.AddRow()
		label := r.cell(row, widths[0], 1).AddEmptyPara()
		label.Justification(stypes.JustificationCenter)
		r.text(label, ir.Instrument).Bold(true)

		for i, cell := range ir.Cells {
			p := r.cell(row, widths[i+1], 1).AddEmptyPara()
			p.Justification(stypes.JustificationCenter)
			r.diagram(p, cell, ir.Instrument, diagramInches)
		}
	}
}

func (r *Renderer) cell(row *docx.Row, width, span int) *docx.Cell {
	c := row.AddCell().Width(width, stypes.TableWidthDxa).VerticalAlign("center")
	if span > 1 {
		c.ColSpan(span)
	}
	if r.opts.Borders {
		c.Borders(border(), border(), border(), border(), nil, nil, nil, nil)
	}
	return c
}

func border() *ctypes.Border {
	return ctypes.NewCellBorder(stypes.BorderStyleSingle, borderColor, "0", borderSizeEighths)
}

// diagram embeds the chord image, falling back to the placeholder when the
// asset cannot be read or decoded
func (r *Renderer) diagram(p *docx.Paragraph, cell chart.Cell, instrument string, widthInches float64) {
	if cell.Missing {
		r.text(p, MissingPlaceholder)
		return
	}

	err := embedImage(p, cell.Asset, widthInches)
	if err != nil {
		logger.Warn("Chord diagram could not be embedded", logger.Fields{
			"chord":      cell.Chord,
			"instrument": instrument,
			"asset":      cell.Asset,
			"error":      err.Error(),
		})
		r.text(p, MissingPlaceholder)
	}
}

// embedImage scales the image to widthInches, keeping its aspect ratio
func embedImage(p *docx.Paragraph, path string, widthInches float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("decode image %s: %w", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("image %s has zero size", path)
	}

	height := widthInches * float64(cfg.Height) / float64(cfg.Width)
	if _, err := p.AddPicture(path, units.Inch(widthInches), units.Inch(height)); err != nil {
		return fmt.Errorf("add picture %s: %w", path, err)
	}
	return nil
}
