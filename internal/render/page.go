package render

import (
	"math"

	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

const twipsPerInch = 1440

// PageSetup describes the single page section of the document
type PageSetup struct {
	Landscape    bool
	WidthInches  float64 // portrait width; swapped when Landscape is set
	HeightInches float64
	MarginInches float64
}

// LetterLandscape is US Letter turned sideways with 0.4in margins
var LetterLandscape = PageSetup{
	Landscape:    true,
	WidthInches:  8.5,
	HeightInches: 11,
	MarginInches: 0.4,
}

// dimensions returns page width and height in twips, honoring orientation
func (p PageSetup) dimensions() (int, int) {
	w, h := inchesToTwips(p.WidthInches), inchesToTwips(p.HeightInches)
	if p.Landscape && w < h {
		w, h = h, w
	}
	return w, h
}

// usableWidthTwips is the page width inside the margins
func (p PageSetup) usableWidthTwips() int {
	w, _ := p.dimensions()
	return w - 2*inchesToTwips(p.MarginInches)
}

// apply replaces the size and margins of the document's body section
func (p PageSetup) apply(doc *docx.RootDoc) {
	body := doc.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}

	w, h := p.dimensions()
	width, height := uint64(w), uint64(h)
	size := &ctypes.PageSize{Width: &width, Height: &height}
	if p.Landscape {
		size.Orient = stypes.PageOrientLandscape
	}
	body.SectPr.PageSize = size

	margin := inchesToTwips(p.MarginInches)
	edge := inchesToTwips(p.MarginInches / 2)
	gutter := 0
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top:    &margin,
		Right:  &margin,
		Bottom: &margin,
		Left:   &margin,
		Header: &edge,
		Footer: &edge,
		Gutter: &gutter,
	}
}

func inchesToTwips(in float64) int {
	return int(math.Round(in * twipsPerInch))
}
