package templates

//go:generate templ generate

import "fmt"

// FormData drives the song input page
type FormData struct {
	Instruments []string // checkbox vocabulary, in display order
	Sections    int      // number of section slots
	Error       string   // validation message from a rejected submission
}

// sectionField names the inputs of one section slot, e.g. "section2_chords"
func sectionField(i int, field string) string {
	return fmt.Sprintf("section%d_%s", i, field)
}
