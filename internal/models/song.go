package models

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/chordchart-api/internal/chord"
)

// SongRequest is a submitted song structure, from the web form or a song file
type SongRequest struct {
	Title       string    `json:"title" yaml:"title"`
	Composer    string    `json:"composer" yaml:"composer"`
	Key         string    `json:"key" yaml:"key"`
	Instruments []string  `json:"instruments" yaml:"instruments"`
	Sections    []Section `json:"sections" yaml:"sections"`
}

// Section is a named, ordered list of chord tokens ("C", "Am", "F#/Gb")
type Section struct {
	Name   string   `json:"name" yaml:"name"`
	Chords []string `json:"chords" yaml:"chords"`
}

// UnmarshalYAML accepts chords either as a sequence or as one comma
// separated string, matching what the web form submits.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name   string    `yaml:"name"`
		Chords yaml.Node `yaml:"chords"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	s.Name = raw.Name

	switch raw.Chords.Kind {
	case 0:
		s.Chords = nil
	case yaml.ScalarNode:
		s.Chords = chord.SplitList(raw.Chords.Value)
	case yaml.SequenceNode:
		var list []string
		if err := raw.Chords.Decode(&list); err != nil {
			return err
		}
		s.Chords = make([]string, 0, len(list))
		for _, c := range list {
			if c = strings.TrimSpace(c); c != "" {
				s.Chords = append(s.Chords, c)
			}
		}
	default:
		return fmt.Errorf("section %q: chords must be a list or a string (line %d)", raw.Name, raw.Chords.Line)
	}
	return nil
}

// IsComplete reports whether the section has both a name and at least one chord
func (s Section) IsComplete() bool {
	return strings.TrimSpace(s.Name) != "" && len(s.Chords) > 0
}

// Validate checks required fields and the instrument vocabulary.
// An empty vocabulary accepts any instrument.
func (r *SongRequest) Validate(vocabulary []string) error {
	required := []struct {
		field string
		value string
	}{
		{"title", r.Title},
		{"composer", r.Composer},
		{"key", r.Key},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.field}
		}
	}

	if len(vocabulary) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(vocabulary))
	for _, v := range vocabulary {
		allowed[v] = true
	}
	for _, inst := range r.Instruments {
		if !allowed[inst] {
			return &InvalidInstrumentError{Instrument: inst, Allowed: vocabulary}
		}
	}
	return nil
}

// Normalize sanitizes free text, collapses duplicate instruments while
// keeping first-seen order, and drops incomplete sections.
func (r *SongRequest) Normalize() {
	r.Title = SanitizeText(r.Title)
	r.Composer = SanitizeText(r.Composer)
	r.Key = SanitizeText(r.Key)

	seen := make(map[string]bool, len(r.Instruments))
	instruments := r.Instruments[:0]
	for _, inst := range r.Instruments {
		inst = strings.TrimSpace(inst)
		if inst == "" || seen[inst] {
			continue
		}
		seen[inst] = true
		instruments = append(instruments, inst)
	}
	r.Instruments = instruments

	sections := make([]Section, 0, len(r.Sections))
	for _, s := range r.Sections {
		s.Name = SanitizeText(s.Name)
		if !s.IsComplete() {
			continue
		}
		sections = append(sections, s)
	}
	r.Sections = sections
}

// LimitSections keeps the first limit section slots, the same bound the web
// form applies by only offering that many. It returns how many were dropped.
func (r *SongRequest) LimitSections(limit int) int {
	if limit <= 0 || len(r.Sections) <= limit {
		return 0
	}
	dropped := len(r.Sections) - limit
	r.Sections = r.Sections[:limit]
	return dropped
}

// SanitizeText trims user supplied text, drops control characters and
// collapses runs of whitespace. The text is kept verbatim otherwise:
// "Intro <Part A>" stays as typed and is escaped by whichever output
// (HTML template or document XML) it ends up in.
func SanitizeText(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, raw)
	return strings.Join(strings.Fields(cleaned), " ")
}
