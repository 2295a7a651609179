package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var vocabulary = []string{"Guitar", "Piano", "Bass"}

func validRequest() SongRequest {
	return SongRequest{
		Title:       "Test Song",
		Composer:    "J. Doe",
		Key:         "C",
		Instruments: []string{"Guitar", "Piano"},
		Sections:    []Section{{Name: "Verse", Chords: []string{"C", "G"}}},
	}
}

func TestValidate_MissingFields(t *testing.T) {
	for _, field := range []string{"title", "composer", "key"} {
		t.Run(field, func(t *testing.T) {
			req := validRequest()
			switch field {
			case "title":
				req.Title = "  "
			case "composer":
				req.Composer = ""
			case "key":
				req.Key = ""
			}

			err := req.Validate(vocabulary)
			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, field, missing.Field)
		})
	}
}

func TestValidate_InvalidInstrument(t *testing.T) {
	req := validRequest()
	req.Instruments = []string{"Guitar", "Kazoo"}

	err := req.Validate(vocabulary)
	var invalid *InvalidInstrumentError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "Kazoo", invalid.Instrument)
	assert.Contains(t, err.Error(), "Guitar, Piano, Bass")
}

func TestValidate_OK(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate(vocabulary))

	req.Instruments = []string{"Kazoo"}
	assert.NoError(t, req.Validate(nil), "empty vocabulary accepts anything")
}

func TestNormalize(t *testing.T) {
	req := SongRequest{
		Title:       "  Test\tSong ",
		Composer:    "Tom & Jerry",
		Key:         "C",
		Instruments: []string{"Piano", "Guitar", "Piano", " "},
		Sections: []Section{
			{Name: "Intro", Chords: []string{"C"}},
			{Name: "Verse"},
			{Name: "", Chords: []string{"G"}},
			{Name: "Chorus <Part A>", Chords: []string{"F", "C"}},
		},
	}

	req.Normalize()

	assert.Equal(t, "Test Song", req.Title)
	assert.Equal(t, "Tom & Jerry", req.Composer)
	assert.Equal(t, []string{"Piano", "Guitar"}, req.Instruments)
	require.Len(t, req.Sections, 2)
	assert.Equal(t, "Intro", req.Sections[0].Name)
	assert.Equal(t, "Chorus <Part A>", req.Sections[1].Name)
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"blank", "   ", ""},
		{"angle brackets kept", "Intro <Part A>", "Intro <Part A>"},
		{"markup kept verbatim", "<b>bold</b>", "<b>bold</b>"},
		{"ampersand kept", "F# & Gb", "F# & Gb"},
		{"entities not decoded", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"whitespace collapsed", " Verse\t 2\n", "Verse 2"},
		{"control characters dropped", "Bri\x00dge\x1b", "Bridge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.raw))
		})
	}
}

func TestLimitSections(t *testing.T) {
	req := SongRequest{Sections: []Section{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}}

	assert.Equal(t, 1, req.LimitSections(3))
	assert.Equal(t, []Section{{Name: "A"}, {Name: "B"}, {Name: "C"}}, req.Sections)

	assert.Equal(t, 0, req.LimitSections(3))
	assert.Equal(t, 0, req.LimitSections(0), "no limit configured")
	assert.Len(t, req.Sections, 3)
}

func TestSection_UnmarshalYAML(t *testing.T) {
	doc := `
title: Test Song
composer: J. Doe
key: C
instruments: [Guitar, Bass]
sections:
  - name: Verse
    chords: [C, " G ", "", "F#/Gb"]
  - name: Chorus
    chords: "Am, F,  , C"
  - name: Outro
`
	var req SongRequest
	require.NoError(t, yaml.Unmarshal([]byte(doc), &req))

	require.Len(t, req.Sections, 3)
	assert.Equal(t, []string{"C", "G", "F#/Gb"}, req.Sections[0].Chords)
	assert.Equal(t, []string{"Am", "F", "C"}, req.Sections[1].Chords)
	assert.Nil(t, req.Sections[2].Chords)
	assert.False(t, req.Sections[2].IsComplete())
}

func TestSection_UnmarshalYAML_RejectsMapping(t *testing.T) {
	var s Section
	err := yaml.Unmarshal([]byte("name: Verse\nchords:\n  a: b\n"), &s)
	assert.Error(t, err)
}
