package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongForm(t *testing.T) {
	var b strings.Builder
	err := SongForm(FormData{
		Instruments: []string{"Guitar", "Piano", "Bass"},
		Sections:    3,
		Error:       "missing <title>",
	}).Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.Contains(t, html, `name="title"`)
	assert.Contains(t, html, `name="composer"`)
	assert.Contains(t, html, `name="key"`)
	assert.Equal(t, 3, strings.Count(html, `name="instruments"`))
	assert.Contains(t, html, `name="section3_chords"`)
	assert.NotContains(t, html, `name="section4_name"`)
	assert.Contains(t, html, "missing &lt;title&gt;")
}

func TestSongForm_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	err := SongForm(FormData{}).Render(ctx, &b)
	assert.Error(t, err)
	assert.Empty(t, b.String())
}

func TestSongForm_EscapesInstrumentNames(t *testing.T) {
	var b strings.Builder
	err := SongForm(FormData{Instruments: []string{`Lap "Steel" <b>`}, Sections: 1}).Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.Contains(t, html, `value="Lap &#34;Steel&#34; &lt;b&gt;"`)
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, `name="section1_name"`)
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
}
