package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybeSummarize_SmallHTMLPassesThrough(t *testing.T) {
	src := `<html><body><p data-node-id="1">hi</p></body></html>`

	out, err := MaybeSummarize(src)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestMaybeSummarize_LargeHTMLIsSummarized(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 5000; i++ {
		b.WriteString("<p data-node-id=\"")
		b.WriteString(strings.Repeat("x", 1))
		b.WriteString("\">filler text</p>")
	}
	b.WriteString("</body></html>")
	src := b.String()
	require.Greater(t, len(src), Threshold)

	out, err := MaybeSummarize(src)
	require.NoError(t, err)
	assert.Contains(t, out, "filler text")
	assert.Less(t, len(out), len(src))
}

func TestSummarize_ConvertsHeadings(t *testing.T) {
	out, err := Summarize(`<h1 data-node-id="0">Title</h1>`)
	require.NoError(t, err)
	assert.Contains(t, out, "# Title")
}
