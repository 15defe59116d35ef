package dedup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripts_NoScriptsIsIdentity(t *testing.T) {
	src := `<html><body><p>hello</p></body></html>`

	res, err := Scripts(src)
	require.NoError(t, err)
	assert.Equal(t, src, strings.TrimSpace(res.HTML))
}

func TestScripts_DedupByID_KeepsLast(t *testing.T) {
	src := `<html><body>` +
		`<script id="logic">var a = 1;</script>` +
		`<script id="logic">var a = 2;</script>` +
		`</body></html>`

	res, err := Scripts(src)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(res.HTML, `id="logic"`))
	assert.Contains(t, res.HTML, "var a = 2;")
	assert.NotContains(t, res.HTML, "var a = 1;")
}

func TestScripts_SystemIDsNeverDeduped(t *testing.T) {
	src := `<html><body>` +
		`<script id="page-info">1</script>` +
		`<script id="page-info">2</script>` +
		`</body></html>`

	res, err := Scripts(src)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(res.HTML, `id="page-info"`))
}

func TestScripts_DedupByDeclarationOverlap(t *testing.T) {
	first := "\nlet count = 0;\nlet name = \"a\";\nfunction init(){}\nfunction render(){}\nlet oldHelper = 1;\n"
	second := "\nlet count = 0;\nlet name = \"b\";\nfunction init(){}\nfunction render(){}\nlet newHelper = 1;\n"
	src := `<html><body>` +
		`<script>` + first + `</script>` +
		`<script>` + second + `</script>` +
		`</body></html>`

	res, err := Scripts(src)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "newHelper")
	assert.NotContains(t, res.HTML, "oldHelper")
	require.Len(t, res.Dropped, 1)
}

func TestScripts_LowOverlapKeepsBoth(t *testing.T) {
	first := "\nlet a = 1;\nlet b = 2;\n"
	second := "\nlet x = 1;\nlet y = 2;\n"
	src := `<html><body>` +
		`<script>` + first + `</script>` +
		`<script>` + second + `</script>` +
		`</body></html>`

	res, err := Scripts(src)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "let a = 1")
	assert.Contains(t, res.HTML, "let x = 1")
	assert.Empty(t, res.Dropped)
}

func TestScripts_JSONScriptsNeverOverlapDeduped(t *testing.T) {
	src := `<html><body>` +
		`<script type="application/json">{"a":1,"b":2}</script>` +
		`<script type="application/json">{"a":1,"b":2}</script>` +
		`</body></html>`

	res, err := Scripts(src)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(res.HTML, `application/json`))
}
