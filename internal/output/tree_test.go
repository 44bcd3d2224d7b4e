package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("my-widget", nil))
}

func TestRenderFileTree_DirectoriesFirst(t *testing.T) {
	out := RenderFileTree("my-widget", map[string]string{
		"my-widget.html":  "",
		"bower.json":      "",
		"test/index.html": "",
		"demo/index.html": "",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "my-widget/")
	assert.Equal(t, "├── demo/", lines[1])
	assert.Equal(t, "│   └── index.html", lines[2])
	assert.Equal(t, "├── test/", lines[3])
	assert.Equal(t, "│   └── index.html", lines[4])
	assert.Equal(t, "├── bower.json", lines[5])
	assert.Equal(t, "└── my-widget.html", lines[6])
}

func TestRenderFileTree_Descriptions(t *testing.T) {
	out := RenderFileTree("out", map[string]string{
		"bower.json": "Bower manifest",
	})

	assert.Contains(t, out, "└── bower.json")
	assert.Contains(t, out, "Bower manifest")
}
