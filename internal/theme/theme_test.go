package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffoldWritesTemplates(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "templates", DefaultName)

	written, err := Scaffold(dst, false)
	require.NoError(t, err)
	assert.Contains(t, written, "main.html")
	assert.Contains(t, written, "post.html")
	assert.Contains(t, written, "404.html")
	assert.Contains(t, written, "static/js/script.js")
	assert.FileExists(t, filepath.Join(dst, "static", "css", "style.css"))
}

func TestScaffoldKeepsExistingFiles(t *testing.T) {
	dst := t.TempDir()
	custom := filepath.Join(dst, "main.html")
	require.NoError(t, os.WriteFile(custom, []byte("mine"), 0o644))

	written, err := Scaffold(dst, false)
	require.NoError(t, err)
	assert.NotContains(t, written, "main.html")
	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	written, err = Scaffold(dst, true)
	require.NoError(t, err)
	assert.Contains(t, written, "main.html")
}
