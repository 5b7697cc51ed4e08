package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDirAndFind(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, p := range []string{
		"assets/fonts/Inter/Inter-Bold.ttf",
		"assets/fonts/Inter/Inter-Regular.ttf",
		"assets/fonts/Open_Sans/OpenSans.otf",
		"assets/fonts/readme.txt",
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	list, err := ScanDir("assets/fonts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.ttf", "Open_Sans/OpenSans.otf"}, list)

	p, ok := Find("Inter")
	require.True(t, ok)
	assert.Equal(t, "assets/fonts/Inter/Inter-Regular.ttf", p)

	p, ok = Find("Open Sans")
	require.True(t, ok)
	assert.Equal(t, "assets/fonts/Open_Sans/OpenSans.otf", p)

	_, ok = Find("Comic")
	assert.False(t, ok)
	_, ok = Find("")
	assert.False(t, ok)
}

func TestScanMissingDir(t *testing.T) {
	list, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, list)
}
