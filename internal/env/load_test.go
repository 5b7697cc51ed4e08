package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# keys\nSTUDIO_TEST_A=one\nexport STUDIO_TEST_B='two'\nbroken\nSTUDIO_TEST_C=\"from file\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("STUDIO_TEST_C", "from env")
	t.Setenv("STUDIO_TEST_A", "")
	os.Unsetenv("STUDIO_TEST_A")
	t.Setenv("STUDIO_TEST_B", "")
	os.Unsetenv("STUDIO_TEST_B")

	require.NoError(t, Load(path))
	assert.Equal(t, "one", os.Getenv("STUDIO_TEST_A"))
	assert.Equal(t, "two", os.Getenv("STUDIO_TEST_B"))
	assert.Equal(t, "from env", os.Getenv("STUDIO_TEST_C"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing")))
}

func TestFirst(t *testing.T) {
	t.Setenv("STUDIO_TEST_X", "")
	t.Setenv("STUDIO_TEST_Y", "y")
	assert.Equal(t, "y", First("STUDIO_TEST_X", "STUDIO_TEST_Y"))
	assert.Equal(t, "", First("STUDIO_TEST_X"))
}
