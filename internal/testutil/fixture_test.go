package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfig(t *testing.T) {
	path := WriteConfig(t, "<phpunit/>")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<phpunit/>", string(data))
	assert.Equal(t, "phpunit.xml", filepath.Base(path))
}

func TestTree(t *testing.T) {
	dir := Tree(t, t.TempDir(), "a/b/FooTest.php", "c.php")

	_, err := os.Stat(filepath.Join(dir, "a", "b", "FooTest.php"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "c.php"))
	assert.NoError(t, err)
}

func TestStaticCollector(t *testing.T) {
	missing := errors.New("missing")
	c := &StaticCollector{
		Files:   map[string][]string{"tests": {"tests/ATest.php"}},
		Missing: missing,
	}

	files, err := c.Collect([]string{"tests"}, "Test.php", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/ATest.php"}, files)

	_, err = c.Collect([]string{"nope"}, "Test.php", "")
	assert.ErrorIs(t, err, missing)

	require.Len(t, c.Calls, 2)
	assert.Equal(t, "Test.php", c.Calls[0].Suffix)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}
