package document

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phpunitxml/internal/testutil"
)

func TestCache_SameHandle(t *testing.T) {
	path := testutil.WriteConfig(t, "<phpunit/>")
	c := NewCache()

	first, err := c.GetOrLoad(path)
	require.NoError(t, err)
	second, err := c.GetOrLoad(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
	assert.EqualValues(t, 1, c.Loads())
}

func TestCache_EquivalentPaths(t *testing.T) {
	path := testutil.WriteConfig(t, "<phpunit/>")
	dir := filepath.Dir(path)
	c := NewCache()

	direct, err := c.GetOrLoad(path)
	require.NoError(t, err)

	dotted, err := c.GetOrLoad(filepath.Join(dir, ".", "sub", "..", "phpunit.xml"))
	require.NoError(t, err)
	assert.Same(t, direct, dotted)

	link := filepath.Join(t.TempDir(), "alias.xml")
	if err := os.Symlink(path, link); err == nil {
		linked, err := c.GetOrLoad(link)
		require.NoError(t, err)
		assert.Same(t, direct, linked)
	}

	assert.Equal(t, 1, c.Len())
	assert.EqualValues(t, 1, c.Loads())
}

func TestCache_DistinctPaths(t *testing.T) {
	a := testutil.WriteConfig(t, "<phpunit/>")
	b := testutil.WriteConfig(t, "<phpunit/>")
	c := NewCache()

	da, err := c.GetOrLoad(a)
	require.NoError(t, err)
	db, err := c.GetOrLoad(b)
	require.NoError(t, err)

	assert.NotSame(t, da, db)
	assert.Equal(t, da.Digest(), db.Digest())
	assert.Equal(t, 2, c.Len())
}

func TestCache_ConcurrentFirstLoad(t *testing.T) {
	path := testutil.WriteConfig(t, `<phpunit><testsuite name="a"/></phpunit>`)
	c := NewCache()

	const workers = 32
	results := make([]*Document, workers)
	errs := make([]error, workers)

	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	for i := range workers {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = c.GetOrLoad(path)
		}()
	}
	start.Done()
	done.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.EqualValues(t, 1, c.Loads())
	assert.Equal(t, 1, c.Len())
}

func TestCache_FailuresNotCached(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "phpunit.xml", "<phpunit colors=true/>")
	c := NewCache()

	_, err := c.GetOrLoad(path)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Equal(t, 0, c.Len())

	testutil.WriteFile(t, dir, "phpunit.xml", "<phpunit/>")
	d, err := c.GetOrLoad(path)
	require.NoError(t, err)
	assert.NotNil(t, d)
	assert.EqualValues(t, 2, c.Loads())
}

func TestCache_NotFound(t *testing.T) {
	c := NewCache()
	_, err := c.GetOrLoad(filepath.Join(t.TempDir(), "nope.xml"))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 0, c.Len())
}
