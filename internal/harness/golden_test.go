package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phpunitxml/internal/ir"
)

func TestRunWithGolden_SingleSuite(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/single_suite.yaml")
	require.NoError(t, err)

	// To regenerate:
	//   go test ./internal/harness -run TestRunWithGolden_SingleSuite -update
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_ExcludesLocation(t *testing.T) {
	r := NewResult()
	r.Configuration = &ir.Configuration{Path: "phpunit.xml", Digest: "abc"}

	data, err := Snapshot("s", r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"path":""`)
	assert.Contains(t, string(data), `"digest":""`)
	assert.Contains(t, string(data), `"scenario_name":"s"`)
	assert.Equal(t, "abc", r.Configuration.Digest, "snapshot must not modify the result")
}

func TestSnapshot_Error(t *testing.T) {
	r := NewResult()
	r.ResolveError = `testsuite "u": <missing>`

	data, err := Snapshot("e", r)
	require.NoError(t, err)
	assert.Equal(t, `{"error":"testsuite \"u\": <missing>","scenario_name":"e"}`, string(data))
}

func TestGoldenPath(t *testing.T) {
	got := GoldenPath(filepath.Join("a", "b", "case.yaml"))
	assert.Equal(t, filepath.Join("a", "b", "golden", "case.golden"), got)
}

func TestWriteAndCompareGolden(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golden", "x.golden")

	r := NewResult()
	r.ResolveError = "failed"

	require.NoError(t, WriteGolden(path, "x", r))
	_, err := os.Stat(path)
	require.NoError(t, err)

	same, err := CompareGolden(path, "x", r)
	require.NoError(t, err)
	assert.True(t, same)

	r.ResolveError = "different"
	same, err = CompareGolden(path, "x", r)
	require.NoError(t, err)
	assert.False(t, same)

	_, err = CompareGolden(filepath.Join(dir, "absent.golden"), "x", r)
	assert.Error(t, err)
}
