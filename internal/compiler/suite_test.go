package compiler

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phpunitxml/internal/collector"
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
	"github.com/roach88/phpunitxml/internal/testutil"
)

func staticCollector() *testutil.StaticCollector {
	return &testutil.StaticCollector{
		Files: map[string][]string{
			"tests/a": {"tests/a/OneTest.php", "tests/a/TwoTest.php"},
			"tests/b": {"tests/b/ThreeTest.php"},
		},
		Missing: fmt.Errorf("%w: tests/missing", collector.ErrRootNotFound),
	}
}

func TestCompileSuite_Single(t *testing.T) {
	doc := parse(t, `
<phpunit><testsuites>
  <testsuite name="Unit">
    <file>tests/ExtraTest.php</file>
    <directory suffix=".phpt" prefix="x">tests/a</directory>
  </testsuite>
</testsuites></phpunit>`)
	c := staticCollector()

	got, err := CompileSuite(doc, c, SuiteOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Unit", got.Name)
	assert.Empty(t, got.Children)
	assert.Equal(t, []string{
		"tests/a/OneTest.php",
		"tests/a/TwoTest.php",
		"tests/ExtraTest.php",
	}, got.Files, "directory files come before explicit files")

	require.Len(t, c.Calls, 1)
	assert.Equal(t, testutil.CollectCall{Roots: []string{"tests/a"}, Suffix: ".phpt", Prefix: "x"}, c.Calls[0])
}

func TestCompileSuite_DirectoryDefaults(t *testing.T) {
	doc := parse(t, `<phpunit><testsuite><directory>tests/b</directory><directory suffix="">tests/b</directory></testsuite></phpunit>`)
	c := staticCollector()

	_, err := CompileSuite(doc, c, SuiteOptions{})
	require.NoError(t, err)

	require.Len(t, c.Calls, 2)
	assert.Equal(t, "Test.php", c.Calls[0].Suffix)
	assert.Equal(t, "", c.Calls[0].Prefix)
	assert.Equal(t, "", c.Calls[1].Suffix, "an explicit empty suffix is passed verbatim")
}

func TestCompileSuite_Multiple(t *testing.T) {
	doc := parse(t, `
<phpunit><testsuites>
  <testsuite name="A"><directory>tests/a</directory></testsuite>
  <testsuite name="B"><directory>tests/b</directory><file>tests/b/Extra.php</file></testsuite>
</testsuites></phpunit>`)

	got, err := CompileSuite(doc, staticCollector(), SuiteOptions{})
	require.NoError(t, err)

	assert.Equal(t, "", got.Name)
	assert.Empty(t, got.Files)
	require.Len(t, got.Children, 2)

	a, b := got.Child("A"), got.Child("B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, []string{"tests/a/OneTest.php", "tests/a/TwoTest.php"}, a.Files)
	assert.Equal(t, []string{"tests/b/ThreeTest.php", "tests/b/Extra.php"}, b.Files)
	assert.Equal(t, 4, got.Count())
	assert.NotContains(t, a.Files, "tests/b/Extra.php")
}

func TestCompileSuite_LegacyFallback(t *testing.T) {
	tests := map[string]string{
		"empty testsuites": `<phpunit><testsuites/><testsuite name="Legacy"><file>LegacyTest.php</file></testsuite></phpunit>`,
		"no testsuites":    `<phpunit><testsuite name="Legacy"><file>LegacyTest.php</file></testsuite></phpunit>`,
	}

	for name, xml := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := CompileSuite(parse(t, xml), staticCollector(), SuiteOptions{})
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Legacy", got.Name)
			assert.Equal(t, []string{"LegacyTest.php"}, got.Files)
			assert.Empty(t, got.Children)
		})
	}
}

func TestCompileSuite_PrefersTestsuites(t *testing.T) {
	doc := parse(t, `
<phpunit>
  <testsuite name="Root"/>
  <testsuites><testsuite name="Nested"/></testsuites>
</phpunit>`)

	got, err := CompileSuite(doc, staticCollector(), SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Nested", got.Name)
}

func TestCompileSuite_None(t *testing.T) {
	got, err := CompileSuite(parse(t, `<phpunit><testsuites/></phpunit>`), staticCollector(), SuiteOptions{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompileSuite_Unnamed(t *testing.T) {
	got, err := CompileSuite(parse(t, `<phpunit><testsuite/></phpunit>`), staticCollector(), SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "", got.Name)
	assert.Equal(t, []string{}, got.Files)
}

func TestCompileSuite_DeepSearch(t *testing.T) {
	doc := parse(t, `
<phpunit><testsuites><testsuite name="S">
  <group>
    <file>deep/FileTest.php</file>
    <nested><directory>tests/b</directory></nested>
  </group>
</testsuite></testsuites></phpunit>`)

	got, err := CompileSuite(doc, staticCollector(), SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/b/ThreeTest.php", "deep/FileTest.php"}, got.Files)
}

func TestCompileSuite_MissingDirectory(t *testing.T) {
	xml := `
<phpunit><testsuites><testsuite name="S">
  <directory>tests/missing</directory>
  <directory>tests/a</directory>
</testsuite></testsuites></phpunit>`

	t.Run("fail fast", func(t *testing.T) {
		_, err := CompileSuite(parse(t, xml), staticCollector(), SuiteOptions{})
		require.Error(t, err)

		var se *SuiteError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "S", se.Suite)
		assert.Equal(t, "tests/missing", se.Directory)
		assert.ErrorIs(t, err, collector.ErrRootNotFound)
	})

	t.Run("skip missing", func(t *testing.T) {
		got, err := CompileSuite(parse(t, xml), staticCollector(), SuiteOptions{Mode: SuiteModeSkipMissing})
		require.NoError(t, err)
		assert.Equal(t, []string{"tests/missing"}, got.Skipped)
		assert.Equal(t, []string{"tests/a/OneTest.php", "tests/a/TwoTest.php"}, got.Files)
	})
}

func TestCompileSuite_OtherCollectorErrorsAbort(t *testing.T) {
	boom := errors.New("permission denied")
	c := &testutil.StaticCollector{Missing: boom}

	_, err := CompileSuite(parse(t, `<phpunit><testsuite><directory>x</directory></testsuite></phpunit>`), c,
		SuiteOptions{Mode: SuiteModeSkipMissing})
	assert.ErrorIs(t, err, boom)
}

func TestCompileSuite_LocalCollector(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	testutil.Tree(t, dir, "tests/unit/FooTest.php", "tests/unit/helper.php", "tests/func/BarTest.php")
	path := testutil.WriteFile(t, dir, "phpunit.xml", `
<phpunit><testsuites>
  <testsuite name="unit"><directory>tests/unit</directory></testsuite>
  <testsuite name="func"><directory>tests/func</directory></testsuite>
</testsuites></phpunit>`)

	doc, err := document.Load(path)
	require.NoError(t, err)

	got, err := CompileSuite(doc, collector.NewLocal(doc.Dir()), SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "tests", "unit", "FooTest.php")}, got.Child("unit").Files)
	assert.Equal(t, []string{filepath.Join(dir, "tests", "func", "BarTest.php")}, got.Child("func").Files)
}

func TestSuiteMode_String(t *testing.T) {
	assert.Equal(t, "fail-fast", SuiteModeFailFast.String())
	assert.Equal(t, "skip-missing", SuiteModeSkipMissing.String())
	assert.Equal(t, "SuiteMode(9)", SuiteMode(9).String())

	for _, m := range []SuiteMode{SuiteModeFailFast, SuiteModeSkipMissing} {
		parsed, err := ParseSuiteMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	parsed, err := ParseSuiteMode("")
	require.NoError(t, err)
	assert.Equal(t, SuiteModeFailFast, parsed)
	_, err = ParseSuiteMode("lenient")
	assert.Error(t, err)
}

func TestCompile(t *testing.T) {
	doc := parse(t, `
<phpunit colors="true">
  <testsuite name="S"><directory>tests/a</directory></testsuite>
  <groups><include><group>g</group></include></groups>
  <selenium><browser name="b" browser="*chrome"/></selenium>
  <php><const name="X" value="true"/></php>
</phpunit>`)

	cfg, err := Compile(doc, Options{Collector: staticCollector()})
	require.NoError(t, err)

	assert.Equal(t, "phpunit.xml", cfg.Path)
	assert.Equal(t, doc.Digest(), cfg.Digest)
	assert.True(t, *cfg.Options.Colors)
	assert.Equal(t, []string{"g"}, cfg.Groups.Include)
	require.Len(t, cfg.Browsers, 1)
	assert.Equal(t, 4444, cfg.Browsers[0].Port)
	assert.Equal(t, 2, cfg.Suite.Count())
	assert.Equal(t, []ir.Listener{}, cfg.Listeners)
	v, _ := cfg.PHP.Const.Get("X")
	assert.Equal(t, ir.Bool(true), v)
}

func TestCompile_SuiteFailure(t *testing.T) {
	doc := parse(t, `<phpunit><testsuite><directory>tests/missing</directory></testsuite></phpunit>`)

	_, err := Compile(doc, Options{Collector: staticCollector()})
	require.Error(t, err)
	assert.ErrorIs(t, err, collector.ErrRootNotFound)
}
