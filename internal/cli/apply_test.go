package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/ir"
	"github.com/roach88/phpunitxml/internal/testutil"
)

const phpConfig = `<phpunit>
  <php>
    <const name="LIMIT" value="2G"/>
    <ini name="memory_limit" value="LIMIT"/>
    <var name="mode" value="first"/>
  </php>
</phpunit>
`

func TestApplyCommand(t *testing.T) {
	path := testutil.WriteConfig(t, phpConfig)
	db := filepath.Join(t.TempDir(), "env.db")

	out, _, err := execute(t, "apply", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied")
	assert.Contains(t, out, "1 ini, 1 const, 1 var")
}

func TestApplyCommand_JSON(t *testing.T) {
	path := testutil.WriteConfig(t, phpConfig)
	db := filepath.Join(t.TempDir(), "env.db")

	out, _, err := execute(t, "--format", "json", "apply", path, "--db", db)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ApplyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(1), resp.Data.Application.Seq)
	assert.NotEmpty(t, resp.Data.Application.ID)
	assert.NotEmpty(t, resp.Data.Application.ConfigDigest)
}

func TestApplyCommand_RecordsConfigurationDigest(t *testing.T) {
	plain := testutil.WriteConfig(t, phpConfig)
	commented := testutil.WriteConfig(t, "<!-- same settings -->\n"+phpConfig)
	db := filepath.Join(t.TempDir(), "env.db")

	digests := make([]string, 0, 2)
	for _, path := range []string{plain, commented} {
		out, _, err := execute(t, "--format", "json", "apply", path, "--db", db)
		require.NoError(t, err)

		var resp struct {
			Data ApplyResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		digests = append(digests, resp.Data.Application.ConfigDigest)
	}

	cfg, err := LoadConfiguration(plain, LoadOptions{Mode: compiler.SuiteModeSkipMissing})
	require.NoError(t, err)
	want, err := ir.ConfigurationDigest(cfg)
	require.NoError(t, err)

	assert.Equal(t, want, digests[0])
	assert.Equal(t, digests[0], digests[1], "layout-only differences share a digest")
	assert.NotEqual(t, cfg.Digest, digests[0], "recorded digest covers resolved content, not raw bytes")
}

func TestApplyCommand_PredefinedConstant(t *testing.T) {
	path := testutil.WriteConfig(t, `<phpunit><php><ini name="error_reporting" value="E_ALL"/></php></phpunit>`)
	db := filepath.Join(t.TempDir(), "env.db")

	_, _, err := execute(t, "apply", path, "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "--format", "json", "env", "--db", db)
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Ini       []envEntry `json:"ini"`
			Constants []envEntry `json:"constants"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Ini, 1)
	assert.JSONEq(t, `"32767"`, string(resp.Data.Ini[0].Value))
	assert.Empty(t, resp.Data.Constants)
}

func TestApplyThenEnv(t *testing.T) {
	first := testutil.WriteConfig(t, phpConfig)
	second := testutil.WriteConfig(t, `<phpunit>
  <php>
    <const name="LIMIT" value="4G"/>
    <var name="mode" value="second"/>
    <ini name="memory_limit" value="LIMIT"/>
  </php>
</phpunit>`)
	db := filepath.Join(t.TempDir(), "env.db")

	_, _, err := execute(t, "apply", first, "--db", db)
	require.NoError(t, err)
	_, _, err = execute(t, "apply", second, "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "--format", "json", "env", "--db", db)
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Applications []struct {
				ID  string `json:"id"`
				Seq int64  `json:"seq"`
			} `json:"applications"`
			Ini       []envEntry `json:"ini"`
			Constants []envEntry `json:"constants"`
			Globals   []envEntry `json:"globals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Applications, 2)
	assert.Equal(t, int64(1), resp.Data.Applications[0].Seq)
	assert.Equal(t, int64(2), resp.Data.Applications[1].Seq)
	firstID, secondID := resp.Data.Applications[0].ID, resp.Data.Applications[1].ID

	// Constants keep the first definition. Only the second application's ini
	// lookup finds LIMIT defined.
	require.Len(t, resp.Data.Constants, 1)
	assert.JSONEq(t, `"2G"`, string(resp.Data.Constants[0].Value))
	assert.Equal(t, firstID, resp.Data.Constants[0].ApplicationID)

	require.Len(t, resp.Data.Ini, 1)
	assert.JSONEq(t, `"2G"`, string(resp.Data.Ini[0].Value))
	assert.Equal(t, secondID, resp.Data.Ini[0].ApplicationID)

	require.Len(t, resp.Data.Globals, 1)
	assert.JSONEq(t, `"second"`, string(resp.Data.Globals[0].Value))
	assert.Equal(t, secondID, resp.Data.Globals[0].ApplicationID)
}

type envEntry struct {
	Name          string          `json:"name"`
	Value         json.RawMessage `json:"value"`
	ApplicationID string          `json:"application_id"`
}

func TestEnvCommand_Text(t *testing.T) {
	path := testutil.WriteConfig(t, phpConfig)
	db := filepath.Join(t.TempDir(), "env.db")

	_, _, err := execute(t, "apply", path, "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "env", "--db", db)
	require.NoError(t, err)
	for _, want := range []string{"Applications:", "Ini:", "Constants:", "Globals:", "memory_limit", `"2G"`, `"first"`} {
		assert.Contains(t, out, want)
	}
}

func TestEnvCommand_MissingDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "absent.db")

	_, _, err := execute(t, "env", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.NoFileExists(t, db)
}

func TestApplyCommand_MissingConfig(t *testing.T) {
	db := filepath.Join(t.TempDir(), "env.db")

	_, _, err := execute(t, "apply", filepath.Join(t.TempDir(), "absent.xml"), "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestApplyCommand_RequiresDB(t *testing.T) {
	path := testutil.WriteConfig(t, phpConfig)

	_, _, err := execute(t, "apply", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestDescribeValue(t *testing.T) {
	tests := []struct {
		v    ir.Value
		want string
	}{
		{ir.Null{}, "null"},
		{ir.String("a"), `"a"`},
		{ir.Bool(false), "false"},
		{ir.Int(-3), "-3"},
		{ir.Float(1.5), "1.5"},
		{ir.Array{ir.Keyed("k", ir.Int(1)), ir.Positional(ir.String("v"))}, `["k" => 1, "v"]`},
		{ir.Object{Class: "Foo", Args: []ir.Value{ir.Bool(true)}}, "new Foo(true)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, describeValue(tt.v))
		})
	}
}
