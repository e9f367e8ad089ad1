package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/config"
)

func Test_Load_MissingFileReturnsZeroValue(t *testing.T) {
	d, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults{}, d)
}

func Test_Load_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixgo.toml")
	contents := `
lang = "c"
max_len = 3
max_new_id = 2
verbose_gen = true
memory_limit = 1048576
grammar_cache = "/var/cache/fixgo/grammars.bin"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	d, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "c", d.Lang)
	require.NotNil(t, d.MaxLen)
	assert.Equal(t, 3, *d.MaxLen)
	require.NotNil(t, d.MaxNewID)
	assert.Equal(t, 2, *d.MaxNewID)
	require.NotNil(t, d.VerboseGen)
	assert.True(t, *d.VerboseGen)
	require.NotNil(t, d.MemoryLimit)
	assert.EqualValues(t, 1048576, *d.MemoryLimit)
	assert.Equal(t, "/var/cache/fixgo/grammars.bin", d.GrammarCache)
}

func Test_Load_PartialFileLeavesRestZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixgo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`lang = "mj"`), 0o644))

	d, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mj", d.Lang)
	assert.Nil(t, d.MaxLen)
	assert.Nil(t, d.MaxNewID)
	assert.Nil(t, d.VerboseGen)
	assert.Nil(t, d.MemoryLimit)
}

func Test_Load_BadTOMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixgo.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
