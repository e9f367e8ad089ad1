package gcache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/gcache"
)

const miniGrammar = `
stmt root = 0: expr ";"
          | 1: decl
          | 2:
expr = 0: IDENT
     | 1: expr "+" expr
decl = 0: "var" IDENT ":"
multivalued { IDENT }
`

func Test_Store_Get_CachesParse(t *testing.T) {
	s, err := gcache.Open("")
	require.NoError(t, err)

	g1, err := s.Get(miniGrammar)
	require.NoError(t, err)
	require.NotNil(t, g1)

	g2, err := s.Get(miniGrammar)
	require.NoError(t, err)
	assert.Same(t, g1, g2)
}

func Test_Store_Get_BadGrammar(t *testing.T) {
	s, err := gcache.Open("")
	require.NoError(t, err)

	_, err = s.Get("not a valid grammar {{{")
	assert.Error(t, err)
}

func Test_Store_Seen_UnknownSource(t *testing.T) {
	s, err := gcache.Open("")
	require.NoError(t, err)
	assert.False(t, s.Seen(miniGrammar))
}

func Test_Store_Seen_AfterGet(t *testing.T) {
	s, err := gcache.Open("")
	require.NoError(t, err)

	_, err = s.Get(miniGrammar)
	require.NoError(t, err)
	assert.True(t, s.Seen(miniGrammar))
}

func Test_Store_Open_PersistsManifestAcrossRestarts(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "manifest.bin")

	s1, err := gcache.Open(manifestPath)
	require.NoError(t, err)
	_, err = s1.Get(miniGrammar)
	require.NoError(t, err)
	require.True(t, s1.Seen(miniGrammar))

	s2, err := gcache.Open(manifestPath)
	require.NoError(t, err)
	assert.True(t, s2.Seen(miniGrammar))
}

func Test_Store_Open_MissingManifestIsNotError(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "does-not-exist.bin")
	s, err := gcache.Open(manifestPath)
	require.NoError(t, err)
	assert.False(t, s.Seen(miniGrammar))
}
