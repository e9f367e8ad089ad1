package result_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/fixgo/internal/reachability/result"
)

func Test_NewDiff(t *testing.T) {
	d := result.NewDiff([]string{"a", "b"}, []string{"a", "x", "b"})
	assert.Equal(t, []string{"a", "b"}, d.Original)
	assert.Equal(t, []string{"a", "x", "b"}, d.Repaired)
}

func Test_Diff_Table_ContainsBothStreams(t *testing.T) {
	d := result.NewDiff([]string{"a", "b"}, []string{"a", "x", "b"})
	out := d.Table(60)
	assert.Contains(t, out, "original")
	assert.Contains(t, out, "repaired")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "b")
}

func Test_Diff_Table_HandlesUnevenLengths(t *testing.T) {
	d := result.NewDiff([]string{"a"}, []string{"a", "b", "c"})
	out := d.Table(60)
	assert.Contains(t, out, "c")
}

func Test_Diff_Summary_JoinsRepairedTokens(t *testing.T) {
	d := result.NewDiff([]string{"a"}, []string{"a", "x"})
	out := d.Summary(80)
	assert.True(t, strings.Contains(out, "a") && strings.Contains(out, "x"))
}
