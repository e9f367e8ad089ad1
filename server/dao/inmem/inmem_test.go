package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/fixgo/internal/fixid"
	"github.com/dekarrin/fixgo/server/dao"
)

func Test_RunRepository_CreateAssignsID(t *testing.T) {
	repo := NewRunRepository()
	run, err := repo.Create(context.Background(), dao.Run{Lang: "c", MaxLen: 2, FoundLength: -1})
	require.NoError(t, err)
	var zero fixid.ID
	assert.NotEqual(t, zero, run.ID)
}

func Test_RunRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRunRepository()
	_, err := repo.GetByID(context.Background(), fixid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_RunRepository_List_NewestFirst(t *testing.T) {
	repo := NewRunRepository()
	ctx := context.Background()

	older := dao.Run{Lang: "c", ID: fixid.New(), Submitted: time.Now().Add(-time.Hour)}
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)

	newer, err := repo.Create(ctx, dao.Run{Lang: "mj", Submitted: time.Now()})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
}
