package memory_test

import (
	"context"
	"testing"

	databaseerrors "storefront/internal/database"
	"storefront/internal/database/memory"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SetThenGet(t *testing.T) {
	s := memory.New(slogdiscard.NewDiscardLogger())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cart", "[]"))
	require.NoError(t, s.Set(ctx, "cart", `[{"id":1}]`))

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestStorage_GetMissing(t *testing.T) {
	s := memory.New(slogdiscard.NewDiscardLogger())

	_, err := s.Get(context.Background(), "orders")
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
}

func TestStorage_ContextCanceled(t *testing.T) {
	s := memory.New(slogdiscard.NewDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Set(ctx, "cart", "[]")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Get(ctx, "cart")
	assert.ErrorIs(t, err, context.Canceled)
}
