package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/facekeeper/internal/common"
)

func TestUserService_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry", func(t *testing.T) {
		e := newEnv(t)
		svc := NewUserService(e.users, e.storage)

		_, err := svc.Latest(ctx)
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("returns the most recently registered record", func(t *testing.T) {
		e := newEnv(t)
		e.registerUser(t, "first@example.com", uniformDescriptor(0))
		e.registerUser(t, "second@example.com", uniformDescriptor(0.1))

		svc := NewUserService(e.users, e.storage)
		rec, err := svc.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second@example.com", rec.Email)
	})
}

func TestUserService_Recognized_BeforeAnySignIn(t *testing.T) {
	e := newEnv(t)
	svc := NewUserService(e.users, e.storage)

	_, err := svc.Recognized(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
}
