package query

import (
	"context"
	"testing"

	"github.com/eaglebank/user-directory/internal/apperrors"
	"github.com/eaglebank/user-directory/internal/cqrs"
	"github.com/eaglebank/user-directory/internal/models"
	"github.com/eaglebank/user-directory/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryUserStore()
	svc := NewUserQueryService(store)

	users, err := svc.ListUsers(ctx, cqrs.ListUsersQuery{})
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := store.Create(ctx, &models.User{Name: email, Email: email})
		require.NoError(t, err)
	}

	users, err = svc.ListUsers(ctx, cqrs.ListUsersQuery{})
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "c@x.com", users[2].Email)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryUserStore()
	svc := NewUserQueryService(store)
	created, err := store.Create(ctx, &models.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, cqrs.GetUserQuery{UserID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetUser(ctx, cqrs.GetUserQuery{UserID: created.ID + 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
