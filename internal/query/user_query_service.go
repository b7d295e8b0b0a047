package query

import (
	"context"
	"errors"

	"github.com/eaglebank/user-directory/internal/apperrors"
	"github.com/eaglebank/user-directory/internal/cqrs"
	"github.com/eaglebank/user-directory/internal/models"
	"github.com/eaglebank/user-directory/internal/repository"
)

// UserQueryService reads user records straight from the store.
type UserQueryService struct {
	store repository.UserStore
}

func NewUserQueryService(store repository.UserStore) *UserQueryService {
	return &UserQueryService{store: store}
}

func (s *UserQueryService) ListUsers(ctx context.Context, _ cqrs.ListUsersQuery) ([]models.User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	user, err := s.store.FindByID(ctx, q.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrNotFound
	}
	return user, err
}
