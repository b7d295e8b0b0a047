package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/eaglebank/user-directory/internal/apperrors"
	"github.com/eaglebank/user-directory/internal/cqrs"
	"github.com/eaglebank/user-directory/internal/events"
	"github.com/eaglebank/user-directory/internal/models"
	"github.com/eaglebank/user-directory/internal/repository"
	"go.uber.org/zap"
)

// UserCommandService writes user records to the store and announces each
// change on the user event stream.
type UserCommandService struct {
	store     repository.UserStore
	publisher events.Publisher
	log       *zap.SugaredLogger
}

func NewUserCommandService(
	store repository.UserStore,
	publisher events.Publisher,
	log *zap.SugaredLogger,
) *UserCommandService {
	return &UserCommandService{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// CreateUser rejects an email that is already taken. The lookup is only a
// fast path: a unique violation from the store is reported the same way.
func (s *UserCommandService) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	_, err := s.store.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return nil, apperrors.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user, err := s.store.Create(ctx, &models.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.publish(ctx, events.UserCreated, events.UserCreatedEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	return user, nil
}

// UpdateUser applies the fields present in cmd and returns the record as
// stored afterwards.
func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	if _, err := s.store.FindByID(ctx, cmd.UserID); err != nil {
		return nil, mapStoreError(err)
	}

	patch := models.UserPatch{Name: cmd.Name, Email: cmd.Email}
	if !patch.IsEmpty() {
		if err := s.store.UpdateByID(ctx, cmd.UserID, patch); err != nil {
			return nil, mapStoreError(err)
		}
	}

	user, err := s.store.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if !patch.IsEmpty() {
		s.publish(ctx, events.UserUpdated, events.UserUpdatedEvent{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		})
	}
	return user, nil
}

func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
	deleted, err := s.store.DeleteByID(ctx, cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}

	s.publish(ctx, events.UserDeleted, events.UserDeletedEvent{UserID: cmd.UserID})
	return nil
}

func (s *UserCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.UserEventsStream, eventType, data); err != nil {
		s.log.Warnw("failed to publish event", "type", eventType, "error", err)
	}
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperrors.ErrDuplicateEmail
	default:
		return err
	}
}
