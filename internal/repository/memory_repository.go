package repository

import (
	"context"
	"sync"
	"time"

	"github.com/eaglebank/user-directory/internal/models"
)

// MemoryUserStore is an in-process UserStore for local runs and tests.
// It enforces email uniqueness on both create and update, like the
// UNIQUE constraint of the Postgres schema.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  []models.User
	nextID int64
	now    func() time.Time
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(user.Email) >= 0 {
		return nil, ErrDuplicateEmail
	}
	now := s.now()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextID++
	s.users = append(s.users, *user)
	return user, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByEmail(email)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

func (s *MemoryUserStore) UpdateByID(_ context.Context, id int64, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return ErrNotFound
	}
	if patch.IsEmpty() {
		return nil
	}
	if patch.Email != nil {
		if j := s.indexByEmail(*patch.Email); j >= 0 && j != i {
			return ErrDuplicateEmail
		}
		s.users[i].Email = *patch.Email
	}
	if patch.Name != nil {
		s.users[i].Name = *patch.Name
	}
	s.users[i].UpdatedAt = s.now()
	return nil
}

func (s *MemoryUserStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return false, nil
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return true, nil
}

func (s *MemoryUserStore) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) indexByID(id int64) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryUserStore) indexByEmail(email string) int {
	for i := range s.users {
		if s.users[i].Email == email {
			return i
		}
	}
	return -1
}
