package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn          func(ctx context.Context, user *domain.User) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByTelegramIDFn func(ctx context.Context, telegramID int64) (*domain.User, error)
	ListFn            func(ctx context.Context) ([]*domain.User, error)
	UpdateFn          func(ctx context.Context, user *domain.User) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by telegram ID
	Users map[int64]*domain.User

	// Dependents marks users whose deletion must be refused
	Dependents map[uuid.UUID]int

	CreateError error
	GetError    error
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:      make(map[int64]*domain.User),
		Dependents: make(map[uuid.UUID]int),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.TelegramID]; exists {
		return store.ErrTelegramIDExists
	}

	m.Users[user.TelegramID] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByTelegramID implements the UserStore interface
func (m *MockUserStore) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	if m.GetByTelegramIDFn != nil {
		return m.GetByTelegramIDFn(ctx, telegramID)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	user, exists := m.Users[telegramID]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	// Map iteration order is random; keep the output deterministic.
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	for telegramID, existing := range m.Users {
		if existing.ID == user.ID {
			if telegramID != user.TelegramID {
				if _, exists := m.Users[user.TelegramID]; exists {
					return store.ErrTelegramIDExists
				}
				delete(m.Users, telegramID)
			}
			m.Users[user.TelegramID] = user
			return nil
		}
	}

	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.Dependents[id] > 0 {
		return store.ErrUserHasDependents
	}

	for telegramID, user := range m.Users {
		if user.ID == id {
			delete(m.Users, telegramID)
			return nil
		}
	}

	return store.ErrUserNotFound
}

// WithTx implements the UserStore interface. The mock has no real
// transactions, so it returns itself and keeps operating on the same
// in-memory state.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
