package db

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/avinashankur/user-accounts-backend/models"
)

var _ Database = (*Memory)(nil)

// Memory is a map-backed Database used by the tests. It enforces the same
// username/email uniqueness contract as the Mongo implementation.
type Memory struct {
	mu    sync.RWMutex
	users map[models.UserID]models.User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[models.UserID]models.User)}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) CreateUser(_ context.Context, user CreateUser) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username := strings.TrimSpace(user.Username)
	email := normalizeEmail(user.Email)
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return models.User{}, ErrDuplicate
		}
	}

	now := time.Now().Unix()
	dbuser := models.User{
		ID:        models.NewUserID(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      strings.TrimSpace(user.Name),
		Username:  username,
		Email:     email,
		Password:  user.PwdHash,
	}
	m.users[dbuser.ID] = dbuser
	return dbuser, nil
}

func (m *Memory) FindByID(_ context.Context, id models.UserID) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) FindByUsername(_ context.Context, username string) (models.User, error) {
	return m.findFirst(func(u models.User) bool { return u.Username == username })
}

func (m *Memory) FindByEmail(_ context.Context, email string) (models.User, error) {
	email = normalizeEmail(email)
	return m.findFirst(func(u models.User) bool { return u.Email == email })
}

func (m *Memory) FindByIdentifier(_ context.Context, identifier string) (models.User, error) {
	email := normalizeEmail(identifier)
	return m.findFirst(func(u models.User) bool {
		return u.Username == identifier || u.Email == email
	})
}

func (m *Memory) findFirst(match func(models.User) bool) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) SearchByText(_ context.Context, query string, limit int64) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	users := []models.User{}
	for _, u := range m.users {
		if int64(len(users)) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *Memory) ListAll(context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *Memory) UpdateUser(_ context.Context, id models.UserID, fields UserUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	if fields.Username != nil || fields.Email != nil {
		for uid, u := range m.users {
			if uid == id {
				continue
			}
			if fields.Username != nil && u.Username == strings.TrimSpace(*fields.Username) {
				return models.User{}, ErrDuplicate
			}
			if fields.Email != nil && u.Email == normalizeEmail(*fields.Email) {
				return models.User{}, ErrDuplicate
			}
		}
	}

	if fields.Name != nil {
		user.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Username != nil {
		user.Username = strings.TrimSpace(*fields.Username)
	}
	if fields.Email != nil {
		user.Email = normalizeEmail(*fields.Email)
	}
	if fields.PwdHash != nil {
		user.Password = *fields.PwdHash
	}
	user.UpdatedAt = time.Now().Unix()

	m.users[id] = user
	return user, nil
}

func (m *Memory) SetRefreshToken(_ context.Context, id models.UserID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	user.RefreshToken = token
	user.UpdatedAt = time.Now().Unix()
	m.users[id] = user
	return nil
}
