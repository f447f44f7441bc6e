package directory

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Memory keeps users in a map for the life of the process.
type Memory struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemory(seed ...User) *Memory {
	m := &Memory{users: make(map[string]User, len(seed))}
	for _, u := range seed {
		m.users[u.Account] = u
	}
	return m
}

func (m *Memory) FindByAccount(_ context.Context, account string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[account]
	if !ok {
		return User{}, errors.Wrapf(ErrUserNotFound, "account %q", account)
	}
	return u, nil
}

func (m *Memory) Save(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Account]; ok {
		return errors.Wrapf(ErrAlreadyRegistered, "account %q", u.Account)
	}
	m.users[u.Account] = u
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
