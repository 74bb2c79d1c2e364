package storage

import (
	"sync"

	"chatapi/iface"

	"github.com/pkg/errors"
)

// MemoryStorage keeps sessions in process
type MemoryStorage struct {
	sync.RWMutex
	sessions map[string]iface.Session
}

func NewMemoryStorage() iface.ISessionStorage {
	return &MemoryStorage{
		sessions: make(map[string]iface.Session),
	}
}

func (m *MemoryStorage) Add(session *iface.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session token is required")
	}
	m.Lock()
	defer m.Unlock()
	m.sessions[session.Token] = *session
	return nil
}

func (m *MemoryStorage) Delete(token string) error {
	m.Lock()
	defer m.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStorage) Get(token string) (*iface.Session, error) {
	m.RLock()
	defer m.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, iface.ErrSessionNil
	}
	return &session, nil
}
