package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository in-memory sessiya store yaratish
func NewMemorySessionRepository() repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Get sessiya nusxasini olish
func (m *memorySessionRepository) Get(ctx context.Context, userID string) (*entity.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", userID, entity.ErrSessionNotFound)
	}
	return session.Clone(), nil
}

// Set sessiyani saqlash
func (m *memorySessionRepository) Set(ctx context.Context, session *entity.Session) error {
	if session == nil || session.UserID == "" {
		return fmt.Errorf("session without user id: %w", entity.ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.UserID] = session.Clone()
	return nil
}

// Delete sessiyani o'chirish
func (m *memorySessionRepository) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}
