package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

// SessionManager sessiyalarning yagona egasi. Bitta foydalanuvchi uchun so'rovlar ketma-ket bajariladi.
type SessionManager struct {
	repo     repository.SessionRepository
	locks    *keyedMutex
	primer   string
	maxTurns int
	now      func() time.Time
}

// NewSessionManager yangi SessionManager yaratish
func NewSessionManager(repo repository.SessionRepository, primer string, maxTurns int) *SessionManager {
	return &SessionManager{
		repo:     repo,
		locks:    newKeyedMutex(),
		primer:   primer,
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// Update sessiyani qulf ostida o'qib, fn bilan o'zgartirib, saqlaydi.
// create=false bo'lsa va sessiya yo'q bo'lsa entity.ErrSessionNotFound qaytadi.
// fn xato qaytarsa ham sessiya saqlanadi: transcript holatni aks ettirishi kerak.
func (m *SessionManager) Update(ctx context.Context, userID string, create bool, fn func(*entity.Session) error) error {
	unlock, err := m.locks.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	session, err := m.repo.Get(ctx, userID)
	switch {
	case errors.Is(err, entity.ErrSessionNotFound) && create:
		session = entity.NewSession(userID, m.primer, m.now())
	case err != nil:
		return err
	}

	fnErr := fn(session)

	session.Transcript = session.Transcript.Trim(m.maxTurns)
	if err := m.repo.Set(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return fnErr
}

// View sessiya nusxasini qulf ostida olish
func (m *SessionManager) View(ctx context.Context, userID string) (*entity.Session, error) {
	unlock, err := m.locks.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return m.repo.Get(ctx, userID)
}

// Reset sessiyani butunlay o'chirish
func (m *SessionManager) Reset(ctx context.Context, userID string) error {
	unlock, err := m.locks.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	return m.repo.Delete(ctx, userID)
}

// keyedMutex har bir kalit uchun alohida qulf. Ishlatilmay qolgan qulflar o'chiriladi.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

// refLock 1 sig'imli kanal: kutish ctx bilan bekor qilinadi
type refLock struct {
	ch   chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

// Lock kalitni egallash. ctx tugasa qulf olinmaydi va ctx xatosi qaytadi.
func (k *keyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, l)
		return nil, fmt.Errorf("waiting for session %s: %w", key, ctx.Err())
	}

	return func() {
		<-l.ch
		k.release(key, l)
	}, nil
}

func (k *keyedMutex) release(key string, l *refLock) {
	k.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}
