package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/infrastructure/storage"
)

func TestSessionManagerCreatesWithPrimer(t *testing.T) {
	m := NewSessionManager(storage.NewMemorySessionRepository(), "primer", 0)
	ctx := context.Background()

	err := m.Update(ctx, "u1", false, func(*entity.Session) error { return nil })
	assert.True(t, errors.Is(err, entity.ErrSessionNotFound))

	require.NoError(t, m.Update(ctx, "u1", true, func(s *entity.Session) error {
		assert.Equal(t, "primer", s.Transcript.Primer())
		assert.True(t, s.Cart.IsEmpty())
		return nil
	}))

	s, err := m.View(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
}

func TestSessionManagerSavesOnError(t *testing.T) {
	m := NewSessionManager(storage.NewMemorySessionRepository(), "primer", 0)
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.Update(ctx, "u1", true, func(s *entity.Session) error {
		s.Append(entity.Turn{Role: entity.RoleUser, Content: "hi"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := m.View(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, s.Transcript, 2)
}

func TestSessionManagerTrimsTranscript(t *testing.T) {
	m := NewSessionManager(storage.NewMemorySessionRepository(), "primer", 4)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Update(ctx, "u1", true, func(s *entity.Session) error {
			s.Append(entity.Turn{Role: entity.RoleUser, Content: fmt.Sprint("q", i)})
			s.Append(entity.Turn{Role: entity.RoleAssistant, Content: fmt.Sprint("a", i)})
			return nil
		}))
	}

	s, err := m.View(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, s.Transcript, 5)
	assert.Equal(t, entity.RoleSystem, s.Transcript[0].Role)
	assert.Equal(t, entity.RoleUser, s.Transcript[1].Role)
	assert.Equal(t, "a4", s.Transcript[len(s.Transcript)-1].Content)
}

func TestSessionManagerReset(t *testing.T) {
	m := NewSessionManager(storage.NewMemorySessionRepository(), "primer", 0)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, "u1", true, func(*entity.Session) error { return nil }))
	require.NoError(t, m.Reset(ctx, "u1"))

	_, err := m.View(ctx, "u1")
	assert.True(t, errors.Is(err, entity.ErrSessionNotFound))
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), "a")
			if !assert.NoError(t, err) {
				return
			}
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Empty(t, k.locks)
}

func TestSessionManagerLockRespectsContext(t *testing.T) {
	m := NewSessionManager(storage.NewMemorySessionRepository(), "primer", 0)
	ctx := context.Background()

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = m.Update(ctx, "u1", true, func(*entity.Session) error {
			close(held)
			<-done
			return nil
		})
	}()
	<-held

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	called := false
	err := m.Update(waitCtx, "u1", true, func(*entity.Session) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)

	// boshqa sessiya bloklanmaydi
	require.NoError(t, m.Update(ctx, "u2", true, func(*entity.Session) error { return nil }))

	close(done)
	require.Eventually(t, func() bool {
		return m.Update(ctx, "u1", false, func(*entity.Session) error { return nil }) == nil
	}, time.Second, 5*time.Millisecond)

	m.locks.mu.Lock()
	defer m.locks.mu.Unlock()
	assert.Empty(t, m.locks.locks)
}
