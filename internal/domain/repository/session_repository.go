package repository

import (
	"context"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
)

// SessionRepository sessiyalar uchun key-value store. Kalit: mijoz identifikatori.
type SessionRepository interface {
	// Get sessiyani olish. Topilmasa entity.ErrSessionNotFound.
	Get(ctx context.Context, userID string) (*entity.Session, error)

	// Set sessiyani saqlash
	Set(ctx context.Context, session *entity.Session) error

	// Delete sessiyani o'chirish
	Delete(ctx context.Context, userID string) error
}
