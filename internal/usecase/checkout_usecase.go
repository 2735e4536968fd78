package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

// CheckoutResult checkout natijasi. Bo'sh savat xato emas: Success=false.
type CheckoutResult struct {
	Success bool
	Message string
	Order   *entity.Order
}

// CheckoutUseCase buyurtma berish
type CheckoutUseCase interface {
	Checkout(ctx context.Context, userID string) (*CheckoutResult, error)
}

type checkoutUseCase struct {
	sessions *SessionManager
	ids      repository.IDGenerator
	now      func() time.Time
}

// NewCheckoutUseCase yangi CheckoutUseCase yaratish
func NewCheckoutUseCase(sessions *SessionManager, ids repository.IDGenerator) CheckoutUseCase {
	return &checkoutUseCase{
		sessions: sessions,
		ids:      ids,
		now:      time.Now,
	}
}

// Checkout savatdan buyurtma yaratib, faqat savatni tozalaydi
func (u *checkoutUseCase) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := u.sessions.Update(ctx, userID, false, func(s *entity.Session) error {
		order, ok := s.Cart.Checkout(u.ids.NewID(), u.now())
		if !ok {
			result = &CheckoutResult{Success: false, Message: "Cart is empty"}
			return nil
		}
		result = &CheckoutResult{Success: true, Message: "Order placed successfully!", Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Order != nil {
		log.Info().
			Str("user", userID).
			Str("order_id", result.Order.ID).
			Int("items", len(result.Order.Items)).
			Float64("total", result.Order.Total).
			Msg("order placed")
	}
	return result, nil
}
