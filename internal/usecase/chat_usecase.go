package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

// ChatResponse bitta xabarga javob
type ChatResponse struct {
	Reply    string
	Products []entity.Product
	Cart     *entity.Cart
	Action   Action

	// Degraded generation servisi ishlamadi: Error va Products (to'liq katalog) to'ldiriladi
	Degraded       bool
	Error          string
	UpstreamStatus int
}

// ChatUseCase suhbat bilan bog'liq business logic
type ChatUseCase interface {
	ProcessMessage(ctx context.Context, userID, text string) (*ChatResponse, error)
	ViewCart(ctx context.Context, userID string) (entity.Cart, error)
	Reset(ctx context.Context, userID string) error
}

type chatUseCase struct {
	sessions   *SessionManager
	aiRepo     repository.AIRepository
	catalog    repository.CatalogRepository
	dispatcher *ToolDispatcher
	now        func() time.Time
}

// NewChatUseCase yangi ChatUseCase yaratish
func NewChatUseCase(
	sessions *SessionManager,
	aiRepo repository.AIRepository,
	catalog repository.CatalogRepository,
) ChatUseCase {
	return &chatUseCase{
		sessions:   sessions,
		aiRepo:     aiRepo,
		catalog:    catalog,
		dispatcher: NewToolDispatcher(catalog),
		now:        time.Now,
	}
}

// ProcessMessage foydalanuvchi xabarini qayta ishlash: transcript -> generation -> dispatch -> transcript
func (u *chatUseCase) ProcessMessage(ctx context.Context, userID, text string) (*ChatResponse, error) {
	userID = strings.TrimSpace(userID)
	text = strings.TrimSpace(text)
	if userID == "" || text == "" {
		return nil, fmt.Errorf("user id and message are required: %w", entity.ErrInvalidArgument)
	}

	categories, err := u.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	tools := entity.ShopTools(categories)

	var resp *ChatResponse
	err = u.sessions.Update(ctx, userID, true, func(s *entity.Session) error {
		s.Append(entity.Turn{Role: entity.RoleUser, Content: text, Timestamp: u.now()})

		result := u.aiRepo.Generate(ctx, s.Transcript, tools)
		switch r := result.(type) {
		case entity.GenerationFailure:
			// rollar navbatma-navbat qolishi uchun
			s.Append(entity.Turn{Role: entity.RoleAssistant, Content: "Error: " + r.Message, Timestamp: u.now()})
			resp = &ChatResponse{
				Degraded:       true,
				Error:          r.Message,
				Products:       r.Fallback,
				UpstreamStatus: r.Status,
			}
			return nil

		case entity.GeneratedText:
			s.Append(entity.Turn{Role: entity.RoleAssistant, Content: r.Content, Timestamp: u.now()})
			resp = &ChatResponse{Reply: r.Content, Action: ActionTextResponse}
			return nil

		case entity.GeneratedToolCall:
			outcome, err := u.runTool(ctx, s, r.Invocation)
			if err != nil {
				return err
			}
			resp = &ChatResponse{
				Reply:    outcome.Reply,
				Products: outcome.Products,
				Cart:     outcome.Cart,
				Action:   outcome.Action,
			}
			return nil

		default:
			return fmt.Errorf("unexpected generation result %T: %w", result, entity.ErrMalformedUpstreamResponse)
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// runTool chaqiruvni transcriptga yozib bajarish. Xato bo'lsa ham ikkala turn yoziladi.
func (u *chatUseCase) runTool(ctx context.Context, s *entity.Session, inv entity.ToolInvocation) (Outcome, error) {
	record := inv.Clone()
	s.Append(entity.Turn{Role: entity.RoleAssistant, ToolCall: &record, Timestamp: u.now()})

	logger := log.With().Str("user", s.UserID).Str("tool", inv.Name).Logger()

	call, err := entity.DecodeToolCall(inv)
	if err == nil {
		var outcome Outcome
		outcome, err = u.dispatcher.Dispatch(ctx, &s.Cart, call)
		if err == nil {
			s.Append(entity.Turn{Role: entity.RoleAssistant, Content: outcome.TranscriptText(), Timestamp: u.now()})
			logger.Info().Str("action", string(outcome.Action)).Float64("cart_total", s.Cart.Total).Msg("tool call dispatched")
			return outcome, nil
		}
	}

	s.Append(entity.Turn{Role: entity.RoleAssistant, Content: "Error: " + err.Error(), Timestamp: u.now()})
	logger.Warn().Err(err).Interface("args", inv.Arguments).Msg("tool call failed")
	return Outcome{}, err
}

// ViewCart savat nusxasi (generation siz)
func (u *chatUseCase) ViewCart(ctx context.Context, userID string) (entity.Cart, error) {
	session, err := u.sessions.View(ctx, userID)
	if err != nil {
		return entity.Cart{}, err
	}
	return session.Cart.Snapshot(), nil
}

// Reset sessiyani (savat va suhbat) o'chirish
func (u *chatUseCase) Reset(ctx context.Context, userID string) error {
	return u.sessions.Reset(ctx, userID)
}
