package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/usecase"
)

const maxCatalogFileSize = 5 * 1024 * 1024

// BotHandler Telegram orqali suhbat. Har bir chat alohida sessiya: tg:<chatID>.
type BotHandler struct {
	bot             *tgbotapi.BotAPI
	chatUseCase     usecase.ChatUseCase
	checkoutUseCase usecase.CheckoutUseCase
	productUseCase  usecase.ProductUseCase
	admins          map[int64]bool
	httpClient      *http.Client
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	adminIDs []int64,
	chatUseCase usecase.ChatUseCase,
	checkoutUseCase usecase.CheckoutUseCase,
	productUseCase usecase.ProductUseCase,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}

	return &BotHandler{
		bot:             bot,
		chatUseCase:     chatUseCase,
		checkoutUseCase: checkoutUseCase,
		productUseCase:  productUseCase,
		admins:          admins,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	log.Info().Str("bot", h.bot.Self.UserName).Msg("telegram bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("telegram bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// SessionKey chat uchun sessiya kaliti
func SessionKey(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}
	h.handleTextMessage(ctx, message.Chat.ID, text)
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start", "help":
		h.sendMessage(chatID, welcomeMessage)
	case "cart":
		h.handleCartCommand(ctx, chatID)
	case "checkout":
		h.handleCheckoutCommand(ctx, chatID)
	case "reset":
		if err := h.chatUseCase.Reset(ctx, SessionKey(chatID)); err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("failed to reset session")
			h.sendMessage(chatID, "Something went wrong. Please try again.")
			return
		}
		h.sendMessage(chatID, "Your cart and conversation have been cleared.")
	default:
		h.sendMessage(chatID, "Unknown command. Use /help.")
	}
}

// handleTextMessage xabarni suhbat oqimidan o'tkazish
func (h *BotHandler) handleTextMessage(ctx context.Context, chatID int64, text string) {
	_, _ = h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	resp, err := h.chatUseCase.ProcessMessage(ctx, SessionKey(chatID), text)
	if err != nil {
		log.Warn().Err(err).Int64("chat", chatID).Msg("chat message failed")
		h.sendMessage(chatID, ErrorMessage(err))
		return
	}
	h.sendMessage(chatID, FormatChatResponse(resp))
}

func (h *BotHandler) handleCartCommand(ctx context.Context, chatID int64) {
	cart, err := h.chatUseCase.ViewCart(ctx, SessionKey(chatID))
	if err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to load cart")
		h.sendMessage(chatID, "Something went wrong. Please try again.")
		return
	}
	if cart.IsEmpty() {
		h.sendMessage(chatID, "Your cart is currently empty.")
		return
	}
	h.sendMessage(chatID, usecase.FormatCart(cart))
}

func (h *BotHandler) handleCheckoutCommand(ctx context.Context, chatID int64) {
	result, err := h.checkoutUseCase.Checkout(ctx, SessionKey(chatID))
	if errors.Is(err, entity.ErrSessionNotFound) {
		h.sendMessage(chatID, "Cart is empty")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("checkout failed")
		h.sendMessage(chatID, "Something went wrong. Please try again.")
		return
	}
	h.sendMessage(chatID, FormatCheckout(result))
}

// handleDocumentMessage admin yuborgan Excel katalogni import qilish
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if message.From == nil || !h.admins[message.From.ID] {
		h.sendMessage(chatID, "Only administrators can upload a catalog.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxCatalogFileSize {
		h.sendMessage(chatID, "The file must not exceed 5MB.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "Only Excel (.xlsx) files are accepted.")
		return
	}

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		log.Error().Err(err).Str("file", doc.FileName).Msg("file download failed")
		h.sendMessage(chatID, "Failed to download the file.")
		return
	}

	count, err := h.productUseCase.ImportCatalogBytes(ctx, data, doc.FileName)
	if err != nil {
		log.Error().Err(err).Str("file", doc.FileName).Msg("catalog import failed")
		h.sendMessage(chatID, fmt.Sprintf("Catalog update failed: %v", err))
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("Catalog updated: %d products from %s", count, doc.FileName))
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCatalogFileSize+1))
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to send message")
	}
}

const welcomeMessage = `Hi! I'm ShopBot, your virtual shopping assistant.

Ask me to show products by category, add or remove items, or change quantities.

/cart - show your cart
/checkout - place the order
/reset - clear your cart and conversation`
