package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/usecase"
)

// Handler HTTP handler: /chat, /checkout va yordamchi endpointlar
type Handler struct {
	chatUseCase     usecase.ChatUseCase
	checkoutUseCase usecase.CheckoutUseCase
	productUseCase  usecase.ProductUseCase
	allowedOrigins  []string
}

// NewHandler yangi Handler yaratish
func NewHandler(
	chatUseCase usecase.ChatUseCase,
	checkoutUseCase usecase.CheckoutUseCase,
	productUseCase usecase.ProductUseCase,
	allowedOrigins []string,
) *Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Handler{
		chatUseCase:     chatUseCase,
		checkoutUseCase: checkoutUseCase,
		productUseCase:  productUseCase,
		allowedOrigins:  allowedOrigins,
	}
}

// Router barcha route larni ulash
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.healthz)
	r.Post("/chat", h.chat)
	r.Post("/checkout", h.checkout)
	r.Get("/products", h.products)
	r.Get("/cart", h.cart)

	return r
}

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// chatResponse Products show_products da bo'sh ro'yxat bo'lsa ham yuboriladi
type chatResponse struct {
	Reply    string         `json:"reply,omitempty"`
	Products any            `json:"products,omitempty"`
	Cart     *entity.Cart   `json:"cart,omitempty"`
	Action   usecase.Action `json:"action"`
}

type degradedResponse struct {
	Error    string           `json:"error"`
	Products []entity.Product `json:"products"`
}

type checkoutRequest struct {
	UserID string `json:"userId"`
}

type checkoutResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *entity.Order `json:"order,omitempty"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "User ID and message are required")
		return
	}

	resp, err := h.chatUseCase.ProcessMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		status, msg := chatErrorStatus(err)
		logAt(hlog.FromRequest(r), status).Err(err).Str("user", req.UserID).Msg("chat failed")
		writeError(w, status, msg)
		return
	}

	if resp.Degraded {
		hlog.FromRequest(r).Warn().
			Str("user", req.UserID).
			Int("upstream_status", resp.UpstreamStatus).
			Msg("generation degraded")
		writeJSON(w, http.StatusInternalServerError, degradedResponse{Error: resp.Error, Products: nonNil(resp.Products)})
		return
	}

	out := chatResponse{
		Reply:  resp.Reply,
		Cart:   resp.Cart,
		Action: resp.Action,
	}
	if resp.Action == usecase.ActionShowProducts || len(resp.Products) > 0 {
		out.Products = nonNil(resp.Products)
	}
	writeJSON(w, http.StatusOK, out)
}

// chatErrorStatus xatoni HTTP status va foydalanuvchi xabariga aylantirish
func chatErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		return http.StatusBadRequest, "Invalid request: " + err.Error()
	case errors.Is(err, entity.ErrCartItemNotFound):
		return http.StatusNotFound, "Product not found in cart"
	case errors.Is(err, entity.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, entity.ErrUnknownTool):
		return http.StatusBadGateway, "Assistant requested an unsupported action"
	case errors.Is(err, entity.ErrMalformedUpstreamResponse):
		return http.StatusBadGateway, "Invalid response from assistant"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "Invalid user ID or cart")
		return
	}

	result, err := h.checkoutUseCase.Checkout(r.Context(), req.UserID)
	if errors.Is(err, entity.ErrSessionNotFound) {
		writeError(w, http.StatusBadRequest, "Invalid user ID or cart")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("user", req.UserID).Msg("checkout failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Success: result.Success,
		Message: result.Message,
		Order:   result.Order,
	})
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" || strings.EqualFold(category, "all") {
		products, err := h.productUseCase.GetAll(r.Context())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to list products")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": nonNil(products)})
		return
	}

	products, ok, err := h.productUseCase.GetByCategory(r.Context(), category)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("category", category).Msg("failed to list products")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !ok {
		categories, err := h.productUseCase.Categories(r.Context())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to list categories")
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		// /chat dagi show_products kabi: xato emas, yo'l-yo'riq
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "Invalid category. Available: " + strings.Join(categories, ", "),
			"products":   []entity.Product{},
			"categories": categories,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": nonNil(products)})
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	cart, err := h.chatUseCase.ViewCart(r.Context(), userID)
	if errors.Is(err, entity.ErrSessionNotFound) {
		cart = entity.NewCart()
		err = nil
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("user", userID).Msg("failed to load cart")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func logAt(logger *zerolog.Logger, status int) *zerolog.Event {
	if status >= http.StatusInternalServerError {
		return logger.Error()
	}
	return logger.Warn()
}

func nonNil(products []entity.Product) []entity.Product {
	if products == nil {
		return []entity.Product{}
	}
	return products
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
