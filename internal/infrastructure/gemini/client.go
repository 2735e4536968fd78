package gemini

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
	"google.golang.org/api/option"
)

// Config generation sozlamalari
type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	Timeout         time.Duration
	MaxRetries      int
}

// contentGenerator bitta so'rovni bajaradi. Testlarda almashtiriladi.
type contentGenerator func(ctx context.Context, systemPrompt string, history []*genai.Content, last *genai.Content, tools []*genai.Tool) (*genai.GenerateContentResponse, error)

type geminiClient struct {
	client   *genai.Client
	cfg      Config
	catalog  repository.CatalogRepository
	generate contentGenerator
	sem      chan struct{}
	mu       sync.Mutex
	last     time.Time
	delay    time.Duration
	backoff  time.Duration
}

// NewGeminiClient yangi Gemini client yaratish
func NewGeminiClient(ctx context.Context, cfg Config, catalog repository.CatalogRepository) (repository.AIRepository, func() error, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := newClient(cfg, catalog, nil)
	g.client = client
	g.generate = g.sendChat
	return g, client.Close, nil
}

func newClient(cfg Config, catalog repository.CatalogRepository, gen contentGenerator) *geminiClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &geminiClient{
		cfg:      cfg,
		catalog:  catalog,
		generate: gen,
		sem:      make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:    350 * time.Millisecond, // minimal interval
		backoff:  500 * time.Millisecond,
	}
}

// Generate transcript bo'yicha javob olish. Har qanday xato GenerationFailure bo'ladi.
func (g *geminiClient) Generate(ctx context.Context, transcript entity.Transcript, tools []entity.ToolDeclaration) entity.GenerationResult {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	contents := toContents(transcript)
	if len(contents) == 0 || contents[len(contents)-1].Role != roleUser {
		return g.failure(ctx, fmt.Errorf("transcript must end with a user turn: %w", entity.ErrInvalidArgument))
	}
	history, last := contents[:len(contents)-1], contents[len(contents)-1]
	genaiTools := toTools(tools)

	var (
		resp *genai.GenerateContentResponse
		err  error
	)
	for attempt := 0; ; attempt++ {
		resp, err = g.call(ctx, transcript.Primer(), history, last, genaiTools)
		if err == nil || attempt >= g.cfg.MaxRetries || !retryable(err) {
			break
		}

		wait := g.backoff << attempt
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", wait).Msg("gemini request failed, retrying")
		if serr := sleepCtx(ctx, wait); serr != nil {
			err = serr
			break
		}
	}
	if err != nil {
		return g.failure(ctx, fmt.Errorf("%w: %w", entity.ErrUpstreamUnavailable, err))
	}

	result, err := interpretResponse(resp)
	if err != nil {
		return g.failure(ctx, err)
	}
	return result
}

func (g *geminiClient) call(ctx context.Context, systemPrompt string, history []*genai.Content, last *genai.Content, tools []*genai.Tool) (*genai.GenerateContentResponse, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return g.generate(ctx, systemPrompt, history, last, tools)
}

// sendChat ChatSession orqali tarix bilan so'rov yuborish
func (g *geminiClient) sendChat(ctx context.Context, systemPrompt string, history []*genai.Content, last *genai.Content, tools []*genai.Tool) (*genai.GenerateContentResponse, error) {
	// Model har so'rov uchun yangidan quriladi
	model := g.client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(g.cfg.Temperature)
	model.SetTopP(g.cfg.TopP)
	model.SetMaxOutputTokens(g.cfg.MaxOutputTokens)
	model.Tools = tools
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	cs := model.StartChat()
	cs.History = history
	return cs.SendMessage(ctx, last.Parts...)
}

// failure degraded javob: status, xabar va to'liq katalog
func (g *geminiClient) failure(ctx context.Context, err error) entity.GenerationResult {
	status := upstreamStatus(err)
	log.Error().Err(err).Int("status", status).Msg("gemini request failed")

	var fallback []entity.Product
	if g.catalog != nil {
		// ctx tugagan bo'lishi mumkin, katalog esa xotirada
		if products, cerr := g.catalog.GetAll(context.WithoutCancel(ctx)); cerr == nil {
			fallback = products
		}
	}

	return entity.GenerationFailure{
		Status:   status,
		Message:  "Service unavailable. Please try again.",
		Err:      err,
		Fallback: fallback,
	}
}

// acquire semafor va minimal interval
func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	now := time.Now()
	var sleep time.Duration
	if !g.last.IsZero() {
		sleep = g.delay - now.Sub(g.last)
	}
	if sleep < 0 {
		sleep = 0
	}
	g.last = now.Add(sleep)
	g.mu.Unlock()

	if sleep > 0 {
		if err := sleepCtx(ctx, sleep); err != nil {
			<-g.sem
			return nil, err
		}
	}

	return func() {
		<-g.sem
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
