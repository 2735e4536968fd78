package repository

import (
	"context"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
)

// AIRepository generation servisi bilan ishlash uchun interface
type AIRepository interface {
	// Generate transcript va tool e'lonlari bilan javob yaratish.
	// Xatolar qaytarilmaydi: ular entity.GenerationFailure ga aylantiriladi.
	Generate(ctx context.Context, transcript entity.Transcript, tools []entity.ToolDeclaration) entity.GenerationResult
}
