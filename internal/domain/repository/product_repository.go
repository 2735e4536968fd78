package repository

import (
	"context"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
)

// CatalogRepository katalog bilan ishlash uchun interface (faqat o'qish, yuklashdan tashqari)
type CatalogRepository interface {
	// Categories kategoriyalar (katalogdagi tartibda)
	Categories(ctx context.Context) ([]string, error)

	// GetByID barcha kategoriyalardan ID bo'yicha qidirish
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// GetByCategory kategoriya bo'yicha mahsulotlarni olish. Kategoriya yo'q bo'lsa false.
	GetByCategory(ctx context.Context, category string) ([]entity.Product, bool, error)

	// GetAll barcha mahsulotlar (tekis ro'yxat)
	GetAll(ctx context.Context) ([]entity.Product, error)

	// UpdateCatalog butun katalogni almashtirish
	UpdateCatalog(ctx context.Context, catalog entity.ProductCatalog) error

	// GetCatalog katalogni olish
	GetCatalog(ctx context.Context) (*entity.ProductCatalog, error)
}
