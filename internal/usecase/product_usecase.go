package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

// ProductUseCase katalog bilan bog'liq business logic
type ProductUseCase interface {
	// Categories kategoriyalar ro'yxati
	Categories(ctx context.Context) ([]string, error)

	// GetByCategory kategoriya bo'yicha mahsulotlarni olish
	GetByCategory(ctx context.Context, category string) ([]entity.Product, bool, error)

	// GetAll barcha mahsulotlarni olish
	GetAll(ctx context.Context) ([]entity.Product, error)

	// ImportCatalog Excel fayldan katalogni yuklash
	ImportCatalog(ctx context.Context, filePath string) (int, error)

	// ImportCatalogBytes yuklangan Excel fayl (masalan Telegram document) dan katalogni yangilash
	ImportCatalogBytes(ctx context.Context, data []byte, filename string) (int, error)
}

type productUseCase struct {
	catalog     repository.CatalogRepository
	excelParser repository.ExcelParser
}

// NewProductUseCase yangi ProductUseCase yaratish
func NewProductUseCase(catalog repository.CatalogRepository, excelParser repository.ExcelParser) ProductUseCase {
	return &productUseCase{
		catalog:     catalog,
		excelParser: excelParser,
	}
}

// Categories kategoriyalar ro'yxati
func (u *productUseCase) Categories(ctx context.Context) ([]string, error) {
	return u.catalog.Categories(ctx)
}

// GetByCategory kategoriya bo'yicha mahsulotlarni olish
func (u *productUseCase) GetByCategory(ctx context.Context, category string) ([]entity.Product, bool, error) {
	return u.catalog.GetByCategory(ctx, category)
}

// GetAll barcha mahsulotlarni olish
func (u *productUseCase) GetAll(ctx context.Context) ([]entity.Product, error) {
	return u.catalog.GetAll(ctx)
}

// ImportCatalog Excel fayldan katalogni yuklash
func (u *productUseCase) ImportCatalog(ctx context.Context, filePath string) (int, error) {
	products, err := u.excelParser.ParseProducts(ctx, filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}

	return u.replace(ctx, products, filepath.Base(filePath))
}

// ImportCatalogBytes byte array dan katalogni yuklash
func (u *productUseCase) ImportCatalogBytes(ctx context.Context, data []byte, filename string) (int, error) {
	products, err := u.excelParser.ParseProductsFromBytes(ctx, data, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}

	return u.replace(ctx, products, filename)
}

func (u *productUseCase) replace(ctx context.Context, products []entity.Product, source string) (int, error) {
	catalog := entity.ProductCatalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    source,
	}
	if err := u.catalog.UpdateCatalog(ctx, catalog); err != nil {
		return 0, fmt.Errorf("failed to update catalog: %w", err)
	}

	log.Info().Int("products", len(products)).Str("source", source).Msg("catalog imported")
	return len(products), nil
}
