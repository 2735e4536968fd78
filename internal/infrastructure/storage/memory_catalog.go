package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

type memoryCatalogRepository struct {
	mu         sync.RWMutex
	categories []string                    // birinchi uchragan tartibda
	byCategory map[string][]entity.Product // key: kategoriya
	catalog    *entity.ProductCatalog
}

// NewMemoryCatalogRepository in-memory katalog yaratish
func NewMemoryCatalogRepository(catalog entity.ProductCatalog) repository.CatalogRepository {
	m := &memoryCatalogRepository{}
	m.load(catalog)
	return m
}

// Categories kategoriyalar ro'yxati
func (m *memoryCatalogRepository) Categories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

// GetByID hamma kategoriyalarni ko'rib chiqib mahsulotni topish
func (m *memoryCatalogRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, cat := range m.categories {
		for _, product := range m.byCategory[cat] {
			if product.ID == id {
				p := product
				return &p, nil
			}
		}
	}
	return nil, fmt.Errorf("%s: %w", id, entity.ErrProductNotFound)
}

// GetByCategory kategoriya bo'yicha mahsulotlarni olish
func (m *memoryCatalogRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products, ok := m.byCategory[normalizeCategory(category)]
	if !ok {
		return nil, false, nil
	}
	out := make([]entity.Product, len(products))
	copy(out, products)
	return out, true, nil
}

// GetAll barcha mahsulotlarni olish
func (m *memoryCatalogRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []entity.Product
	for _, cat := range m.categories {
		products = append(products, m.byCategory[cat]...)
	}
	return products, nil
}

// UpdateCatalog butun katalogni yangilash
func (m *memoryCatalogRepository) UpdateCatalog(ctx context.Context, catalog entity.ProductCatalog) error {
	if len(catalog.Products) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	m.load(catalog)
	return nil
}

// GetCatalog katalogni olish
func (m *memoryCatalogRepository) GetCatalog(ctx context.Context) (*entity.ProductCatalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, fmt.Errorf("catalog not found")
	}
	cp := *m.catalog
	return &cp, nil
}

func (m *memoryCatalogRepository) load(catalog entity.ProductCatalog) {
	categories := []string{}
	byCategory := make(map[string][]entity.Product)

	for _, product := range catalog.Products {
		cat := normalizeCategory(product.Category)
		if cat == "" {
			cat = "other"
		}
		product.Category = cat
		if _, seen := byCategory[cat]; !seen {
			categories = append(categories, cat)
		}
		byCategory[cat] = append(byCategory[cat], product)
	}

	if catalog.UpdatedAt.IsZero() {
		catalog.UpdatedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = categories
	m.byCategory = byCategory
	m.catalog = &catalog
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
