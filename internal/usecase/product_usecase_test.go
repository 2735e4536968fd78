package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
)

type stubParser struct {
	products []entity.Product
	err      error
	path     string
	data     []byte
}

func (s *stubParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	s.path = filePath
	return s.products, s.err
}

func (s *stubParser) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	s.data = data
	return s.products, s.err
}

func TestImportCatalogReplacesProducts(t *testing.T) {
	catalog := testCatalog()
	parser := &stubParser{products: []entity.Product{
		{ID: "x1", Name: "Drone", Price: 300, Category: "Toys"},
		{ID: "x2", Name: "Kite", Price: 12, Category: "toys"},
	}}
	uc := NewProductUseCase(catalog, parser)
	ctx := context.Background()

	n, err := uc.ImportCatalog(ctx, "/tmp/data/catalog.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "/tmp/data/catalog.xlsx", parser.path)

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"toys"}, cats)

	products, ok, err := uc.GetByCategory(ctx, "toys")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, products, 2)

	stored, err := catalog.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "catalog.xlsx", stored.Source)
}

func TestImportCatalogKeepsOldCatalogOnFailure(t *testing.T) {
	catalog := testCatalog()
	ctx := context.Background()

	uc := NewProductUseCase(catalog, &stubParser{err: errors.New("bad file")})
	_, err := uc.ImportCatalog(ctx, "broken.xlsx")
	assert.Error(t, err)

	uc = NewProductUseCase(catalog, &stubParser{products: nil})
	_, err = uc.ImportCatalog(ctx, "empty.xlsx")
	assert.Error(t, err)

	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImportCatalogBytes(t *testing.T) {
	catalog := testCatalog()
	parser := &stubParser{products: []entity.Product{{ID: "x1", Name: "Drone", Price: 300, Category: "toys"}}}
	uc := NewProductUseCase(catalog, parser)
	ctx := context.Background()

	n, err := uc.ImportCatalogBytes(ctx, []byte("xlsx"), "upload.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte("xlsx"), parser.data)

	stored, err := catalog.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "upload.xlsx", stored.Source)
}
