package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type counterIDs struct{ n int }

func (c *counterIDs) NewID() string {
	c.n++
	return fmt.Sprintf("gen-%d", c.n)
}

func buildWorkbook(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	return f
}

func TestParseProductsFromBytesWithHeader(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		{"ID", "Product Name", "Price", "Category", "Description", "Image URL"},
		{"sku-1", "Desk Lamp", "$24.50", "Home", "LED lamp", "https://img/lamp.png"},
		{"", "Notebook", "3", "Office", "", ""},
		{"", "", "", "", "", ""},
		{"", "Broken", "n/a", "Office", "", ""},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	p := NewExcelParser(&counterIDs{})
	products, err := p.ParseProductsFromBytes(context.Background(), buf.Bytes(), "catalog.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "sku-1", products[0].ID)
	assert.Equal(t, "Desk Lamp", products[0].Name)
	assert.Equal(t, 24.5, products[0].Price)
	assert.Equal(t, "home", products[0].Category)
	assert.Equal(t, "LED lamp", products[0].Description)
	assert.Equal(t, "https://img/lamp.png", products[0].ImageURL)

	assert.Equal(t, "gen-1", products[1].ID)
	assert.Equal(t, "office", products[1].Category)
}

func TestParseProductsWithoutHeader(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		{"Toaster", 29.99, "home"},
		{"Sapiens", 15.75, "books"},
	})
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))

	products, err := NewExcelParser(&counterIDs{}).ParseProducts(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Toaster", products[0].Name)
	assert.Equal(t, 29.99, products[0].Price)
	assert.Equal(t, "books", products[1].Category)
}

func TestParseProductsRequiresNameAndPrice(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		{"Colour", "Weight"},
		{"red", "heavy"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = NewExcelParser(&counterIDs{}).ParseProductsFromBytes(context.Background(), buf.Bytes(), "bad.xlsx")
	assert.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	v, err := parsePrice(" $1,299.99 ")
	require.NoError(t, err)
	assert.Equal(t, 1299.99, v)

	_, err = parsePrice("")
	assert.Error(t, err)
}
