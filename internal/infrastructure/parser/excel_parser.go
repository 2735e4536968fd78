package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

type excelParser struct {
	ids repository.IDGenerator
}

// NewExcelParser yangi Excel parser yaratish. ID ustuni bo'lmasa ids dan olinadi.
func NewExcelParser(ids repository.IDGenerator) repository.ExcelParser {
	return &excelParser{ids: ids}
}

// ParseProducts Excel fayldan mahsulotlarni o'qish
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// ParseProductsFromBytes byte array dan parse qilish
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes (%s): %w", filename, err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseExcelFile birinchi sheet ni parse qilish
func (e *excelParser) parseExcelFile(f *excelize.File) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	// 2-ustun raqam bo'lsa header yo'q
	startRow := 1
	var columns map[string]int
	if len(rows[0]) > 1 {
		if _, err := parsePrice(rows[0][1]); err == nil {
			startRow = 0
		}
	}
	if startRow == 0 {
		columns = map[string]int{"name": 0, "price": 1, "category": 2, "description": 3, "image": 4}
	} else {
		columns = mapColumns(rows[0])
	}
	log.Debug().Interface("columns", columns).Int("rows", len(rows)).Msg("catalog sheet mapped")

	nameCol, okName := columns["name"]
	priceCol, okPrice := columns["price"]
	if !okName || !okPrice {
		return nil, fmt.Errorf("catalog sheet must have name and price columns")
	}

	var products []entity.Product
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		name := cell(row, nameCol)
		price, err := parsePrice(cell(row, priceCol))
		if name == "" || err != nil || price < 0 {
			log.Warn().Int("row", i+1).Str("name", name).Msg("skipping catalog row without valid name/price")
			continue
		}

		product := entity.Product{
			ID:    cell(row, lookup(columns, "id")),
			Name:  name,
			Price: price,
		}
		if product.ID == "" {
			product.ID = e.ids.NewID()
		}
		product.Category = strings.ToLower(cell(row, lookup(columns, "category")))
		if product.Category == "" {
			product.Category = "other"
		}
		product.Description = cell(row, lookup(columns, "description"))
		product.ImageURL = cell(row, lookup(columns, "image"))

		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no products found in excel file")
	}
	return products, nil
}

// mapColumns header dan ustun indekslarini aniqlash
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case name == "id" || contains(name, "product_id", "sku"):
			columns["id"] = i
		case contains(name, "image", "img", "photo", "picture"):
			columns["image"] = i
		case contains(name, "description", "details", "info", "tavsif"):
			columns["description"] = i
		case contains(name, "category", "type", "kategoriya"):
			columns["category"] = i
		case contains(name, "price", "cost", "narx", "$"):
			columns["price"] = i
		case contains(name, "name", "product", "title", "nom"):
			columns["name"] = i
		}
	}
	return columns
}

func lookup(columns map[string]int, key string) int {
	if idx, ok := columns[key]; ok {
		return idx
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func contains(str string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(str, kw) {
			return true
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parsePrice "$1,299.99" kabi qiymatlarni o'qish
func parsePrice(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	for _, r := range []string{",", " ", "$", "€", "£", "usd", "eur"} {
		s = strings.ReplaceAll(s, r, "")
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return price, nil
}
