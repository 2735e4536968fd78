package entity

import "time"

// Product katalogdagi mahsulot (faqat o'qish uchun)
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

// ProductCatalog kategoriyalar bo'yicha guruhlangan katalog
type ProductCatalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string // "seed" yoki xlsx fayl nomi
}
