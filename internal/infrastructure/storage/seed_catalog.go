package storage

import (
	"time"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

type seedProduct struct {
	name, description, category, image string
	price                              float64
}

var seedProducts = []seedProduct{
	{"Wireless Headphones", "Noise-cancelling Bluetooth headphones", "electronics", "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=500&q=80", 99.99},
	{"Smartphone", "Latest model with 128GB storage", "electronics", "https://images.unsplash.com/photo-1592899677977-9c10ca588bbd?auto=format&fit=crop&w=500&q=80", 699.99},
	{"Laptop", "15-inch, 16GB RAM, 512GB SSD", "electronics", "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&w=500&q=80", 999.99},
	{"Smartwatch", "Fitness tracker and notifications", "electronics", "https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&w=500&q=80", 199.99},
	{"Tablet", "10-inch display, 64GB storage", "electronics", "https://images.unsplash.com/photo-1546054454-aa26e2b734c7?auto=format&fit=crop&w=500&q=80", 349.99},

	{"T-Shirt", "Cotton crew neck t-shirt", "clothing", "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=500&q=80", 19.99},
	{"Jeans", "Slim fit denim jeans", "clothing", "https://images.unsplash.com/photo-1542272604-787c3835535d?auto=format&fit=crop&w=500&q=80", 49.99},
	{"Jacket", "Waterproof windbreaker", "clothing", "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?auto=format&fit=crop&w=500&q=80", 89.99},
	{"Sweater", "Wool blend crew neck sweater", "clothing", "https://images.unsplash.com/photo-1715176531842-7ffda4acdfa9?w=900&auto=format&fit=crop&q=60", 59.99},
	{"Dress", "Summer casual dress", "clothing", "https://images.unsplash.com/photo-1618932260643-eee4a2f652a6?w=900&auto=format&fit=crop&q=60", 79.99},

	{"Coffee Maker", "Programmable 12-cup coffee maker", "home", "https://images.unsplash.com/photo-1608354580875-30bd4168b351?q=80&w=900&auto=format&fit=crop", 59.99},
	{"Blender", "High-speed countertop blender", "home", "https://images.unsplash.com/photo-1577495917765-9497a0de7caa?w=900&auto=format&fit=crop&q=60", 39.99},
	{"Air Fryer", "Digital air fryer with multiple presets", "home", "https://media.istockphoto.com/id/2169555145/photo/a-woman-is-using-an-air-fryer-to-prepare-food-in-her-kitchen-focusing-on-a-healthier-cooking.webp", 79.99},
	{"Toaster", "4-slice stainless steel toaster", "home", "https://plus.unsplash.com/premium_photo-1718559007766-3ff6232a7456?w=900&auto=format&fit=crop&q=60", 29.99},
	{"Vacuum Cleaner", "Bagless upright vacuum cleaner", "home", "https://media.istockphoto.com/id/927031764/photo/vacuum-cleaner-isolated-on-white-background.webp", 129.99},

	{"The Great Gatsby", "A classic novel by F. Scott Fitzgerald", "books", "https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=500&q=80", 10.99},
	{"To Kill a Mockingbird", "A powerful story by Harper Lee", "books", "https://images.unsplash.com/photo-1589998059171-988d887df646?auto=format&fit=crop&w=500&q=80", 12.50},
	{"Sapiens", "A brief history of humankind by Yuval Noah Harari", "books", "https://images.unsplash.com/photo-1541963463532-d68292c34b19?auto=format&fit=crop&w=500&q=80", 15.75},
}

// SeedCatalog o'rnatilgan katalog. ID lar har ishga tushganda yangidan yaratiladi.
func SeedCatalog(ids repository.IDGenerator) entity.ProductCatalog {
	products := make([]entity.Product, 0, len(seedProducts))
	for _, p := range seedProducts {
		products = append(products, entity.Product{
			ID:          ids.NewID(),
			Name:        p.name,
			Price:       p.price,
			Description: p.description,
			Category:    p.category,
			ImageURL:    p.image,
		})
	}

	return entity.ProductCatalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    "seed",
	}
}
