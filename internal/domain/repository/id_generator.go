package repository

// IDGenerator mahsulot va buyurtma identifikatorlari uchun
type IDGenerator interface {
	NewID() string
}
