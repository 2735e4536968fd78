package idgen

import (
	"github.com/google/uuid"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

type uuidGenerator struct{}

// NewUUIDGenerator v4 UUID generator
func NewUUIDGenerator() repository.IDGenerator {
	return uuidGenerator{}
}

// NewID yangi identifikator
func (uuidGenerator) NewID() string {
	return uuid.New().String()
}
