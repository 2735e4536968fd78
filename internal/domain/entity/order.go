package entity

import "time"

// Order checkout paytidagi savat nusxasi
type Order struct {
	ID    string     `json:"orderId"`
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
	Date  time.Time  `json:"date"`
}
