package entity

import (
	"fmt"
	"math"
	"time"
)

// MaxQuantity bitta qatordagi miqdorning yuqori chegarasi
const MaxQuantity = math.MaxInt32

// CartItem savatdagi mahsulot nusxasi. Narx qo'shilgan paytda muzlatiladi.
type CartItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Subtotal bitta qator summasi
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart foydalanuvchi savati
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// NewCart bo'sh savat
func NewCart() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty savat bo'shligini tekshirish
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem mahsulotni qo'shish. Mavjud bo'lsa miqdor qo'shiladi.
func (c *Cart) AddItem(product Product, qty int) (CartItem, error) {
	if qty < 1 {
		return CartItem{}, fmt.Errorf("quantity must be at least 1, got %d: %w", qty, ErrInvalidArgument)
	}

	if qty > MaxQuantity {
		return CartItem{}, fmt.Errorf("quantity %d exceeds %d: %w", qty, MaxQuantity, ErrInvalidArgument)
	}

	idx := c.indexOf(product.ID)
	if idx >= 0 {
		if c.Items[idx].Quantity > MaxQuantity-qty {
			return CartItem{}, fmt.Errorf("quantity of %s would exceed %d: %w", product.ID, MaxQuantity, ErrInvalidArgument)
		}
		c.Items[idx].Quantity += qty
	} else {
		c.Items = append(c.Items, CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
			ImageURL:  product.ImageURL,
			Quantity:  qty,
		})
		idx = len(c.Items) - 1
	}

	c.recalculate()
	return c.Items[idx], nil
}

// UpdateQuantity miqdorni delta ga o'zgartirish. Natija 1 dan kichik bo'lsa mahsulot o'chiriladi.
func (c *Cart) UpdateQuantity(productID string, delta int) (item CartItem, removed bool, err error) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return CartItem{}, false, fmt.Errorf("%s: %w", productID, ErrCartItemNotFound)
	}

	if delta > MaxQuantity || delta < -MaxQuantity {
		return CartItem{}, false, fmt.Errorf("quantity change %d is out of range: %w", delta, ErrInvalidArgument)
	}

	newQty := c.Items[idx].Quantity + delta
	if newQty > MaxQuantity {
		return CartItem{}, false, fmt.Errorf("quantity of %s would exceed %d: %w", productID, MaxQuantity, ErrInvalidArgument)
	}
	if newQty < 1 {
		item = c.Items[idx]
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		c.recalculate()
		return item, true, nil
	}

	c.Items[idx].Quantity = newQty
	c.recalculate()
	return c.Items[idx], false, nil
}

// RemoveItem mahsulotni savatdan o'chirish
func (c *Cart) RemoveItem(productID string) (CartItem, error) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return CartItem{}, fmt.Errorf("%s: %w", productID, ErrCartItemNotFound)
	}

	item := c.Items[idx]
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.recalculate()
	return item, nil
}

// Snapshot savatning mustaqil nusxasi
func (c *Cart) Snapshot() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, Total: c.Total}
}

// Checkout buyurtma yaratib savatni tozalash. Bo'sh savat uchun false.
func (c *Cart) Checkout(orderID string, now time.Time) (*Order, bool) {
	if c.IsEmpty() {
		return nil, false
	}

	snap := c.Snapshot()
	order := &Order{
		ID:    orderID,
		Items: snap.Items,
		Total: snap.Total,
		Date:  now,
	}

	*c = NewCart()
	return order, true
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// recalculate jami summani har doim to'liq qayta hisoblaydi
func (c *Cart) recalculate() {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	c.Total = total
}
