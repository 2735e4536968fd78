package telegram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/usecase"
)

// Telegram xabarida ko'rsatiladigan mahsulotlar soni
const maxListedProducts = 20

// FormatChatResponse javobni bitta matnli xabarga aylantirish
func FormatChatResponse(resp *usecase.ChatResponse) string {
	if resp.Degraded {
		return resp.Error
	}

	var b strings.Builder
	b.WriteString(resp.Reply)

	if len(resp.Products) > 0 {
		b.WriteString("\n")
		for i, p := range resp.Products {
			if i == maxListedProducts {
				fmt.Fprintf(&b, "\n...and %d more", len(resp.Products)-maxListedProducts)
				break
			}
			fmt.Fprintf(&b, "\n%s - $%.2f (id: %s)", p.Name, p.Price, p.ID)
		}
	}

	if resp.Cart != nil && resp.Action != usecase.ActionViewCart && !resp.Cart.IsEmpty() {
		fmt.Fprintf(&b, "\n\nCart total: $%.2f", resp.Cart.Total)
	}
	return b.String()
}

// FormatCheckout checkout natijasi
func FormatCheckout(result *usecase.CheckoutResult) string {
	if !result.Success || result.Order == nil {
		return result.Message
	}

	lines := []string{result.Message, "", "Order: " + result.Order.ID}
	for _, item := range result.Order.Items {
		lines = append(lines, fmt.Sprintf("%s x%d - $%.2f", item.Name, item.Quantity, item.Subtotal()))
	}
	lines = append(lines, fmt.Sprintf("Total: $%.2f", result.Order.Total))
	return strings.Join(lines, "\n")
}

// ErrorMessage foydalanuvchiga ko'rsatiladigan xato matni
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrCartItemNotFound):
		return "That product is not in your cart."
	case errors.Is(err, entity.ErrProductNotFound):
		return "Sorry, I couldn't find that product."
	case errors.Is(err, entity.ErrInvalidArgument):
		return "Sorry, I didn't understand that request. Could you rephrase it?"
	case errors.Is(err, entity.ErrUnknownTool), errors.Is(err, entity.ErrMalformedUpstreamResponse):
		return "Sorry, I can't do that right now."
	default:
		return "Something went wrong. Please try again."
	}
}
