package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

// Action javob turi (klient shunga qarab render qiladi)
type Action string

const (
	ActionShowProducts Action = "show_products"
	ActionAddToCart    Action = "add_to_cart"
	ActionUpdateCart   Action = "update_cart"
	ActionViewCart     Action = "view_cart"
	ActionTextResponse Action = "text_response"
)

// Outcome tool bajarilgandan keyingi natija
type Outcome struct {
	Reply    string
	Products []entity.Product
	Cart     *entity.Cart
	Action   Action

	// Summary transcriptga yoziladigan matn. Bo'sh bo'lsa Reply ishlatiladi.
	Summary string
}

// TranscriptText transcript uchun matn
func (o Outcome) TranscriptText() string {
	if o.Summary != "" {
		return o.Summary
	}
	return o.Reply
}

// ToolDispatcher tipli tool chaqiruvini savat yoki katalog amaliga aylantiradi
type ToolDispatcher struct {
	catalog repository.CatalogRepository
}

// NewToolDispatcher yangi ToolDispatcher yaratish
func NewToolDispatcher(catalog repository.CatalogRepository) *ToolDispatcher {
	return &ToolDispatcher{catalog: catalog}
}

// Dispatch chaqiruvni bajarish. cart faqat shu sessiyaning savati.
func (d *ToolDispatcher) Dispatch(ctx context.Context, cart *entity.Cart, call entity.ToolCall) (Outcome, error) {
	switch c := call.(type) {
	case entity.ShowProducts:
		return d.showProducts(ctx, c)
	case entity.AddToCart:
		return d.addToCart(ctx, cart, c)
	case entity.UpdateCart:
		return d.updateCart(cart, c)
	case entity.RemoveFromCart:
		return d.removeFromCart(cart, c)
	case entity.ViewCart:
		return viewCart(cart), nil
	default:
		return Outcome{}, fmt.Errorf("%T: %w", call, entity.ErrUnknownTool)
	}
}

func (d *ToolDispatcher) showProducts(ctx context.Context, c entity.ShowProducts) (Outcome, error) {
	category := strings.ToLower(strings.TrimSpace(c.Category))
	products, ok, err := d.catalog.GetByCategory(ctx, category)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load category %q: %w", category, err)
	}

	if !ok {
		categories, err := d.catalog.Categories(ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to list categories: %w", err)
		}
		return Outcome{
			Reply:    fmt.Sprintf("Invalid category. Available: %s", strings.Join(categories, ", ")),
			Products: []entity.Product{},
			Action:   ActionShowProducts,
		}, nil
	}

	reply := fmt.Sprintf("Here are %s products:", category)
	return Outcome{
		Reply:    reply,
		Products: products,
		Action:   ActionShowProducts,
		Summary:  reply + "\n" + productLines(products),
	}, nil
}

func (d *ToolDispatcher) addToCart(ctx context.Context, cart *entity.Cart, c entity.AddToCart) (Outcome, error) {
	product, err := d.catalog.GetByID(ctx, c.ProductID)
	if err != nil {
		return Outcome{}, err
	}

	if _, err := cart.AddItem(*product, c.Quantity); err != nil {
		return Outcome{}, err
	}

	snap := cart.Snapshot()
	return Outcome{
		Reply:  fmt.Sprintf("Added %d %s(s) to cart", c.Quantity, product.Name),
		Cart:   &snap,
		Action: ActionAddToCart,
	}, nil
}

func (d *ToolDispatcher) updateCart(cart *entity.Cart, c entity.UpdateCart) (Outcome, error) {
	item, removed, err := cart.UpdateQuantity(c.ProductID, c.QuantityChange)
	if err != nil {
		return Outcome{}, err
	}

	reply := fmt.Sprintf("Updated quantity of %s to %d", item.Name, item.Quantity)
	if removed {
		reply = fmt.Sprintf("%s removed from cart", item.Name)
	}

	snap := cart.Snapshot()
	return Outcome{Reply: reply, Cart: &snap, Action: ActionUpdateCart}, nil
}

func (d *ToolDispatcher) removeFromCart(cart *entity.Cart, c entity.RemoveFromCart) (Outcome, error) {
	item, err := cart.RemoveItem(c.ProductID)
	if err != nil {
		return Outcome{}, err
	}

	snap := cart.Snapshot()
	return Outcome{
		Reply:  fmt.Sprintf("%s removed from cart", item.Name),
		Cart:   &snap,
		Action: ActionUpdateCart,
	}, nil
}

func viewCart(cart *entity.Cart) Outcome {
	snap := cart.Snapshot()
	if snap.IsEmpty() {
		return Outcome{Reply: "Your cart is currently empty.", Cart: &snap, Action: ActionViewCart}
	}

	reply := FormatCart(snap)
	var summary strings.Builder
	summary.WriteString(reply)
	summary.WriteString("\nItem ids:")
	for _, item := range snap.Items {
		fmt.Fprintf(&summary, "\n%s: %s", item.Name, item.ProductID)
	}
	return Outcome{Reply: reply, Cart: &snap, Action: ActionViewCart, Summary: summary.String()}
}

// FormatCart savatni matn ko'rinishida
func FormatCart(cart entity.Cart) string {
	lines := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, fmt.Sprintf("%s (Qty: %d) - $%.2f", item.Name, item.Quantity, item.Subtotal()))
	}
	return fmt.Sprintf("Your Cart:\n%s\nTotal: $%.2f", strings.Join(lines, "\n"), cart.Total)
}

// productLines model keyingi qadamlarda ID larni bilishi uchun
func productLines(products []entity.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s (id: %s) - $%.2f", p.Name, p.ID, p.Price))
	}
	return strings.Join(lines, "\n")
}
