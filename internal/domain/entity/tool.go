package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ToolName generation servisi chaqira oladigan funksiyalar
type ToolName string

const (
	ToolShowProducts   ToolName = "show_products"
	ToolAddToCart      ToolName = "add_to_cart"
	ToolUpdateCart     ToolName = "update_cart"
	ToolRemoveFromCart ToolName = "remove_from_cart"
	ToolViewCart       ToolName = "view_cart"
)

// ToolInvocation javobdan olingan xom chaqiruv
type ToolInvocation struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"args,omitempty"`
}

// Clone argumentlar nusxasi bilan
func (t ToolInvocation) Clone() ToolInvocation {
	args := make(map[string]any, len(t.Arguments))
	for k, v := range t.Arguments {
		args[k] = v
	}
	return ToolInvocation{Name: t.Name, Arguments: args}
}

// ToolCall beshta tool varianti. Faqat shu paket ichida implement qilinadi.
type ToolCall interface {
	Tool() ToolName
	isToolCall()
}

// ShowProducts kategoriya bo'yicha mahsulotlarni ko'rsatish
type ShowProducts struct {
	Category string
}

// AddToCart mahsulotni savatga qo'shish
type AddToCart struct {
	ProductID string
	Quantity  int
}

// UpdateCart savatdagi miqdorni delta ga o'zgartirish
type UpdateCart struct {
	ProductID      string
	QuantityChange int
}

// RemoveFromCart mahsulotni savatdan olib tashlash
type RemoveFromCart struct {
	ProductID string
}

// ViewCart savatni ko'rish
type ViewCart struct{}

func (ShowProducts) Tool() ToolName   { return ToolShowProducts }
func (AddToCart) Tool() ToolName      { return ToolAddToCart }
func (UpdateCart) Tool() ToolName     { return ToolUpdateCart }
func (RemoveFromCart) Tool() ToolName { return ToolRemoveFromCart }
func (ViewCart) Tool() ToolName       { return ToolViewCart }

func (ShowProducts) isToolCall()   {}
func (AddToCart) isToolCall()      {}
func (UpdateCart) isToolCall()     {}
func (RemoveFromCart) isToolCall() {}
func (ViewCart) isToolCall()       {}

// DecodeToolCall xom chaqiruvni tipli variantga aylantirish
func DecodeToolCall(inv ToolInvocation) (ToolCall, error) {
	switch ToolName(inv.Name) {
	case ToolShowProducts:
		category, err := stringArg(inv.Arguments, "category")
		if err != nil {
			return nil, err
		}
		return ShowProducts{Category: category}, nil
	case ToolAddToCart:
		id, err := stringArg(inv.Arguments, "product_id")
		if err != nil {
			return nil, err
		}
		qty, err := intArg(inv.Arguments, "quantity")
		if err != nil {
			return nil, err
		}
		return AddToCart{ProductID: id, Quantity: qty}, nil
	case ToolUpdateCart:
		id, err := stringArg(inv.Arguments, "product_id")
		if err != nil {
			return nil, err
		}
		delta, err := intArg(inv.Arguments, "quantity_change")
		if err != nil {
			return nil, err
		}
		return UpdateCart{ProductID: id, QuantityChange: delta}, nil
	case ToolRemoveFromCart:
		id, err := stringArg(inv.Arguments, "product_id")
		if err != nil {
			return nil, err
		}
		return RemoveFromCart{ProductID: id}, nil
	case ToolViewCart:
		return ViewCart{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", inv.Name, ErrUnknownTool)
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing argument %q: %w", key, ErrInvalidArgument)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T: %w", key, raw, ErrInvalidArgument)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("argument %q is empty: %w", key, ErrInvalidArgument)
	}
	return s, nil
}

// intArg JSON raqamlari float64 bo'lib keladi
func intArg(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing argument %q: %w", key, ErrInvalidArgument)
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %q is not an integer: %w", key, ErrInvalidArgument)
		}
		f = float64(n)
	default:
		return 0, fmt.Errorf("argument %q must be a number, got %T: %w", key, raw, ErrInvalidArgument)
	}

	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("argument %q is not an integer: %w", key, ErrInvalidArgument)
	}
	if math.Abs(f) > MaxQuantity {
		return 0, fmt.Errorf("argument %q is out of range: %w", key, ErrInvalidArgument)
	}
	return int(f), nil
}

// ParamType tool parametri turi
type ParamType string

const (
	ParamObject  ParamType = "object"
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
)

// ParamSchema JSON-schema ning kerakli qismi
type ParamSchema struct {
	Type        ParamType
	Description string
	Enum        []string
	Minimum     *int
	Properties  map[string]*ParamSchema
	Required    []string
}

// ToolDeclaration generation servisiga e'lon qilinadigan funksiya
type ToolDeclaration struct {
	Name        ToolName
	Description string
	Parameters  *ParamSchema
}

// ShopTools beshta funksiya e'loni. show_products kategoriyasi katalogdan olinadi.
func ShopTools(categories []string) []ToolDeclaration {
	minQty := 1
	enum := make([]string, len(categories))
	copy(enum, categories)

	return []ToolDeclaration{
		{
			Name:        ToolShowProducts,
			Description: "Show products from a specific category",
			Parameters: &ParamSchema{
				Type: ParamObject,
				Properties: map[string]*ParamSchema{
					"category": {Type: ParamString, Enum: enum},
				},
				Required: []string{"category"},
			},
		},
		{
			Name:        ToolAddToCart,
			Description: "Add a product to the shopping cart",
			Parameters: &ParamSchema{
				Type: ParamObject,
				Properties: map[string]*ParamSchema{
					"product_id": {Type: ParamString},
					"quantity":   {Type: ParamInteger, Minimum: &minQty},
				},
				Required: []string{"product_id", "quantity"},
			},
		},
		{
			Name:        ToolUpdateCart,
			Description: "Update the quantity of a product in the shopping cart",
			Parameters: &ParamSchema{
				Type: ParamObject,
				Properties: map[string]*ParamSchema{
					"product_id":      {Type: ParamString},
					"quantity_change": {Type: ParamInteger},
				},
				Required: []string{"product_id", "quantity_change"},
			},
		},
		{
			Name:        ToolRemoveFromCart,
			Description: "Remove a product from the shopping cart",
			Parameters: &ParamSchema{
				Type: ParamObject,
				Properties: map[string]*ParamSchema{
					"product_id": {Type: ParamString},
				},
				Required: []string{"product_id"},
			},
		},
		{
			Name:        ToolViewCart,
			Description: "View the current contents of the shopping cart",
			Parameters: &ParamSchema{
				Type:       ParamObject,
				Properties: map[string]*ParamSchema{},
			},
		},
	}
}
