package entity

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToolCall(t *testing.T) {
	cases := []struct {
		name string
		inv  ToolInvocation
		want ToolCall
	}{
		{"show", ToolInvocation{Name: "show_products", Arguments: map[string]any{"category": "books"}}, ShowProducts{Category: "books"}},
		{"add", ToolInvocation{Name: "add_to_cart", Arguments: map[string]any{"product_id": "p1", "quantity": float64(2)}}, AddToCart{ProductID: "p1", Quantity: 2}},
		{"update", ToolInvocation{Name: "update_cart", Arguments: map[string]any{"product_id": "p1", "quantity_change": float64(-3)}}, UpdateCart{ProductID: "p1", QuantityChange: -3}},
		{"update json number", ToolInvocation{Name: "update_cart", Arguments: map[string]any{"product_id": "p1", "quantity_change": json.Number("4")}}, UpdateCart{ProductID: "p1", QuantityChange: 4}},
		{"remove", ToolInvocation{Name: "remove_from_cart", Arguments: map[string]any{"product_id": "p1"}}, RemoveFromCart{ProductID: "p1"}},
		{"view", ToolInvocation{Name: "view_cart"}, ViewCart{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeToolCall(tc.inv)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, ToolName(tc.inv.Name), got.Tool())
		})
	}
}

func TestDecodeToolCallUnknownName(t *testing.T) {
	_, err := DecodeToolCall(ToolInvocation{Name: "checkout_now"})
	assert.True(t, errors.Is(err, ErrUnknownTool))
}

func TestDecodeToolCallBadArguments(t *testing.T) {
	bad := []ToolInvocation{
		{Name: "show_products"},
		{Name: "show_products", Arguments: map[string]any{"category": 3}},
		{Name: "add_to_cart", Arguments: map[string]any{"product_id": "p1"}},
		{Name: "add_to_cart", Arguments: map[string]any{"product_id": "p1", "quantity": 1.5}},
		{Name: "add_to_cart", Arguments: map[string]any{"product_id": " ", "quantity": float64(1)}},
		{Name: "update_cart", Arguments: map[string]any{"product_id": "p1", "quantity_change": "two"}},
		{Name: "remove_from_cart", Arguments: map[string]any{}},
		{Name: "update_cart", Arguments: map[string]any{"product_id": "p1", "quantity_change": 1e19}},
		{Name: "update_cart", Arguments: map[string]any{"product_id": "p1", "quantity_change": -1e19}},
		{Name: "add_to_cart", Arguments: map[string]any{"product_id": "p1", "quantity": 9e18}},
		{Name: "add_to_cart", Arguments: map[string]any{"product_id": "p1", "quantity": json.Number("9000000000")}},
		{Name: "add_to_cart", Arguments: map[string]any{"product_id": "p1", "quantity": int64(1) << 40}},
	}
	for _, inv := range bad {
		_, err := DecodeToolCall(inv)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%+v", inv)
	}
}

func TestDecodeToolCallAcceptsBoundary(t *testing.T) {
	call, err := DecodeToolCall(ToolInvocation{Name: "update_cart", Arguments: map[string]any{"product_id": "p1", "quantity_change": float64(-MaxQuantity)}})
	require.NoError(t, err)
	assert.Equal(t, UpdateCart{ProductID: "p1", QuantityChange: -MaxQuantity}, call)
}

func TestShopToolsDeclaresCatalogCategories(t *testing.T) {
	cats := []string{"electronics", "books"}
	tools := ShopTools(cats)
	require.Len(t, tools, 5)

	names := []ToolName{}
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []ToolName{ToolShowProducts, ToolAddToCart, ToolUpdateCart, ToolRemoveFromCart, ToolViewCart}, names)
	assert.Equal(t, cats, tools[0].Parameters.Properties["category"].Enum)
	require.NotNil(t, tools[1].Parameters.Properties["quantity"].Minimum)
	assert.Equal(t, 1, *tools[1].Parameters.Properties["quantity"].Minimum)

	cats[0] = "mutated"
	assert.Equal(t, "electronics", tools[0].Parameters.Properties["category"].Enum[0])
}

func TestTranscriptTrimKeepsPrimerAndStartsAtUser(t *testing.T) {
	now := time.Now()
	s := NewSession("u", "primer", now)
	s.Append(Turn{Role: RoleUser, Content: "1"})
	s.Append(Turn{Role: RoleAssistant, ToolCall: &ToolInvocation{Name: "view_cart"}})
	s.Append(Turn{Role: RoleAssistant, Content: "empty"})
	s.Append(Turn{Role: RoleUser, Content: "2"})
	s.Append(Turn{Role: RoleAssistant, Content: "ok"})

	trimmed := s.Transcript.Trim(3)
	require.Len(t, trimmed, 3)
	assert.Equal(t, RoleSystem, trimmed[0].Role)
	assert.Equal(t, "2", trimmed[1].Content)
	assert.Equal(t, "ok", trimmed[2].Content)

	assert.Len(t, s.Transcript.Trim(0), 6)
	assert.Len(t, s.Transcript.Dialogue(), 5)
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := NewSession("u", "primer", time.Now())
	_, _ = s.Cart.AddItem(Product{ID: "a", Price: 1}, 1)
	s.Append(Turn{Role: RoleAssistant, ToolCall: &ToolInvocation{Name: "add_to_cart", Arguments: map[string]any{"product_id": "a"}}})

	cp := s.Clone()
	cp.Cart.Items[0].Quantity = 9
	cp.Transcript[1].ToolCall.Arguments["product_id"] = "b"

	assert.Equal(t, 1, s.Cart.Items[0].Quantity)
	assert.Equal(t, "a", s.Transcript[1].ToolCall.Arguments["product_id"])
}
