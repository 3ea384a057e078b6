package order

import (
	"encoding/json"
	"testing"

	"localwear-be/internal/product"
	"localwear-be/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponse(t *testing.T) {
	assert.Nil(t, ToResponse(nil))

	o := &Order{
		ID:              1,
		User:            &user.User{ID: 3, Name: "Jane", Email: "jane@example.com"},
		ShippingAddress: "1 Main St",
		Status:          StatusPlaced,
		TotalPrice:      decimal.RequireFromString("139.97"),
		Items: []*OrderItem{
			{ID: 1, ProductID: 1, ProductName: "Classic T-Shirt", Product: &product.Product{ID: 1, Name: "Classic T-Shirt"}, Size: "M", Quantity: 2, Price: decimal.RequireFromString("29.99")},
			{ID: 2, ProductID: 9, ProductName: "Gone", Size: "L", Quantity: 1, Price: decimal.RequireFromString("10")},
		},
	}

	resp := ToResponse(o)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, uint(3), resp.User.ID)
	assert.NotNil(t, resp.Items[0].Product)
	assert.Nil(t, resp.Items[1].Product)
	assert.Equal(t, "Gone", resp.Items[1].ProductName)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "139.97", decoded["totalPrice"])
	assert.Equal(t, "PLACED", decoded["status"])
	assert.Len(t, decoded["items"], 2)
}
