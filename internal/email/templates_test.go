package email

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildOrderConfirmationBody(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p-1", Name: "Mechanical Keyboard", Quantity: 2, Price: decimal.NewFromFloat(89.99)},
		{ProductID: "p-2", Name: "", Quantity: 1, Price: decimal.NewFromFloat(12.50)},
	}
	body := BuildOrderConfirmationBody("order-abc-123", decimal.NewFromFloat(192.48), items)

	assert.Contains(t, body, "order-abc-123")
	assert.Contains(t, body, "Mechanical Keyboard")
	// items with no name fall back to the product ID
	assert.Contains(t, body, "p-2")
	assert.Contains(t, body, "$89.99")
	// line total for qty 2
	assert.Contains(t, body, "$179.98")
	assert.Contains(t, body, "$192.48")
}

func TestBuildPasswordResetBody(t *testing.T) {
	body := BuildPasswordResetBody("https://shop.example.com/reset-password/tok123")
	assert.Contains(t, body, `href="https://shop.example.com/reset-password/tok123"`)
	assert.Contains(t, body, "expires in 15 minutes")
}
