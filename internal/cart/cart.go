// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"encoding/json"
	"fmt"
	"math"
)

// LineItem is one cart entry. UnitPrice is the list price for a single unit,
// before any cart-level adjustments.
type LineItem struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unit-price"`
	Substituted bool    `json:"substituted"`
}

// Pricing holds the cart-level pricing parameters supplied by the API.
// DiscountRate and TaxRate are fractions (0.10 == 10%). SurgeMultiplier
// scales the discounted subtotal; 1.0 means no surge.
type Pricing struct {
	DiscountRate    float64 `json:"discount-rate"`
	SurgeMultiplier float64 `json:"surge-multiplier"`
	DeliveryFee     float64 `json:"delivery-fee"`
	TaxRate         float64 `json:"tax-rate"`
}

// Cart is the decoded cart document for a single order.
type Cart struct {
	OrderID string     `json:"order-id"`
	Items   []LineItem `json:"items"`
	Pricing Pricing    `json:"pricing"`
}

// Breakdown is the computed pricing breakdown for a cart. All amounts are
// rounded to cents.
type Breakdown struct {
	Subtotal float64
	Discount float64
	Surge    float64
	Delivery float64
	Tax      float64
	Total    float64
}

// Parse decodes a raw cart document.
func Parse(doc []byte) (*Cart, error) {
	var c Cart
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}
	return &c, nil
}

// LineTotal returns the extended price for a line item.
func (li LineItem) LineTotal() float64 {
	return round2(float64(li.Qty) * li.UnitPrice)
}

// Price computes the pricing breakdown for the cart. The discount applies to
// the item subtotal, surge scales the discounted subtotal, tax applies to the
// surged amount, and the delivery fee is added untaxed.
func (c *Cart) Price() Breakdown {
	var b Breakdown

	for _, li := range c.Items {
		b.Subtotal += li.LineTotal()
	}
	b.Subtotal = round2(b.Subtotal)

	b.Discount = round2(b.Subtotal * c.Pricing.DiscountRate)
	discounted := b.Subtotal - b.Discount

	surge := c.Pricing.SurgeMultiplier
	if surge <= 0 {
		surge = 1
	}
	b.Surge = round2(discounted*surge - discounted)
	surged := discounted + b.Surge

	b.Tax = round2(surged * c.Pricing.TaxRate)
	b.Delivery = round2(c.Pricing.DeliveryFee)

	b.Total = round2(surged + b.Tax + b.Delivery)

	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
