package models

import (
	"math"

	"github.com/shopspring/decimal"
)

const EmptyCartPlaceholder = "Your cart is empty"

// Cart is the owned cart state. It has no knowledge of storage; callers load
// it, apply operations and persist Items back.
type Cart struct {
	Items []CartItem
}

func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	return Cart{Items: items}
}

func (c *Cart) indexOf(productId int) int {
	for i := range c.Items {
		if c.Items[i].Id == productId {
			return i
		}
	}
	return -1
}

func (c *Cart) Contains(productId int) bool {
	return c.indexOf(productId) >= 0
}

func (c *Cart) Quantity(productId int) int {
	if i := c.indexOf(productId); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

func (c *Cart) Add(product Product) {
	if i := c.indexOf(product.Id); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{Product: product, Quantity: 1})
}

// Remove drops every entry with the given id and reports whether any existed.
func (c *Cart) Remove(productId int) bool {
	kept := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Id != productId {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(c.Items)
	c.Items = kept
	return removed
}

// UpdateQuantity returns false when the item is not in the cart.
func (c *Cart) UpdateQuantity(productId int, delta int) bool {
	i := c.indexOf(productId)
	if i < 0 {
		return false
	}

	c.Items[i].Quantity = AddQuantity(c.Items[i].Quantity, delta)
	if c.Items[i].Quantity <= 0 {
		c.Remove(productId)
	}
	return true
}

// AddQuantity adds delta to quantity, saturating at the int bounds.
func AddQuantity(quantity, delta int) int {
	switch {
	case delta > 0 && quantity > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && quantity < math.MinInt-delta:
		return math.MinInt
	}
	return quantity + delta
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c Cart) Total() Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return NewMoney(total)
}

func (c Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, OrderItem{
			Id:       item.Id,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Emoji:    item.Emoji,
		})
	}
	return items
}

func (c Cart) View() CartView {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)

	view := CartView{
		Items:            items,
		Count:            c.Count(),
		Total:            c.Total().StringFixed(2),
		Empty:            c.IsEmpty(),
		CheckoutDisabled: c.IsEmpty(),
	}
	if view.Empty {
		view.Placeholder = EmptyCartPlaceholder
	}
	return view
}
