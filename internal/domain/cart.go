package domain

import "github.com/shopspring/decimal"

// CartLine pairs a product with a quantity. Quantity is always >= 1.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal is price * quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product id, in insertion order.
type Cart struct {
	Lines []CartLine
}

// Add increments the line for p or appends a new line with quantity 1.
// It returns the resulting quantity.
func (c *Cart) Add(p Product) int {
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return c.Lines[i].Quantity
	}
	c.Lines = append(c.Lines, CartLine{Product: p.Clone(), Quantity: 1})
	return 1
}

// Remove drops the line for id. Reports whether a line was removed.
func (c *Cart) Remove(id ProductID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// UpdateQuantity sets the line quantity to max(1, current+delta).
// Missing ids are a no-op.
func (c *Cart) UpdateQuantity(id ProductID, delta int) (int, bool) {
	i := c.index(id)
	if i < 0 {
		return 0, false
	}
	q := c.Lines[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.Lines[i].Quantity = q
	return q, true
}

// Line returns the line for id.
func (c *Cart) Line(id ProductID) (CartLine, bool) {
	i := c.index(id)
	if i < 0 {
		return CartLine{}, false
	}
	return c.Lines[i], true
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount sums quantities across lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return Cart{Lines: lines}
}

func (c *Cart) index(id ProductID) int {
	for i, l := range c.Lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}
