package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

var (
	// ErrMissingWorker indicates checkout was attempted without a worker.
	ErrMissingWorker = errors.New("no worker selected")
	// ErrEmptyCart indicates checkout was attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrLineNotFound indicates the cart has no line for the item.
	ErrLineNotFound = errors.New("item is not in the cart")
)

// InsufficientStockError rejects a quantity above what is on hand.
type InsufficientStockError struct {
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, only %d available", e.ItemName, e.Requested, e.Available)
}

// Line is one item in a cart. Price is fixed when the item is first added.
type Line struct {
	ItemID   int             `json:"itemId"`
	ItemName string          `json:"itemName"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Total is price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart collects lines before checkout.
type Cart struct {
	Lines []Line `json:"lines"`
}

// AddLine adds one unit of item, opening a line at the item's current sell
// price when the item is not in the cart yet.
func (c *Cart) AddLine(item models.StockItem) error {
	for i := range c.Lines {
		if c.Lines[i].ItemID != item.ID {
			continue
		}
		next := c.Lines[i].Quantity + 1
		if next > item.Quantity {
			return &InsufficientStockError{ItemName: item.Name, Requested: next, Available: item.Quantity}
		}
		c.Lines[i].Quantity = next
		return nil
	}

	if item.Quantity < 1 {
		return &InsufficientStockError{ItemName: item.Name, Requested: 1, Available: item.Quantity}
	}
	c.Lines = append(c.Lines, Line{ItemID: item.ID, ItemName: item.Name, Price: item.SellPrice, Quantity: 1})
	return nil
}

// SetLineQuantity changes the quantity of a line. A quantity of zero or less
// removes the line.
func (c *Cart) SetLineQuantity(itemID, quantity int, stock []models.StockItem) error {
	idx := c.index(itemID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		c.RemoveLine(itemID)
		return nil
	}

	item, ok := models.FindStockItem(stock, itemID)
	if !ok {
		return &InsufficientStockError{ItemName: c.Lines[idx].ItemName, Requested: quantity}
	}
	if quantity > item.Quantity {
		return &InsufficientStockError{ItemName: item.Name, Requested: quantity, Available: item.Quantity}
	}

	c.Lines[idx].Quantity = quantity
	return nil
}

// RemoveLine drops the line for itemID if present.
func (c *Cart) RemoveLine(itemID int) {
	idx := c.index(itemID)
	if idx < 0 {
		return
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

// Total sums every line total.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Clone returns a deep copy.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

func (c Cart) index(itemID int) int {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}
