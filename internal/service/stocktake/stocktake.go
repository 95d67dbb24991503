// Package stocktake captures physical counts against the recorded stock
// quantities and turns them into committed variance records.
package stocktake

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

var (
	ErrUnknownItem      = errors.New("item is not part of this stocktake")
	ErrNegativeCount    = errors.New("counted quantity cannot be negative")
	ErrAlreadyCommitted = errors.New("stocktake already committed")
	ErrInvalidType      = errors.New("stocktake type must be monthly or annual")
)

// Line is one item on an open count sheet.
type Line struct {
	ItemID    int    `json:"itemId"`
	ItemName  string `json:"itemName"`
	SystemQty int    `json:"systemQty"`
	ActualQty int    `json:"actualQty"`
	Variance  int    `json:"variance"`
	Counted   bool   `json:"counted"`
}

// Draft is an open stocktake. Once committed it refuses further changes.
type Draft struct {
	StartedAt time.Time `json:"startedAt"`
	Lines     []Line    `json:"lines"`
	Committed bool      `json:"committed"`
}

// Summary is the running total shown while counting.
type Summary struct {
	Counted       int             `json:"counted"`
	Discrepancies int             `json:"discrepancies"`
	TotalVariance int             `json:"totalVariance"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// Begin snapshots the current quantity of every stock item. Each actual
// count starts equal to the system quantity.
func Begin(stock []models.StockItem, now time.Time) *Draft {
	lines := make([]Line, 0, len(stock))
	for _, item := range stock {
		lines = append(lines, Line{
			ItemID:    item.ID,
			ItemName:  item.Name,
			SystemQty: item.Quantity,
			ActualQty: item.Quantity,
		})
	}
	return &Draft{StartedAt: now, Lines: lines}
}

// RecordCount overwrites the counted quantity of one item.
func (d *Draft) RecordCount(itemID, actualQty int) error {
	if d.Committed {
		return ErrAlreadyCommitted
	}
	if actualQty < 0 {
		return ErrNegativeCount
	}
	for i := range d.Lines {
		if d.Lines[i].ItemID == itemID {
			d.Lines[i].ActualQty = actualQty
			d.Lines[i].Variance = actualQty - d.Lines[i].SystemQty
			d.Lines[i].Counted = true
			return nil
		}
	}
	return ErrUnknownItem
}

// Summary totals the variance so far, valued at the current sell prices.
func (d *Draft) Summary(stock []models.StockItem) Summary {
	var s Summary
	s.TotalValue = decimal.Zero
	for _, line := range d.Lines {
		if line.Counted {
			s.Counted++
		}
		if line.Variance != 0 {
			s.Discrepancies++
		}
		s.TotalVariance += line.Variance
		s.TotalValue = s.TotalValue.Add(varianceValue(line.Variance, unitPrice(stock, line.ItemID)))
	}
	return s
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	out.Lines = make([]Line, len(d.Lines))
	copy(out.Lines, d.Lines)
	return &out
}

// Commit freezes the draft into a Stocktake with the given id. Variance is
// valued at each item's sell price as found in stock at commit time; items
// no longer in stock are valued at zero. Stock quantities are not touched.
func Commit(d *Draft, kind models.StocktakeType, date time.Time, stock []models.StockItem, id int) (models.Stocktake, error) {
	if d.Committed {
		return models.Stocktake{}, ErrAlreadyCommitted
	}
	if !kind.Valid() {
		return models.Stocktake{}, ErrInvalidType
	}

	st := models.Stocktake{
		ID:                 id,
		Date:               models.CivilDate(date),
		Type:               kind,
		Items:              make([]models.StocktakeItem, 0, len(d.Lines)),
		TotalVarianceValue: decimal.Zero,
	}
	for _, line := range d.Lines {
		value := varianceValue(line.Variance, unitPrice(stock, line.ItemID))
		st.Items = append(st.Items, models.StocktakeItem{
			ItemID:        line.ItemID,
			ItemName:      line.ItemName,
			SystemQty:     line.SystemQty,
			ActualQty:     line.ActualQty,
			Variance:      line.ActualQty - line.SystemQty,
			VarianceValue: value,
		})
		st.TotalVarianceValue = st.TotalVarianceValue.Add(value)
	}

	d.Committed = true
	return st, nil
}

func unitPrice(stock []models.StockItem, itemID int) decimal.Decimal {
	item, ok := models.FindStockItem(stock, itemID)
	if !ok {
		return decimal.Zero
	}
	return item.SellPrice
}

func varianceValue(variance int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(variance))).Round(2)
}
