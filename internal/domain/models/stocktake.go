package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StocktakeType distinguishes month-end counts from the annual count.
type StocktakeType string

const (
	StocktakeMonthly StocktakeType = "monthly"
	StocktakeAnnual  StocktakeType = "annual"
)

// Valid reports whether t is a known stocktake type.
func (t StocktakeType) Valid() bool {
	return t == StocktakeMonthly || t == StocktakeAnnual
}

// StocktakeItem compares the recorded and counted quantity of one item.
// A negative variance is shrinkage, a positive one a surplus.
type StocktakeItem struct {
	ItemID        int             `json:"itemId"`
	ItemName      string          `json:"itemName"`
	SystemQty     int             `json:"systemQty"`
	ActualQty     int             `json:"actualQty"`
	Variance      int             `json:"variance"`
	VarianceValue decimal.Decimal `json:"varianceValue"`
}

// Stocktake is a committed, immutable physical count.
type Stocktake struct {
	ID                 int             `json:"id"`
	Date               time.Time       `json:"date"`
	Type               StocktakeType   `json:"type"`
	Items              []StocktakeItem `json:"items"`
	TotalVarianceValue decimal.Decimal `json:"totalVarianceValue"`
}
