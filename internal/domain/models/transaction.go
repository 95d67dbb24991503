package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one sold line charged to a worker's account. Worker and item
// names are copied at sale time and never re-joined.
type Transaction struct {
	Date       time.Time       `json:"date"`
	WorkerID   int             `json:"workerId"`
	WorkerName string          `json:"workerName"`
	ItemID     int             `json:"itemId"`
	ItemName   string          `json:"itemName"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
}
