package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the overview shown on the shop dashboard.
type DashboardStats struct {
	PeriodSales            decimal.Decimal `json:"periodSales"`
	PeriodTransactionCount int             `json:"periodTransactionCount"`
	UniqueWorkers          int             `json:"uniqueWorkers"`
	PeriodProfit           decimal.Decimal `json:"periodProfit"`
	TotalItems             int             `json:"totalItems"`
	OutOfStock             []StockItem     `json:"outOfStock"`
	LowStock               []StockItem     `json:"lowStock"`
	TotalStockValue        decimal.Decimal `json:"totalStockValue"`
	RecentTransactions     []Transaction   `json:"recentTransactions"`
}

// WorkerSummary is one line of the worker account summary.
type WorkerSummary struct {
	WorkerID         int             `json:"workerId"`
	WorkerName       string          `json:"workerName"`
	FarmID           string          `json:"farmId"`
	MonthlyTotal     decimal.Decimal `json:"monthlyTotal"`
	AllTimeTotal     decimal.Decimal `json:"allTimeTotal"`
	TransactionCount int             `json:"transactionCount"`
}

// MonthGroup holds one calendar month of a worker's purchases.
type MonthGroup struct {
	Key          string          `json:"key"`
	Name         string          `json:"name"`
	Transactions []Transaction   `json:"transactions"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// WorkerDetail is a worker's filtered purchase history, newest month first.
type WorkerDetail struct {
	Worker Worker          `json:"worker"`
	Months []MonthGroup    `json:"months"`
	Total  decimal.Decimal `json:"total"`
}

// StocktakeReportEntry presents one committed stocktake.
type StocktakeReportEntry struct {
	Stocktake     Stocktake `json:"stocktake"`
	TotalVariance int       `json:"totalVariance"`
	Shrinkage     bool      `json:"shrinkage"`
}

// DailyReport represents the aggregated daily data archived in MongoDB.
type DailyReport struct {
	Date             time.Time `bson:"date" json:"date"`
	SalesAmount      float64   `bson:"sales_amount" json:"sales_amount"`
	TransactionCount int       `bson:"transaction_count" json:"transaction_count"`
	UniqueWorkers    int       `bson:"unique_workers" json:"unique_workers"`
	Profit           float64   `bson:"profit" json:"profit"`
	StockValue       float64   `bson:"stock_value" json:"stock_value"`
	OutOfStockItems  int       `bson:"out_of_stock_items" json:"out_of_stock_items"`
	LowStockItems    int       `bson:"low_stock_items" json:"low_stock_items"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
