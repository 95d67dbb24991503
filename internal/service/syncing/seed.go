package syncing

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// SeedStock is the sample shelf shown when no stock list can be loaded.
func SeedStock() []models.StockItem {
	return []models.StockItem{
		{ID: 1, Name: "Maize Meal 12.5kg", StockCode: "MM125", Category: models.CategoryGroceries, CostPrice: decimal.RequireFromString("75.00"), SellPrice: decimal.RequireFromString("89.99"), Quantity: 50, MinQuantity: 10},
		{ID: 2, Name: "Sugar 2.5kg", StockCode: "SUG25", Category: models.CategoryGroceries, CostPrice: decimal.RequireFromString("38.00"), SellPrice: decimal.RequireFromString("45.50"), Quantity: 30, MinQuantity: 15},
		{ID: 3, Name: "Soap Bar", StockCode: "SOAP1", Category: models.CategoryToiletries, CostPrice: decimal.RequireFromString("9.50"), SellPrice: decimal.RequireFromString("12.99"), Quantity: 5, MinQuantity: 20},
	}
}

// SeedWorkers is the sample worker list shown when none can be loaded.
func SeedWorkers() []models.Worker {
	return []models.Worker{
		{ID: 1, Name: "Johannes Mkhize", IDNumber: "7801015800082", FarmID: "W001"},
		{ID: 2, Name: "Sarah Dlamini", IDNumber: "8505129800083", FarmID: "W002"},
	}
}

// SeedTransactions is empty: sample sales would be charged to real accounts.
func SeedTransactions() []models.Transaction {
	return []models.Transaction{}
}

// SeedStocktakes is empty: there is no sample count history.
func SeedStocktakes() []models.Stocktake {
	return []models.Stocktake{}
}

// SeedReceipts is empty: there is no sample receiving history.
func SeedReceipts() []models.Receipt {
	return []models.Receipt{}
}
