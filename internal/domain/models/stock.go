package models

import "github.com/shopspring/decimal"

// Category groups stock items on the shop shelves.
type Category string

const (
	CategoryGroceries  Category = "Groceries"
	CategoryToiletries Category = "Toiletries"
	CategoryHousehold  Category = "Household"
	CategoryClothing   Category = "Clothing"
	CategoryOther      Category = "Other"
)

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{CategoryGroceries, CategoryToiletries, CategoryHousehold, CategoryClothing, CategoryOther}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// StockItem is one product line held in the shop.
type StockItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	StockCode   string          `json:"stockCode,omitempty"`
	Category    Category        `json:"category"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
}

// FindStockItem returns the item with the given id.
func FindStockItem(items []StockItem, id int) (StockItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return StockItem{}, false
}
