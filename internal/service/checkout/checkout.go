package checkout

import (
	"time"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// Checkout turns the cart into one transaction per line, charged to worker
// and dated on the calendar day of today. Every line is checked against the
// on-hand quantities in stock before any record is built, so a rejection
// leaves nothing half-done and the cart untouched.
func Checkout(worker *models.Worker, cart Cart, stock []models.StockItem, today time.Time) ([]models.Transaction, error) {
	if worker == nil {
		return nil, ErrMissingWorker
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	for _, line := range cart.Lines {
		item, ok := models.FindStockItem(stock, line.ItemID)
		if !ok {
			return nil, &InsufficientStockError{ItemName: line.ItemName, Requested: line.Quantity}
		}
		if line.Quantity > item.Quantity {
			return nil, &InsufficientStockError{ItemName: line.ItemName, Requested: line.Quantity, Available: item.Quantity}
		}
	}

	date := models.CivilDate(today)
	txns := make([]models.Transaction, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		txns = append(txns, models.Transaction{
			Date:       date,
			WorkerID:   worker.ID,
			WorkerName: worker.Name,
			ItemID:     line.ItemID,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			Price:      line.Price,
			Total:      line.Total(),
		})
	}
	return txns, nil
}

// ApplySale returns a copy of stock with the sold quantities taken off.
// Quantities never drop below zero.
func ApplySale(stock []models.StockItem, txns []models.Transaction) []models.StockItem {
	sold := make(map[int]int, len(txns))
	for _, t := range txns {
		sold[t.ItemID] += t.Quantity
	}

	out := make([]models.StockItem, len(stock))
	copy(out, stock)
	for i := range out {
		qty, ok := sold[out[i].ID]
		if !ok {
			continue
		}
		out[i].Quantity -= qty
		if out[i].Quantity < 0 {
			out[i].Quantity = 0
		}
	}
	return out
}
