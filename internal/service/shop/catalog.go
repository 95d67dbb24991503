package shop

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// StockInput carries the editable fields of a stock item.
type StockInput struct {
	Name        string          `json:"name"`
	StockCode   string          `json:"stockCode"`
	Category    models.Category `json:"category"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
}

func (in StockInput) validate() (StockInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.StockCode = strings.TrimSpace(in.StockCode)
	if in.Name == "" {
		return in, invalid("name is required")
	}
	if in.Category == "" {
		return in, invalid("category is required")
	}
	if !in.Category.Valid() {
		return in, invalid("unknown category %q", in.Category)
	}
	if !in.SellPrice.IsPositive() {
		return in, invalid("sell price must be greater than zero")
	}
	if in.CostPrice.IsNegative() {
		return in, invalid("cost price cannot be negative")
	}
	if in.Quantity < 0 {
		return in, invalid("quantity cannot be negative")
	}
	if in.MinQuantity < 0 {
		return in, invalid("minimum quantity cannot be negative")
	}
	return in, nil
}

// WorkerInput carries the editable fields of a worker.
type WorkerInput struct {
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
	FarmID   string `json:"farmId"`
}

func (in WorkerInput) validate() (WorkerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
	in.FarmID = strings.TrimSpace(in.FarmID)
	if in.Name == "" {
		return in, invalid("name is required")
	}
	if in.FarmID == "" {
		return in, invalid("farm id is required")
	}
	if len(in.IDNumber) > models.MaxIDNumberLength {
		return in, invalid("id number is longer than %d characters", models.MaxIDNumberLength)
	}
	return in, nil
}

// Stock returns a copy of the stock list.
func (s *Service) Stock() []models.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.StockItem(nil), s.state.Stock...)
}

// Workers returns a copy of the worker list.
func (s *Service) Workers() []models.Worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Worker(nil), s.state.Workers...)
}

// Worker looks up one worker.
func (s *Service) Worker(id int) (models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := models.FindWorker(s.state.Workers, id)
	if !ok {
		return models.Worker{}, notFound("worker %d", id)
	}
	return w, nil
}

// AddStockItem appends a new item with the next free id.
func (s *Service) AddStockItem(ctx context.Context, in StockInput) (models.StockItem, error) {
	in, err := in.validate()
	if err != nil {
		return models.StockItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.StockItem{
		ID:          nextID(s, models.CollectionStock, s.state.Stock, func(it models.StockItem) int { return it.ID }),
		Name:        in.Name,
		StockCode:   in.StockCode,
		Category:    in.Category,
		CostPrice:   in.CostPrice,
		SellPrice:   in.SellPrice,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
	}
	s.state.Stock = append(s.state.Stock, item)
	s.logger.Info("stock item added", zap.Int("item_id", item.ID), zap.String("name", item.Name))

	return item, s.persistStock(ctx)
}

// EditStockItem overwrites every editable field of an existing item.
func (s *Service) EditStockItem(ctx context.Context, id int, in StockInput) (models.StockItem, error) {
	in, err := in.validate()
	if err != nil {
		return models.StockItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := stockIndex(s.state.Stock, id)
	if idx < 0 {
		return models.StockItem{}, notFound("stock item %d", id)
	}

	item := models.StockItem{
		ID:          id,
		Name:        in.Name,
		StockCode:   in.StockCode,
		Category:    in.Category,
		CostPrice:   in.CostPrice,
		SellPrice:   in.SellPrice,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
	}
	s.state.Stock[idx] = item
	s.logger.Info("stock item edited", zap.Int("item_id", id))

	return item, s.persistStock(ctx)
}

// ReceiveStock adds a delivery to an item and records a receipt dated date.
func (s *Service) ReceiveStock(ctx context.Context, id, quantity int, date time.Time) (models.StockItem, error) {
	if quantity <= 0 {
		return models.StockItem{}, invalid("received quantity must be greater than zero")
	}
	if date.IsZero() {
		date = s.Today()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.addQuantity(id, quantity)
	if err != nil {
		return models.StockItem{}, err
	}

	receipt := models.Receipt{
		ID:       nextID(s, models.CollectionReceipts, s.state.Receipts, func(r models.Receipt) int { return r.ID }),
		Date:     models.CivilDate(date),
		ItemID:   item.ID,
		ItemName: item.Name,
		Quantity: quantity,
	}
	s.state.Receipts = append(s.state.Receipts, receipt)
	s.logger.Info("stock received", zap.Int("item_id", id), zap.Int("quantity", quantity), zap.Int("receipt_id", receipt.ID))

	return item, firstErr(s.persistStock(ctx), s.persistReceipts(ctx))
}

// QuickAdd tops up an item without recording a receipt.
func (s *Service) QuickAdd(ctx context.Context, id, quantity int) (models.StockItem, error) {
	if quantity <= 0 {
		return models.StockItem{}, invalid("quantity must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.addQuantity(id, quantity)
	if err != nil {
		return models.StockItem{}, err
	}
	s.logger.Info("stock topped up", zap.Int("item_id", id), zap.Int("quantity", quantity))

	return item, s.persistStock(ctx)
}

// addQuantity must be called with s.mu held.
func (s *Service) addQuantity(id, quantity int) (models.StockItem, error) {
	idx := stockIndex(s.state.Stock, id)
	if idx < 0 {
		return models.StockItem{}, notFound("stock item %d", id)
	}
	item := s.state.Stock[idx]
	item.Quantity += quantity
	s.state.Stock[idx] = item
	return item, nil
}

// AddWorker appends a worker with the next free id.
func (s *Service) AddWorker(ctx context.Context, in WorkerInput) (models.Worker, error) {
	in, err := in.validate()
	if err != nil {
		return models.Worker{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := models.Worker{ID: nextID(s, models.CollectionWorkers, s.state.Workers, func(w models.Worker) int { return w.ID }), Name: in.Name, IDNumber: in.IDNumber, FarmID: in.FarmID}
	s.state.Workers = append(s.state.Workers, w)
	s.logger.Info("worker added", zap.Int("worker_id", w.ID), zap.String("farm_id", w.FarmID))

	return w, s.persistWorkers(ctx)
}

// EditWorker updates a worker. Past transactions keep the name they were
// recorded with.
func (s *Service) EditWorker(ctx context.Context, id int, in WorkerInput) (models.Worker, error) {
	in, err := in.validate()
	if err != nil {
		return models.Worker{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, w := range s.state.Workers {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Worker{}, notFound("worker %d", id)
	}

	w := models.Worker{ID: id, Name: in.Name, IDNumber: in.IDNumber, FarmID: in.FarmID}
	s.state.Workers[idx] = w
	s.logger.Info("worker edited", zap.Int("worker_id", id))

	return w, s.persistWorkers(ctx)
}

func stockIndex(items []models.StockItem, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
