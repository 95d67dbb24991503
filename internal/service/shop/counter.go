package shop

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/service/checkout"
	"github.com/mamadbah2/farmshop/internal/service/stocktake"
)

// Cart returns the user's open cart.
func (s *Service) Cart(username string) checkout.Cart {
	return s.sessions.GetSession(username).Cart
}

// AddToCart puts one more unit of item into the user's cart.
func (s *Service) AddToCart(username string, itemID int) (checkout.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := models.FindStockItem(s.state.Stock, itemID)
	if !ok {
		return checkout.Cart{}, notFound("stock item %d", itemID)
	}

	sess := s.sessions.GetSession(username)
	if err := sess.Cart.AddLine(item); err != nil {
		return sess.Cart, err
	}
	s.sessions.UpdateSession(username, sess)
	return sess.Cart, nil
}

// SetCartQuantity changes a cart line. Zero or less removes it.
func (s *Service) SetCartQuantity(username string, itemID, quantity int) (checkout.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	if err := sess.Cart.SetLineQuantity(itemID, quantity, s.state.Stock); err != nil {
		if errors.Is(err, checkout.ErrLineNotFound) {
			return sess.Cart, notFound("cart line for item %d", itemID)
		}
		return sess.Cart, err
	}
	s.sessions.UpdateSession(username, sess)
	return sess.Cart, nil
}

// RemoveFromCart drops a cart line.
func (s *Service) RemoveFromCart(username string, itemID int) checkout.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	sess.Cart.RemoveLine(itemID)
	s.sessions.UpdateSession(username, sess)
	return sess.Cart
}

// CheckoutCart charges the user's cart to a worker. Either every line is
// recorded or none is; a rejected cart stays as it was.
func (s *Service) CheckoutCart(ctx context.Context, username string, workerID int) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var worker *models.Worker
	if workerID != 0 {
		w, ok := models.FindWorker(s.state.Workers, workerID)
		if !ok {
			return nil, notFound("worker %d", workerID)
		}
		worker = &w
	}

	sess := s.sessions.GetSession(username)
	txns, err := checkout.Checkout(worker, sess.Cart, s.state.Stock, s.Today())
	if err != nil {
		return nil, err
	}

	s.state.Transactions = append(s.state.Transactions, txns...)
	if s.decrementOnSale {
		s.state.Stock = checkout.ApplySale(s.state.Stock, txns)
	}
	sess.Cart.Clear()
	s.sessions.UpdateSession(username, sess)

	s.logger.Info("checkout completed",
		zap.String("user", username),
		zap.Int("worker_id", workerID),
		zap.Int("lines", len(txns)),
		zap.String("total", sumTotals(txns).StringFixed(2)),
	)

	saveErr := s.persistTransactions(ctx)
	if s.decrementOnSale {
		saveErr = firstErr(saveErr, s.persistStock(ctx))
	}
	return txns, saveErr
}

func sumTotals(txns []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Total)
	}
	return total
}

// StartStocktake opens a count sheet for the user, replacing any open one.
func (s *Service) StartStocktake(username string) *stocktake.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	sess.Draft = stocktake.Begin(s.state.Stock, s.Now())
	s.sessions.UpdateSession(username, sess)
	s.logger.Info("stocktake started", zap.String("user", username), zap.Int("items", len(sess.Draft.Lines)))
	return sess.Draft.Clone()
}

// StocktakeDraft returns the user's open count sheet with its running total.
func (s *Service) StocktakeDraft(username string) (*stocktake.Draft, stocktake.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	if sess.Draft == nil {
		return nil, stocktake.Summary{}, notFound("no open stocktake")
	}
	return sess.Draft, sess.Draft.Summary(s.state.Stock), nil
}

// RecordCount stores a physical count on the user's open sheet.
func (s *Service) RecordCount(username string, itemID, actualQty int) (*stocktake.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	if sess.Draft == nil {
		return nil, notFound("no open stocktake")
	}
	if err := sess.Draft.RecordCount(itemID, actualQty); err != nil {
		return nil, err
	}
	s.sessions.UpdateSession(username, sess)
	return sess.Draft.Clone(), nil
}

// CommitStocktake freezes the user's sheet into a stocktake record dated on
// the day it was counted and closes it. A zero date means today. Stock
// quantities are left as they are.
func (s *Service) CommitStocktake(ctx context.Context, username string, kind models.StocktakeType, date time.Time) (models.Stocktake, error) {
	if date.IsZero() {
		date = s.Today()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	if sess.Draft == nil {
		return models.Stocktake{}, notFound("no open stocktake")
	}

	st, err := stocktake.Commit(sess.Draft, kind, models.CivilDate(date), s.state.Stock,
		nextID(s, models.CollectionStocktakes, s.state.Stocktakes, func(st models.Stocktake) int { return st.ID }))
	if err != nil {
		return models.Stocktake{}, err
	}

	s.state.Stocktakes = append(s.state.Stocktakes, st)
	sess.Draft = nil
	s.sessions.UpdateSession(username, sess)
	s.logger.Info("stocktake committed",
		zap.String("user", username),
		zap.Int("stocktake_id", st.ID),
		zap.String("type", string(st.Type)),
		zap.String("total_variance_value", st.TotalVarianceValue.StringFixed(2)),
	)

	return st, s.persistStocktakes(ctx)
}

// DiscardStocktake closes the user's sheet without recording it.
func (s *Service) DiscardStocktake(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetSession(username)
	sess.Draft = nil
	s.sessions.UpdateSession(username, sess)
}
