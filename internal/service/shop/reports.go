package shop

import (
	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/service/reporting"
)

// Dashboard reports on the current collections.
func (s *Service) Dashboard(r reporting.DateRange) models.DashboardStats {
	st := s.Snapshot()
	return reporting.Dashboard(st.Stock, st.Transactions, r)
}

// WorkerSummaries reports every worker account for the current month.
func (s *Service) WorkerSummaries() []models.WorkerSummary {
	st := s.Snapshot()
	return reporting.WorkerSummaries(st.Workers, st.Transactions, s.Now())
}

// WorkerDetail reports one worker's purchases inside r.
func (s *Service) WorkerDetail(workerID int, r reporting.DateRange) (models.WorkerDetail, error) {
	st := s.Snapshot()
	w, ok := models.FindWorker(st.Workers, workerID)
	if !ok {
		return models.WorkerDetail{}, notFound("worker %d", workerID)
	}
	return reporting.WorkerDetail(w, st.Transactions, r), nil
}

// Transactions lists the transactions inside r.
func (s *Service) Transactions(r reporting.DateRange) []models.Transaction {
	return reporting.AllTransactions(s.Snapshot().Transactions, r)
}

// Stocktakes lists committed stocktakes.
func (s *Service) Stocktakes() []models.Stocktake {
	return s.Snapshot().Stocktakes
}

// StocktakeReport presents committed stocktakes with signed totals.
func (s *Service) StocktakeReport() []models.StocktakeReportEntry {
	return reporting.StocktakeReport(s.Snapshot().Stocktakes)
}
