// Package reporting derives dashboards and account summaries from the
// current collections. Every function is pure: the same inputs always give
// the same output.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

const (
	outOfStockBelow = 5
	lowStockMax     = 10
	recentCount     = 5
)

// Dashboard summarizes sales inside r together with the current stock levels.
func Dashboard(stock []models.StockItem, txns []models.Transaction, r DateRange) models.DashboardStats {
	filtered := FilterTransactions(txns, r)

	stats := models.DashboardStats{
		PeriodSales:            decimal.Zero,
		PeriodTransactionCount: len(filtered),
		PeriodProfit:           decimal.Zero,
		TotalItems:             len(stock),
		OutOfStock:             []models.StockItem{},
		LowStock:               []models.StockItem{},
		TotalStockValue:        decimal.Zero,
	}

	workers := make(map[int]struct{})
	for _, t := range filtered {
		stats.PeriodSales = stats.PeriodSales.Add(t.Total)
		workers[t.WorkerID] = struct{}{}

		item, ok := models.FindStockItem(stock, t.ItemID)
		if !ok || !item.CostPrice.IsPositive() {
			continue
		}
		margin := t.Price.Sub(item.CostPrice)
		stats.PeriodProfit = stats.PeriodProfit.Add(margin.Mul(decimal.NewFromInt(int64(t.Quantity))))
	}
	stats.UniqueWorkers = len(workers)

	for _, item := range stock {
		switch {
		case item.Quantity < outOfStockBelow:
			stats.OutOfStock = append(stats.OutOfStock, item)
		case item.Quantity <= lowStockMax:
			stats.LowStock = append(stats.LowStock, item)
		}
		stats.TotalStockValue = stats.TotalStockValue.Add(item.SellPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	start := len(filtered) - recentCount
	if start < 0 {
		start = 0
	}
	recent := make([]models.Transaction, 0, recentCount)
	for i := len(filtered) - 1; i >= start; i-- {
		recent = append(recent, filtered[i])
	}
	stats.RecentTransactions = recent

	return stats
}

// WorkerSummaries returns one line per worker, in worker order. The monthly
// total covers the calendar month of now.
func WorkerSummaries(workers []models.Worker, txns []models.Transaction, now time.Time) []models.WorkerSummary {
	year, month, _ := now.Date()

	out := make([]models.WorkerSummary, 0, len(workers))
	for _, w := range workers {
		summary := models.WorkerSummary{
			WorkerID:     w.ID,
			WorkerName:   w.Name,
			FarmID:       w.FarmID,
			MonthlyTotal: decimal.Zero,
			AllTimeTotal: decimal.Zero,
		}
		for _, t := range txns {
			if t.WorkerID != w.ID {
				continue
			}
			summary.AllTimeTotal = summary.AllTimeTotal.Add(t.Total)
			summary.TransactionCount++
			if y, m, _ := t.Date.Date(); y == year && m == month {
				summary.MonthlyTotal = summary.MonthlyTotal.Add(t.Total)
			}
		}
		out = append(out, summary)
	}
	return out
}

// WorkerDetail groups one worker's purchases inside r by calendar month,
// newest month first.
func WorkerDetail(worker models.Worker, txns []models.Transaction, r DateRange) models.WorkerDetail {
	detail := models.WorkerDetail{Worker: worker, Months: []models.MonthGroup{}, Total: decimal.Zero}

	groups := make(map[string]*models.MonthGroup)
	for _, t := range FilterTransactions(txns, r) {
		if t.WorkerID != worker.ID {
			continue
		}
		key := t.Date.Format("2006-01")
		g, ok := groups[key]
		if !ok {
			g = &models.MonthGroup{Key: key, Name: t.Date.Format("January 2006"), Subtotal: decimal.Zero}
			groups[key] = g
		}
		g.Transactions = append(g.Transactions, t)
		g.Subtotal = g.Subtotal.Add(t.Total)
		detail.Total = detail.Total.Add(t.Total)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, k := range keys {
		detail.Months = append(detail.Months, *groups[k])
	}
	return detail
}

// AllTransactions lists the transactions inside r in recorded order.
func AllTransactions(txns []models.Transaction, r DateRange) []models.Transaction {
	return FilterTransactions(txns, r)
}

// StocktakeReport presents every committed stocktake with its signed totals.
func StocktakeReport(stocktakes []models.Stocktake) []models.StocktakeReportEntry {
	out := make([]models.StocktakeReportEntry, 0, len(stocktakes))
	for _, st := range stocktakes {
		var units int
		for _, item := range st.Items {
			units += item.Variance
		}
		out = append(out, models.StocktakeReportEntry{
			Stocktake:     st,
			TotalVariance: units,
			Shrinkage:     st.TotalVarianceValue.IsNegative(),
		})
	}
	return out
}

// DailyReport flattens the dashboard for day into the archived form.
func DailyReport(stock []models.StockItem, txns []models.Transaction, day, createdAt time.Time) models.DailyReport {
	stats := Dashboard(stock, txns, Between(day, day))
	return models.DailyReport{
		Date:             models.CivilDate(day),
		SalesAmount:      stats.PeriodSales.InexactFloat64(),
		TransactionCount: stats.PeriodTransactionCount,
		UniqueWorkers:    stats.UniqueWorkers,
		Profit:           stats.PeriodProfit.InexactFloat64(),
		StockValue:       stats.TotalStockValue.InexactFloat64(),
		OutOfStockItems:  len(stats.OutOfStock),
		LowStockItems:    len(stats.LowStock),
		CreatedAt:        createdAt,
	}
}
