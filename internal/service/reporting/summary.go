package reporting

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

const maxListedItems = 5

var printer = message.NewPrinter(language.English)

// FormatWeeklySummary renders the dashboard for start..end as a short text
// message for the shop manager.
func FormatWeeklySummary(stats models.DashboardStats, start, end time.Time) string {
	var b strings.Builder

	b.WriteString(printer.Sprintf("Farm shop summary %s to %s\n", start.Format(models.DateLayout), end.Format(models.DateLayout)))
	if stats.PeriodTransactionCount == 0 {
		b.WriteString("No sales recorded.\n")
	} else {
		b.WriteString(printer.Sprintf("Sales: %s across %d transactions by %d workers\n",
			money(stats.PeriodSales), stats.PeriodTransactionCount, stats.UniqueWorkers))
		b.WriteString(printer.Sprintf("Profit: %s\n", money(stats.PeriodProfit)))
	}
	b.WriteString(printer.Sprintf("Stock value: %s over %d items\n", money(stats.TotalStockValue), stats.TotalItems))

	if len(stats.OutOfStock) > 0 {
		b.WriteString(printer.Sprintf("Out of stock (%d): %s\n", len(stats.OutOfStock), itemNames(stats.OutOfStock)))
	}
	if len(stats.LowStock) > 0 {
		b.WriteString(printer.Sprintf("Running low (%d): %s\n", len(stats.LowStock), itemNames(stats.LowStock)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func money(d decimal.Decimal) string {
	return printer.Sprintf("R %.2f", d.InexactFloat64())
}

func itemNames(items []models.StockItem) string {
	names := make([]string, 0, maxListedItems+1)
	for i, item := range items {
		if i == maxListedItems {
			names = append(names, printer.Sprintf("+%d more", len(items)-maxListedItems))
			break
		}
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
