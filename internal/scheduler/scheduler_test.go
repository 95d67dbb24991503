package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/farmshop/internal/config"
	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/service/shop"
)

type fakeSource struct {
	state shop.State
	now   time.Time
}

func (f fakeSource) Snapshot() shop.State { return f.state }
func (f fakeSource) Now() time.Time { return f.now }

type fakeArchive struct {
	reports []models.DailyReport
	err     error
}

func (f *fakeArchive) SaveDailyReport(_ context.Context, r models.DailyReport) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, r)
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, msg string) error {
	f.messages = append(f.messages, msg)
	return nil
}

func source() fakeSource {
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC) }
	return fakeSource{
		now: time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC),
		state: shop.State{
			Stock: []models.StockItem{{ID: 1, Name: "Sugar", CostPrice: decimal.NewFromInt(30), SellPrice: decimal.NewFromInt(40), Quantity: 3}},
			Transactions: []models.Transaction{
				{Date: day(14), WorkerID: 1, ItemID: 1, Quantity: 2, Price: decimal.NewFromInt(40), Total: decimal.NewFromInt(80)},
				{Date: day(8), WorkerID: 2, ItemID: 1, Quantity: 1, Price: decimal.NewFromInt(40), Total: decimal.NewFromInt(40)},
				{Date: day(7), WorkerID: 2, ItemID: 1, Quantity: 1, Price: decimal.NewFromInt(40), Total: decimal.NewFromInt(40)},
			},
		},
	}
}

func defaultCfg() config.ReportingConfig {
	return config.ReportingConfig{DailyCron: "55 23 * * *", WeeklyCron: "0 20 * * 5", Timezone: "UTC"}
}

func TestArchiveDailyReport(t *testing.T) {
	archive := &fakeArchive{}
	s := NewScheduler(defaultCfg(), time.UTC, source(), archive, nil, zaptest.NewLogger(t))

	require.NoError(t, s.archiveDailyReport(context.Background()))
	require.Len(t, archive.reports, 1)
	r := archive.reports[0]
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), r.Date)
	assert.InDelta(t, 80.0, r.SalesAmount, 0.001)
	assert.Equal(t, 1, r.OutOfStockItems)
}

func TestArchiveDailyReportError(t *testing.T) {
	archive := &fakeArchive{err: errors.New("mongo down")}
	s := NewScheduler(defaultCfg(), time.UTC, source(), archive, nil, nil)
	assert.ErrorContains(t, s.archiveDailyReport(context.Background()), "mongo down")
}

func TestSendWeeklySummaryCoversSevenDays(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewScheduler(defaultCfg(), time.UTC, source(), nil, notifier, zaptest.NewLogger(t))

	require.NoError(t, s.sendWeeklySummary(context.Background()))
	require.Len(t, notifier.messages, 1)
	msg := notifier.messages[0]
	assert.Contains(t, msg, "2025-03-08 to 2025-03-14")
	assert.Contains(t, msg, "R 120.00")
	assert.Contains(t, msg, "2 transactions by 2 workers")
}

func TestStartRejectsBadCron(t *testing.T) {
	cfg := defaultCfg()
	cfg.WeeklyCron = "every friday"
	s := NewScheduler(cfg, time.UTC, source(), nil, &fakeNotifier{}, nil)
	assert.Error(t, s.Start())
}

func TestStartWithoutJobs(t *testing.T) {
	s := NewScheduler(defaultCfg(), time.UTC, source(), nil, nil, nil)
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}
