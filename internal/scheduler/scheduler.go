package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/config"
	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/service/reporting"
	"github.com/mamadbah2/farmshop/internal/service/shop"
)

const jobTimeout = 2 * time.Minute

// StateSource provides the current collections and the shop clock.
type StateSource interface {
	Snapshot() shop.State
	Now() time.Time
}

// Archive stores daily report snapshots.
type Archive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier delivers a text message to the shop manager.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	source   StateSource
	archive  Archive
	notifier Notifier
	cfg      config.ReportingConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. archive and notifier may be
// nil, which leaves the matching job unscheduled.
func NewScheduler(cfg config.ReportingConfig, loc *time.Location, source StateSource, archive Archive, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		source:   source,
		archive:  archive,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.archive != nil {
		if _, err := s.cron.AddFunc(s.cfg.DailyCron, s.runJob("daily archive", s.archiveDailyReport)); err != nil {
			return fmt.Errorf("schedule daily archive %q: %w", s.cfg.DailyCron, err)
		}
	}
	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.WeeklyCron, s.runJob("weekly summary", s.sendWeeklySummary)); err != nil {
			return fmt.Errorf("schedule weekly summary %q: %w", s.cfg.WeeklyCron, err)
		}
	}

	s.logger.Info("scheduler jobs registered", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runJob(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		s.logger.Info("running scheduled job", zap.String("job", name))
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("scheduled job finished", zap.String("job", name))
	}
}

func (s *Scheduler) archiveDailyReport(ctx context.Context) error {
	now := s.source.Now()
	state := s.source.Snapshot()

	report := reporting.DailyReport(state.Stock, state.Transactions, now, now.UTC())
	if err := s.archive.SaveDailyReport(ctx, report); err != nil {
		return fmt.Errorf("archive daily report: %w", err)
	}
	return nil
}

func (s *Scheduler) sendWeeklySummary(ctx context.Context) error {
	end := models.CivilDate(s.source.Now())
	start := end.AddDate(0, 0, -6)
	state := s.source.Snapshot()

	stats := reporting.Dashboard(state.Stock, state.Transactions, reporting.Between(start, end))
	if err := s.notifier.Notify(ctx, reporting.FormatWeeklySummary(stats, start, end)); err != nil {
		return fmt.Errorf("send weekly summary: %w", err)
	}
	return nil
}
