package syncing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/repository/sheets"
)

const defaultCallTimeout = 20 * time.Second

// Client loads and saves whole collections against the remote tabular store.
// It never substitutes data on failure; callers pick the fallback.
type Client struct {
	repo    sheets.Repository
	logger  *zap.Logger
	timeout time.Duration
}

// NewClient wires a sync client over repo.
func NewClient(repo sheets.Repository, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{repo: repo, logger: logger, timeout: defaultCallTimeout}
}

// Load reads every row of collection. An unreachable store yields a
// KindTransport error and an empty sheet a KindEmpty error.
func (c *Client) Load(ctx context.Context, collection models.Collection) ([]models.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.repo.ReadRows(ctx, string(collection))
	if err != nil {
		c.logger.Warn("collection load failed", zap.String("collection", string(collection)), zap.Error(err))
		return nil, &SyncError{Collection: collection, Kind: KindTransport, Err: err}
	}
	if len(rows) == 0 {
		return nil, &SyncError{Collection: collection, Kind: KindEmpty}
	}

	c.logger.Debug("collection loaded", zap.String("collection", string(collection)), zap.Int("rows", len(rows)))
	return rows, nil
}

// Save replaces the remote collection with rows. Failures are not retried.
func (c *Client) Save(ctx context.Context, collection models.Collection, rows []models.Row) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.repo.ReplaceRows(ctx, string(collection), rows); err != nil {
		c.logger.Warn("collection save failed", zap.String("collection", string(collection)), zap.Int("rows", len(rows)), zap.Error(err))
		return &SyncError{Collection: collection, Kind: KindTransport, Err: err}
	}

	c.logger.Debug("collection saved", zap.String("collection", string(collection)), zap.Int("rows", len(rows)))
	return nil
}
