package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/config"
	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/pkg/clients/appsscript"
)

// Repository defines the whole-sheet operations of the remote tabular store.
type Repository interface {
	ReadRows(ctx context.Context, sheet string) ([]models.Row, error)
	ReplaceRows(ctx context.Context, sheet string, rows []models.Row) error
}

// New builds the repository selected by cfg.Store.Backend.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (Repository, error) {
	switch cfg.Store.Backend {
	case config.BackendAppsScript:
		return NewAppsScriptRepository(appsscript.NewClient(cfg.AppsScript), logger), nil
	case config.BackendSheets:
		return NewGoogleSheetRepository(ctx, cfg.Sheets, logger)
	case config.BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
