package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/pkg/clients/appsscript"
)

// AppsScriptRepository stores sheets through the spreadsheet web app.
type AppsScriptRepository struct {
	client appsscript.Client
	logger *zap.Logger
}

// NewAppsScriptRepository wraps a web app client.
func NewAppsScriptRepository(client appsscript.Client, logger *zap.Logger) *AppsScriptRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppsScriptRepository{client: client, logger: logger}
}

// ReadRows fetches every row of the sheet.
func (r *AppsScriptRepository) ReadRows(ctx context.Context, sheet string) ([]models.Row, error) {
	if sheet == "" {
		return nil, fmt.Errorf("sheet must not be empty")
	}

	data, err := r.client.Read(ctx, sheet)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Row, 0, len(data))
	for _, obj := range data {
		rows = append(rows, models.Row(obj))
	}

	r.logger.Debug("sheet read", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return rows, nil
}

// ReplaceRows overwrites the sheet with rows.
func (r *AppsScriptRepository) ReplaceRows(ctx context.Context, sheet string, rows []models.Row) error {
	if sheet == "" {
		return fmt.Errorf("sheet must not be empty")
	}

	payload := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, map[string]any(row))
	}

	if err := r.client.Write(ctx, sheet, payload); err != nil {
		return err
	}

	r.logger.Debug("sheet replaced", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return nil
}
