package sheets

import (
	"context"
	"sync"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// MemoryRepository keeps sheets in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	sheets map[string][]models.Row
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sheets: make(map[string][]models.Row)}
}

// ReadRows returns a copy of the stored rows. Unknown sheets read as empty.
func (r *MemoryRepository) ReadRows(_ context.Context, sheet string) ([]models.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyRows(r.sheets[sheet]), nil
}

// ReplaceRows stores a copy of rows under sheet.
func (r *MemoryRepository) ReplaceRows(_ context.Context, sheet string, rows []models.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sheets[sheet] = copyRows(rows)
	return nil
}

func copyRows(rows []models.Row) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		cp := make(models.Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}
