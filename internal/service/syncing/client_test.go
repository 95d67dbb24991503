package syncing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/repository/sheets"
)

type failingRepo struct{ err error }

func (f failingRepo) ReadRows(context.Context, string) ([]models.Row, error) { return nil, f.err }
func (f failingRepo) ReplaceRows(context.Context, string, []models.Row) error {
	return f.err
}

func TestLoadEmptyCollection(t *testing.T) {
	client := NewClient(sheets.NewMemoryRepository(), zaptest.NewLogger(t))

	rows, err := client.Load(context.Background(), models.CollectionWorkers)
	assert.Nil(t, rows)
	assert.Equal(t, KindEmpty, KindOf(err))
}

func TestLoadTransportFailure(t *testing.T) {
	boom := errors.New("connection refused")
	client := NewClient(failingRepo{err: boom}, zaptest.NewLogger(t))

	_, err := client.Load(context.Background(), models.CollectionStock)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.ErrorIs(t, err, boom)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, models.CollectionStock, syncErr.Collection)
}

func TestSaveTransportFailure(t *testing.T) {
	client := NewClient(failingRepo{err: errors.New("timeout")}, nil)

	err := client.Save(context.Background(), models.CollectionStock, []models.Row{{"id": 1}})
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	client := NewClient(sheets.NewMemoryRepository(), zaptest.NewLogger(t))
	ctx := context.Background()

	rows := make([]models.Row, 0, 50)
	for i := 1; i <= 50; i++ {
		rows = append(rows, models.Row{"id": i, "name": fmt.Sprintf("Worker %d", i), "farmId": fmt.Sprintf("W%03d", i)})
	}
	require.NoError(t, client.Save(ctx, models.CollectionWorkers, rows))

	got, err := client.Load(ctx, models.CollectionWorkers)
	require.NoError(t, err)
	assert.ElementsMatch(t, rows, got)

	// An empty collection saves fine and loads back as empty.
	require.NoError(t, client.Save(ctx, models.CollectionReceipts, []models.Row{}))
	_, err = client.Load(ctx, models.CollectionReceipts)
	assert.Equal(t, KindEmpty, KindOf(err))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("other")))
}
