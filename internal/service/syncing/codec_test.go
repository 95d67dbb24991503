package syncing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/repository/sheets"
)

func testCodec(t *testing.T) Codec {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Johannesburg")
	require.NoError(t, err)
	return NewCodec(loc, zaptest.NewLogger(t))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStockRoundTripThroughStore(t *testing.T) {
	codec := testCodec(t)
	client := NewClient(sheets.NewMemoryRepository(), nil)
	ctx := context.Background()

	items := make([]models.StockItem, 0, 50)
	for i := 1; i <= 50; i++ {
		items = append(items, models.StockItem{
			ID:          i,
			Name:        fmt.Sprintf("Item %d", i),
			StockCode:   fmt.Sprintf("C%d", i),
			Category:    models.CategoryHousehold,
			CostPrice:   decimal.NewFromFloat(float64(i) + 0.25),
			SellPrice:   decimal.NewFromFloat(float64(i) + 1.75),
			Quantity:    i,
			MinQuantity: 5,
		})
	}

	require.NoError(t, client.Save(ctx, models.CollectionStock, codec.EncodeStock(items)))
	rows, err := client.Load(ctx, models.CollectionStock)
	require.NoError(t, err)

	got, _, err := codec.DecodeStock(rows)
	require.NoError(t, err)
	require.Len(t, got, 50)
	for i := range items {
		assert.Equal(t, items[i].ID, got[i].ID)
		assert.Equal(t, items[i].Name, got[i].Name)
		assert.True(t, items[i].SellPrice.Equal(got[i].SellPrice), "sell price of %d", i)
		assert.True(t, items[i].CostPrice.Equal(got[i].CostPrice), "cost price of %d", i)
		assert.Equal(t, items[i].Quantity, got[i].Quantity)
	}
}

func TestDecodeStockNormalizesLegacyRows(t *testing.T) {
	codec := testCodec(t)

	got, _, err := codec.DecodeStock([]models.Row{
		{"id": float64(7), "name": "Candles", "price": float64(15), "quantity": "", "category": "Lighting", "minQuantity": ""},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	item := got[0]
	assert.Equal(t, "15", item.SellPrice.String())
	assert.True(t, item.CostPrice.IsZero())
	assert.Equal(t, models.CategoryOther, item.Category)
	assert.Equal(t, 0, item.Quantity)
}

func TestDecodeStockHoldsBackBadRows(t *testing.T) {
	codec := testCodec(t)

	bad := models.Row{"id": float64(2), "name": "Bad", "price": float64(10), "quantity": "lots"}
	got, unreadable, err := codec.DecodeStock([]models.Row{
		{"id": float64(1), "name": "Good", "sellPrice": float64(10), "quantity": float64(2)},
		bad,
		{"name": "No id", "sellPrice": float64(10)},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Good", got[0].Name)

	require.Len(t, unreadable, 2)
	assert.Equal(t, bad, unreadable[0], "held rows are not normalized")
	assert.Equal(t, 2, RowID(unreadable[0]))
	assert.Equal(t, 0, RowID(unreadable[1]))
}

func TestDecodeFailsWhenNothingReadable(t *testing.T) {
	codec := testCodec(t)

	_, _, err := codec.DecodeWorkers([]models.Row{{"name": "anonymous"}})
	assert.Equal(t, KindDecode, KindOf(err))
}

func TestDecodeWorkersKeepsNumericIDNumber(t *testing.T) {
	codec := testCodec(t)

	got, _, err := codec.DecodeWorkers([]models.Row{
		{"id": float64(1), "name": "Johannes Mkhize", "idNumber": float64(7801015800082), "contact": "W001"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7801015800082", got[0].IDNumber)
	assert.Equal(t, "W001", got[0].FarmID)
}

func TestDecodeTransactionDates(t *testing.T) {
	codec := testCodec(t)

	got, _, err := codec.DecodeTransactions([]models.Row{
		// A date cell serialized by the spreadsheet: local midnight expressed in UTC.
		{"date": "2025-03-31T22:00:00.000Z", "workerId": float64(1), "itemId": float64(2), "quantity": float64(2), "price": float64(40), "total": ""},
		{"date": "2025-04-02", "workerId": float64(1), "itemId": float64(2), "quantity": float64(1), "price": float64(40), "total": float64(40)},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, day(2025, time.April, 1), got[0].Date)
	assert.Equal(t, "80", got[0].Total.String())
	assert.Equal(t, day(2025, time.April, 2), got[1].Date)
}

func TestStocktakeRoundTrip(t *testing.T) {
	codec := testCodec(t)

	st := models.Stocktake{
		ID:   1700000000000,
		Date: day(2025, time.May, 31),
		Type: models.StocktakeMonthly,
		Items: []models.StocktakeItem{
			{ItemID: 2, ItemName: "Sugar 2.5kg", SystemQty: 20, ActualQty: 18, Variance: -2, VarianceValue: decimal.RequireFromString("-20.00")},
		},
		TotalVarianceValue: decimal.RequireFromString("-20.00"),
	}

	got, _, err := codec.DecodeStocktakes(codec.EncodeStocktakes([]models.Stocktake{st}))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, st.ID, got[0].ID)
	assert.Equal(t, st.Date, got[0].Date)
	assert.Equal(t, st.Type, got[0].Type)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, -2, got[0].Items[0].Variance)
	assert.True(t, got[0].Items[0].VarianceValue.Equal(decimal.NewFromInt(-20)))
	assert.True(t, got[0].TotalVarianceValue.Equal(decimal.NewFromInt(-20)))
}

func TestReceiptRoundTrip(t *testing.T) {
	codec := testCodec(t)
	in := []models.Receipt{{ID: 1, Date: day(2025, time.June, 3), ItemID: 2, ItemName: "Sugar 2.5kg", Quantity: 12}}

	got, _, err := codec.DecodeReceipts(codec.EncodeReceipts(in))
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSeedsAreDistinct(t *testing.T) {
	assert.NotEmpty(t, SeedStock())
	assert.NotEmpty(t, SeedWorkers())
	assert.Empty(t, SeedTransactions())
	assert.Empty(t, SeedStocktakes())
	assert.Empty(t, SeedReceipts())
}
