package syncing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// Codec converts typed records to sheet rows and back.
type Codec struct {
	loc    *time.Location
	logger *zap.Logger
}

// NewCodec builds a codec that reads timestamps in loc.
func NewCodec(loc *time.Location, logger *zap.Logger) Codec {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Codec{loc: loc, logger: logger}
}

// decodeRows normalizes every row and decodes it with fn. Rows that fail are
// returned untouched next to the records so a later save can write them back;
// the collection fails only when every row is unreadable.
func decodeRows[T any](c Codec, collection models.Collection, rows []models.Row, fn func(models.Row) (T, error)) ([]T, []models.Row, error) {
	out := make([]T, 0, len(rows))
	var (
		unreadable []models.Row
		firstErr   error
	)
	for i, raw := range rows {
		record, err := fn(normalize(collection, raw))
		if err != nil {
			c.logger.Warn("unreadable row held back", zap.String("collection", string(collection)), zap.Int("row", i+2), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			unreadable = append(unreadable, raw)
			continue
		}
		out = append(out, record)
	}

	if len(out) == 0 && firstErr != nil {
		return nil, nil, &SyncError{Collection: collection, Kind: KindDecode, Err: firstErr}
	}
	return out, unreadable, nil
}

// RowID reads the id cell of a raw row, or 0 when it has none.
func RowID(row models.Row) int {
	id, err := parseInt(row["id"])
	if err != nil {
		return 0
	}
	return id
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func requireID(row models.Row) (int, error) {
	id, err := parseInt(row["id"])
	if err != nil {
		return 0, fmt.Errorf("id: %w", err)
	}
	if id == 0 {
		return 0, errors.New("missing id")
	}
	return id, nil
}

// EncodeStock turns stock items into rows.
func (c Codec) EncodeStock(items []models.StockItem) []models.Row {
	rows := make([]models.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.Row{
			"id":          item.ID,
			"name":        item.Name,
			"stockCode":   item.StockCode,
			"category":    string(item.Category),
			"costPrice":   amount(item.CostPrice),
			"sellPrice":   amount(item.SellPrice),
			"quantity":    item.Quantity,
			"minQuantity": item.MinQuantity,
		})
	}
	return rows
}

// DecodeStock turns rows into stock items. Rows it cannot read come back
// unchanged as the second result.
func (c Codec) DecodeStock(rows []models.Row) ([]models.StockItem, []models.Row, error) {
	return decodeRows(c, models.CollectionStock, rows, func(row models.Row) (models.StockItem, error) {
		var (
			item models.StockItem
			err  error
		)
		if item.ID, err = requireID(row); err != nil {
			return item, err
		}
		item.Name = parseString(row["name"])
		if item.Name == "" {
			return item, errors.New("missing name")
		}
		item.StockCode = parseString(row["stockCode"])
		item.Category = models.Category(parseString(row["category"]))
		if item.CostPrice, err = parseDecimal(row["costPrice"]); err != nil {
			return item, fmt.Errorf("costPrice: %w", err)
		}
		if item.SellPrice, err = parseDecimal(row["sellPrice"]); err != nil {
			return item, fmt.Errorf("sellPrice: %w", err)
		}
		if item.Quantity, err = parseInt(row["quantity"]); err != nil {
			return item, fmt.Errorf("quantity: %w", err)
		}
		if item.Quantity < 0 {
			item.Quantity = 0
		}
		if item.MinQuantity, err = parseInt(row["minQuantity"]); err != nil {
			return item, fmt.Errorf("minQuantity: %w", err)
		}
		return item, nil
	})
}

// EncodeWorkers turns workers into rows.
func (c Codec) EncodeWorkers(workers []models.Worker) []models.Row {
	rows := make([]models.Row, 0, len(workers))
	for _, w := range workers {
		rows = append(rows, models.Row{
			"id":       w.ID,
			"name":     w.Name,
			"idNumber": w.IDNumber,
			"farmId":   w.FarmID,
		})
	}
	return rows
}

// DecodeWorkers turns rows into workers.
func (c Codec) DecodeWorkers(rows []models.Row) ([]models.Worker, []models.Row, error) {
	return decodeRows(c, models.CollectionWorkers, rows, func(row models.Row) (models.Worker, error) {
		var (
			w   models.Worker
			err error
		)
		if w.ID, err = requireID(row); err != nil {
			return w, err
		}
		w.Name = parseString(row["name"])
		if w.Name == "" {
			return w, errors.New("missing name")
		}
		w.IDNumber = parseString(row["idNumber"])
		w.FarmID = parseString(row["farmId"])
		return w, nil
	})
}

// EncodeTransactions turns transactions into rows.
func (c Codec) EncodeTransactions(txns []models.Transaction) []models.Row {
	rows := make([]models.Row, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, models.Row{
			"date":       formatDate(t.Date),
			"workerId":   t.WorkerID,
			"workerName": t.WorkerName,
			"itemId":     t.ItemID,
			"itemName":   t.ItemName,
			"quantity":   t.Quantity,
			"price":      amount(t.Price),
			"total":      amount(t.Total),
		})
	}
	return rows
}

// DecodeTransactions turns rows into transactions.
func (c Codec) DecodeTransactions(rows []models.Row) ([]models.Transaction, []models.Row, error) {
	return decodeRows(c, models.CollectionTransactions, rows, func(row models.Row) (models.Transaction, error) {
		var (
			t   models.Transaction
			err error
		)
		if t.Date, err = parseDate(row["date"], c.loc); err != nil {
			return t, fmt.Errorf("date: %w", err)
		}
		if t.WorkerID, err = parseInt(row["workerId"]); err != nil {
			return t, fmt.Errorf("workerId: %w", err)
		}
		t.WorkerName = parseString(row["workerName"])
		if t.ItemID, err = parseInt(row["itemId"]); err != nil {
			return t, fmt.Errorf("itemId: %w", err)
		}
		t.ItemName = parseString(row["itemName"])
		if t.Quantity, err = parseInt(row["quantity"]); err != nil {
			return t, fmt.Errorf("quantity: %w", err)
		}
		if t.Price, err = parseDecimal(row["price"]); err != nil {
			return t, fmt.Errorf("price: %w", err)
		}
		if t.Total, err = parseDecimal(row["total"]); err != nil {
			return t, fmt.Errorf("total: %w", err)
		}
		return t, nil
	})
}

// EncodeStocktakes turns stocktakes into rows. The item table is stored as
// JSON text in a single cell.
func (c Codec) EncodeStocktakes(stocktakes []models.Stocktake) []models.Row {
	rows := make([]models.Row, 0, len(stocktakes))
	for _, st := range stocktakes {
		items := st.Items
		if items == nil {
			items = []models.StocktakeItem{}
		}
		payload, err := json.Marshal(items)
		if err != nil {
			c.logger.Error("encode stocktake items", zap.Int("stocktake_id", st.ID), zap.Error(err))
			payload = []byte("[]")
		}
		rows = append(rows, models.Row{
			"id":                 st.ID,
			"date":               formatDate(st.Date),
			"type":               string(st.Type),
			"items":              string(payload),
			"totalVarianceValue": amount(st.TotalVarianceValue),
		})
	}
	return rows
}

// DecodeStocktakes turns rows into stocktakes.
func (c Codec) DecodeStocktakes(rows []models.Row) ([]models.Stocktake, []models.Row, error) {
	return decodeRows(c, models.CollectionStocktakes, rows, func(row models.Row) (models.Stocktake, error) {
		var (
			st  models.Stocktake
			err error
		)
		if st.ID, err = requireID(row); err != nil {
			return st, err
		}
		if st.Date, err = parseDate(row["date"], c.loc); err != nil {
			return st, fmt.Errorf("date: %w", err)
		}
		st.Type = models.StocktakeType(strings.ToLower(parseString(row["type"])))
		if st.Items, err = decodeStocktakeItems(row["items"]); err != nil {
			return st, fmt.Errorf("items: %w", err)
		}
		if st.TotalVarianceValue, err = parseDecimal(row["totalVarianceValue"]); err != nil {
			return st, fmt.Errorf("totalVarianceValue: %w", err)
		}
		return st, nil
	})
}

func decodeStocktakeItems(value any) ([]models.StocktakeItem, error) {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return []models.StocktakeItem{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []models.StocktakeItem{}, nil
		}
		raw = []byte(v)
	default:
		// Some stores hand nested values back already parsed.
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	var items []models.StocktakeItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// EncodeReceipts turns receipts into rows.
func (c Codec) EncodeReceipts(receipts []models.Receipt) []models.Row {
	rows := make([]models.Row, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, models.Row{
			"id":       r.ID,
			"date":     formatDate(r.Date),
			"itemId":   r.ItemID,
			"itemName": r.ItemName,
			"quantity": r.Quantity,
		})
	}
	return rows
}

// DecodeReceipts turns rows into receipts.
func (c Codec) DecodeReceipts(rows []models.Row) ([]models.Receipt, []models.Row, error) {
	return decodeRows(c, models.CollectionReceipts, rows, func(row models.Row) (models.Receipt, error) {
		var (
			r   models.Receipt
			err error
		)
		if r.ID, err = requireID(row); err != nil {
			return r, err
		}
		if r.Date, err = parseDate(row["date"], c.loc); err != nil {
			return r, fmt.Errorf("date: %w", err)
		}
		if r.ItemID, err = parseInt(row["itemId"]); err != nil {
			return r, fmt.Errorf("itemId: %w", err)
		}
		r.ItemName = parseString(row["itemName"])
		if r.Quantity, err = parseInt(row["quantity"]); err != nil {
			return r, fmt.Errorf("quantity: %w", err)
		}
		return r, nil
	})
}
