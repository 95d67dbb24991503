package models

// Collection names a sheet in the remote tabular store.
type Collection string

const (
	CollectionStock        Collection = "Stock"
	CollectionWorkers      Collection = "Workers"
	CollectionTransactions Collection = "Transactions"
	CollectionStocktakes   Collection = "Stocktakes"
	CollectionReceipts     Collection = "Receipts"
)

// Collections lists every collection the shop persists.
func Collections() []Collection {
	return []Collection{CollectionStock, CollectionWorkers, CollectionTransactions, CollectionStocktakes, CollectionReceipts}
}

// Row is one sheet row keyed by column header.
type Row map[string]any
