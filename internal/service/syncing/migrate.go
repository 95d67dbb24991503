package syncing

import (
	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// normalize upgrades rows written by earlier versions of the shop so that the
// decoders only ever see the current column set. It runs once per row on load.
//
// Earlier stock rows carried a single "price" column and no cost price, and
// the spreadsheet web app writes zero values as empty cells.
func normalize(collection models.Collection, row models.Row) models.Row {
	out := make(models.Row, len(row))
	for k, v := range row {
		out[k] = v
	}

	switch collection {
	case models.CollectionStock:
		if isBlank(out["sellPrice"]) && !isBlank(out["price"]) {
			out["sellPrice"] = out["price"]
		}
		delete(out, "price")
		if isBlank(out["costPrice"]) {
			out["costPrice"] = 0.0
		}
		if !models.Category(parseString(out["category"])).Valid() {
			out["category"] = string(models.CategoryOther)
		}
	case models.CollectionWorkers:
		// The first worker sheet used "contact" where farm ids now live.
		if isBlank(out["farmId"]) && !isBlank(out["contact"]) {
			out["farmId"] = out["contact"]
		}
		delete(out, "contact")
	case models.CollectionTransactions:
		if isBlank(out["total"]) {
			price, errPrice := parseDecimal(out["price"])
			qty, errQty := parseInt(out["quantity"])
			if errPrice == nil && errQty == nil {
				out["total"] = amount(price.Mul(decimalFromInt(qty)))
			}
		}
	case models.CollectionStocktakes:
		if isBlank(out["type"]) {
			out["type"] = string(models.StocktakeMonthly)
		}
	}

	return out
}
