package syncing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func parseString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		// Sheets hands numeric-looking text such as ID numbers back as numbers.
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func parseInt(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case json.Number:
		return parseInt(string(v))
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return 0, nil
		}
		if n, err := strconv.Atoi(str); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q as integer: %w", str, err)
		}
		return parseInt(f)
	default:
		return 0, fmt.Errorf("unsupported integer value %T", value)
	}
}

func parseDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(string(v))
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(str)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse %q as amount: %w", str, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount value %T", value)
	}
}

// parseDate accepts plain dates and full timestamps. The spreadsheet turns
// date text into date cells that come back as UTC timestamps, so timestamps
// are moved into loc before the calendar day is taken.
func parseDate(value any, loc *time.Location) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return models.CivilDate(v.In(loc)), nil
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return time.Time{}, fmt.Errorf("empty date")
		}
		if len(str) == len(models.DateLayout) {
			t, err := time.Parse(models.DateLayout, str)
			if err != nil {
				return time.Time{}, err
			}
			return t, nil
		}
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %q as date: %w", str, err)
		}
		return models.CivilDate(t.In(loc)), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %T", value)
	}
}

func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
