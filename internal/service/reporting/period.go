package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// DateRange is an inclusive period filter compared on calendar days.
// A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange parses optional YYYY-MM-DD bounds. Blank values stay open.
func NewDateRange(start, end string) (DateRange, error) {
	var r DateRange

	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		r.Start = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.Parse(models.DateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		r.End = &t
	}

	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return r, nil
}

// Between builds a closed range over the calendar days of start and end.
func Between(start, end time.Time) DateRange {
	s := models.CivilDate(start)
	e := models.CivilDate(end)
	return DateRange{Start: &s, End: &e}
}

// Contains reports whether the calendar day of t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := models.CivilDate(t)
	if r.Start != nil && day.Before(models.CivilDate(*r.Start)) {
		return false
	}
	if r.End != nil && day.After(models.CivilDate(*r.End)) {
		return false
	}
	return true
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.Start == nil && r.End == nil
}

// FilterTransactions keeps the transactions dated inside r, in their
// original order.
func FilterTransactions(txns []models.Transaction, r DateRange) []models.Transaction {
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}
