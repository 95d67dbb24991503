package sheets

import (
	"fmt"
	"sort"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// rowsFromValues turns a value grid whose first line is the header into rows.
// Lines with no values at all are skipped.
func rowsFromValues(values [][]interface{}) []models.Row {
	if len(values) == 0 {
		return []models.Row{}
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = fmt.Sprint(h)
	}

	rows := make([]models.Row, 0, len(values)-1)
	for _, line := range values[1:] {
		row := make(models.Row, len(headers))
		filled := false
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(line) {
				row[header] = line[i]
				if fmt.Sprint(line[i]) != "" {
					filled = true
				}
			} else {
				row[header] = ""
			}
		}
		if filled {
			rows = append(rows, row)
		}
	}
	return rows
}

// valuesFromRows builds a header line plus one line per row. The header is the
// sorted union of all row keys; missing cells are written empty.
func valuesFromRows(rows []models.Row) [][]interface{} {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var headers []string
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				headers = append(headers, key)
			}
		}
	}
	sort.Strings(headers)

	values := make([][]interface{}, 0, len(rows)+1)
	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	values = append(values, head)

	for _, row := range rows {
		line := make([]interface{}, len(headers))
		for i, h := range headers {
			v, ok := row[h]
			if !ok || v == nil {
				v = ""
			}
			line[i] = v
		}
		values = append(values, line)
	}
	return values
}
