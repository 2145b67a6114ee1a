package ecdc

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wonny/covid-europe/internal/contracts"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a category CSV into a country indexed table.
// Cells are kept as text; short rows are padded with blanks.
func Parse(category contracts.Category, data []byte, fetchedAt time.Time) (*contracts.Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: empty dataset", category)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s header: %w", category, err)
	}

	columns := make([]string, len(header))
	hasCountry := false
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if columns[i] == "country" {
			hasCountry = true
		}
	}
	if !hasCountry {
		return nil, fmt.Errorf("parse %s: missing country column", category)
	}

	var rows []contracts.Record
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", category, err)
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}

		rec := make(contracts.Record, len(columns))
		for i, col := range columns {
			if i < len(fields) {
				rec[col] = fields[i]
			} else {
				rec[col] = ""
			}
		}
		rows = append(rows, rec)
	}

	return contracts.NewTable(category, columns, rows, fetchedAt), nil
}
