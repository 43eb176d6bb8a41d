package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/cooccur/internal/model"
)

// ItemsColumn is the header of the column holding comma-separated items.
const ItemsColumn = "Transaction"

// ErrMissingColumn is returned when a CSV has no Transaction column.
var ErrMissingColumn = errors.New("must contain a '" + ItemsColumn + "' column")

// ReadCSV reads baskets from a CSV whose Transaction column lists the items
// of each basket. Blank baskets are skipped. The basket ID is taken from a
// "Transaction ID" column when present, otherwise the row number.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingColumn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	itemsCol, idCol := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case h == ItemsColumn:
			itemsCol = i
		case strings.EqualFold(h, "Transaction ID"):
			idCol = i
		}
	}
	if itemsCol < 0 {
		return nil, ErrMissingColumn
	}

	var txns []model.Transaction
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++

		if itemsCol >= len(record) {
			continue
		}
		items := splitItems(record[itemsCol])
		if len(items) == 0 {
			continue
		}

		id := strconv.Itoa(row)
		if idCol >= 0 && idCol < len(record) && strings.TrimSpace(record[idCol]) != "" {
			id = strings.TrimSpace(record[idCol])
		}
		txns = append(txns, model.NewTransaction(id, items...))
	}

	return txns, nil
}

func splitItems(field string) []string {
	parts := strings.Split(field, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
