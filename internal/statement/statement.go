// Package statement reads semicolon-delimited bank statement exports under a
// configured column mapping.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sift-dev/sift/internal/config"
	"github.com/sift-dev/sift/internal/model"
	"github.com/sift-dev/sift/internal/money"
)

// dateFormat is the statement date layout (day.month.year).
const dateFormat = "02.01.2006"

// Importer parses statement exports. Any malformed row fails the whole
// import; there is no partial-record recovery.
type Importer struct {
	columns config.ColumnMapping
}

// NewImporter creates an Importer for the given column mapping.
func NewImporter(columns config.ColumnMapping) *Importer {
	return &Importer{columns: columns}
}

// ReadFile reads and parses a statement file.
func (imp *Importer) ReadFile(path string) ([]model.Payment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	payments, err := imp.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return payments, nil
}

// Parse reads statement rows and returns payments in source order.
func (imp *Importer) Parse(r io.Reader) ([]model.Payment, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("statement has no header row")
	}

	cols, err := resolveColumns(records[0], imp.columns)
	if err != nil {
		return nil, err
	}

	var payments []model.Payment
	for i, rec := range records[1:] {
		p, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

type columnIndexes struct {
	date      int
	payee     int
	reference int
	amount    int
}

func resolveColumns(header []string, mapping config.ColumnMapping) (columnIndexes, error) {
	find := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("column %q not found in header", name)
	}

	var cols columnIndexes
	var err error
	if cols.date, err = find(mapping.Date); err != nil {
		return columnIndexes{}, err
	}
	if cols.payee, err = find(mapping.Payee); err != nil {
		return columnIndexes{}, err
	}
	if cols.reference, err = find(mapping.Reference); err != nil {
		return columnIndexes{}, err
	}
	if cols.amount, err = find(mapping.Amount); err != nil {
		return columnIndexes{}, err
	}
	return cols, nil
}

func parseRow(rec []string, cols columnIndexes) (model.Payment, error) {
	date, err := time.Parse(dateFormat, rec[cols.date])
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing date %q: %w", rec[cols.date], err)
	}

	amount, err := money.ParseMinorUnits(rec[cols.amount])
	if err != nil {
		return model.Payment{}, err
	}

	payee := rec[cols.payee]
	return model.Payment{
		Date:          date,
		Payee:         payee,
		PayeeFriendly: payee,
		Reference:     rec[cols.reference],
		Amount:        amount,
	}, nil
}
