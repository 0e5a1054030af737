// Package bulk turns uploaded CSV or JSON batches into validated positional
// rows. Inserting the rows is left to the storage layer.
package bulk

import (
	"fmt"
	"strings"
)

// Layout describes the positional columns of one entity's import file.
type Layout struct {
	Entity  string
	Columns []string

	// MinColumns..MaxColumns is the accepted cell count; equal values mean an
	// exact count.
	MinColumns int
	MaxColumns int

	// Fields are the JSON keys matching Columns position by position.
	Fields []string
	// Nullable lists JSON keys whose null values are kept (as "null") so the
	// row survives and the value is coerced later.
	Nullable []string
	// FromObject overrides the Fields mapping for JSON input.
	FromObject func(obj map[string]string) []string

	// Check runs entity-specific validation on a row that already has the
	// right shape.
	Check func(row []string) error
}

type Rejection struct {
	Row    int      `json:"row"`
	Reason string   `json:"reason"`
	Cells  []string `json:"cells,omitempty"`
}

type Report struct {
	Entity      string      `json:"entity"`
	Inserted    int         `json:"inserted"`
	InsertedIDs []int       `json:"insertedIds"`
	Rejected    []Rejection `json:"rejected"`
}

func NewReport(entity string, rejected []Rejection) *Report {
	if rejected == nil {
		rejected = []Rejection{}
	}
	return &Report{Entity: entity, InsertedIDs: []int{}, Rejected: rejected}
}

// Validate splits rows into accepted and rejected ones. Row numbers in the
// rejections are 1-based positions in the input. A leading header row that
// repeats the column names is skipped silently.
func (l Layout) Validate(rows [][]string) ([][]string, []Rejection) {
	accepted := make([][]string, 0, len(rows))
	var rejected []Rejection

	for i, row := range rows {
		if i == 0 && l.isHeader(row) {
			continue
		}

		cells := trimCells(row)
		if err := l.checkRow(cells); err != nil {
			rejected = append(rejected, Rejection{Row: i + 1, Reason: err.Error(), Cells: row})
			continue
		}
		accepted = append(accepted, cells)
	}

	return accepted, rejected
}

func (l Layout) checkRow(cells []string) error {
	switch {
	case l.MinColumns == l.MaxColumns && len(cells) != l.MinColumns:
		return fmt.Errorf("expected %d columns, got %d", l.MinColumns, len(cells))
	case len(cells) < l.MinColumns:
		return fmt.Errorf("expected at least %d columns, got %d", l.MinColumns, len(cells))
	case l.MaxColumns > 0 && len(cells) > l.MaxColumns:
		return fmt.Errorf("expected at most %d columns, got %d", l.MaxColumns, len(cells))
	}

	for i, cell := range cells {
		if cell == "" {
			return fmt.Errorf("empty value in column %q", l.columnName(i))
		}
	}

	if l.Check != nil {
		return l.Check(cells)
	}
	return nil
}

func (l Layout) isHeader(row []string) bool {
	if len(row) < l.MinColumns {
		return false
	}
	for i := 0; i < l.MinColumns; i++ {
		if !strings.EqualFold(strings.TrimSpace(row[i]), l.Columns[i]) {
			return false
		}
	}
	return true
}

func (l Layout) columnName(i int) string {
	if i < len(l.Columns) {
		return l.Columns[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
