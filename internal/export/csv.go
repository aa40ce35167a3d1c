// Package export renders the full transaction list as CSV or PDF.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

const csvHeader = "ID,Type,Category,Amount,Date,Description\n"

// WriteCSV streams the transactions as CSV in list order. Values are raw
// comma joins with no quoting: a field containing a comma corrupts the
// row. That is the documented export format, so encoding/csv (which would
// quote) is deliberately not used here.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	if _, err := io.WriteString(w, csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		row := strings.Join([]string{
			strconv.FormatInt(t.ID, 10),
			t.Type,
			t.Category,
			core.FormatAmount(t.Amount),
			t.Date,
			t.Description,
		}, ",")
		if _, err := io.WriteString(w, row+"\n"); err != nil {
			return fmt.Errorf("write csv row %d: %w", t.ID, err)
		}
	}
	return nil
}
