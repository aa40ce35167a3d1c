package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"fintrack/internal/core"
)

// Fixed Letter-page layout, measured in points from the top of the page.
const (
	pdfTitleX   = 100.0
	pdfTitleY   = 42.0
	pdfHeaderX  = 50.0
	pdfHeaderY  = 62.0
	pdfFirstRow = 82.0
	pdfRowStep  = 20.0
	pdfBottomY  = 742.0 // past this the next row starts a new page
	pdfResetY   = 42.0
)

// WritePDF renders the transactions as a paginated Letter document: a
// title, a header line, then one line per transaction. Long descriptions
// are not wrapped and can overflow the right edge.
func WritePDF(w io.Writer, txs []core.Transaction) error {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()

	doc.Text(pdfTitleX, pdfTitleY, "Transactions Report")
	doc.Text(pdfHeaderX, pdfHeaderY, "ID    Type    Category    Amount    Date    Description")

	y := pdfFirstRow
	for _, t := range txs {
		line := fmt.Sprintf("%d  %s  %s  $%s  %s  %s",
			t.ID, t.Type, t.Category, core.FormatAmount(t.Amount), t.Date, t.Description)
		doc.Text(pdfHeaderX, y, line)
		y += pdfRowStep
		if y > pdfBottomY {
			doc.AddPage()
			y = pdfResetY
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
