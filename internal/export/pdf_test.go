package export

import (
	"bytes"
	"fmt"
	"testing"

	"fintrack/internal/core"
)

func TestWritePDFProducesDocument(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Type: "income", Category: "salary", Amount: 1000, Date: "2024-01-01", Description: "pay"},
	}

	var b bytes.Buffer
	if err := WritePDF(&b, txs); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestWritePDFPaginates(t *testing.T) {
	// 40 rows fit a Letter page at 20pt per row; 80 must not.
	var short, long []core.Transaction
	for i := 0; i < 80; i++ {
		tx := core.Transaction{ID: int64(i + 1), Type: "expense", Category: "food", Amount: 1, Date: fmt.Sprintf("2024-01-%02d", i%28+1)}
		long = append(long, tx)
		if i < 10 {
			short = append(short, tx)
		}
	}

	var a, b bytes.Buffer
	if err := WritePDF(&a, short); err != nil {
		t.Fatalf("WritePDF(short): %v", err)
	}
	if err := WritePDF(&b, long); err != nil {
		t.Fatalf("WritePDF(long): %v", err)
	}

	pages := func(data []byte) int { return bytes.Count(data, []byte("/Type /Page\n")) }
	if got := pages(a.Bytes()); got != 1 {
		t.Errorf("short export has %d pages, want 1", got)
	}
	if got := pages(b.Bytes()); got < 2 {
		t.Errorf("long export has %d pages, want >= 2", got)
	}
}
