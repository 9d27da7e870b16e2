package series

import (
	"strings"
	"testing"
)

func TestReadHistoryComma(t *testing.T) {
	input := "period,net_revenue,operating_expenses\n2024-01,1000,200\n2024-02,1100,210\n"

	rows, err := ReadHistory(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadHistory: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["period"] != "2024-01" || rows[0]["net_revenue"] != "1000" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
}

func TestReadHistorySemicolonFallback(t *testing.T) {
	input := "period;net_revenue;operating_expenses\n2024-01;1000;200\n"

	rows, err := ReadHistory(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadHistory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["net_revenue"] != "1000" {
		t.Fatalf("semicolon parse failed: %v", rows[0])
	}
}

func TestReadHistoryEmpty(t *testing.T) {
	rows, err := ReadHistory(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty input should not error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestReadHistoryRaggedRows(t *testing.T) {
	// Short rows leave missing cells absent; Normalize zero-fills them.
	input := "period,net_revenue,operating_expenses\n2024-01,1000\n"

	rows, err := ReadHistory(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadHistory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, ok := rows[0]["operating_expenses"]; ok {
		t.Fatalf("missing cell should be absent, got %q", rows[0]["operating_expenses"])
	}

	recs := Normalize(rows)
	if len(recs) != 1 || recs[0].OperatingExpenses != 0 {
		t.Fatalf("normalize should zero-fill the missing cell: %+v", recs)
	}
}
