package parse

import (
	"strings"
	"testing"
)

func csvBytes(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestParse_HappyPath(t *testing.T) {
	data := csvBytes(
		"transaction_id,sender,receiver,amount,timestamp",
		"TX1,A,B,100.00,2025-01-01 09:00:00",
		"TX2,B,C,50.00,2025-01-01 10:00:00",
	)

	table, err := Parse("transactions.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].ID != "TX1" || table.Rows[1].ID != "TX2" {
		t.Errorf("expected rows sorted by timestamp ascending, got %v", table.Rows)
	}
	if table.Dropped.Total() != 0 {
		t.Errorf("expected no drops, got %+v", table.Dropped)
	}
}

func TestParse_HeaderAliasesResolve(t *testing.T) {
	data := csvBytes(
		"txn_id,from_account,to_account,value,date",
		"TX1,A,B,10,2025-01-01",
	)
	table, err := Parse("transactions.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
}

func TestParse_MissingColumns(t *testing.T) {
	data := csvBytes(
		"sender,receiver,amount",
		"A,B,10",
	)
	_, err := Parse("transactions.csv", data)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindMissingColumns {
		t.Fatalf("expected MissingColumns error, got %v", err)
	}
	if len(perr.Columns) != 2 { // transaction_id, timestamp
		t.Errorf("expected 2 missing columns, got %v", perr.Columns)
	}
}

func TestParse_UnsupportedFileType(t *testing.T) {
	_, err := Parse("transactions.pdf", []byte("whatever"))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindUnsupportedFileType {
		t.Fatalf("expected UnsupportedFileType error, got %v", err)
	}
}

func TestParse_DropsInvalidRowsButSurvivesOnValidRemainder(t *testing.T) {
	data := csvBytes(
		"transaction_id,sender,receiver,amount,timestamp",
		"TX1,A,B,100,2025-01-01 09:00:00", // valid
		"TX2,A,B,-5,2025-01-01 09:05:00",  // bad amount
		"TX3,A,B,not-a-number,2025-01-01 09:06:00", // bad amount
		"TX4,A,B,20,not-a-date", // bad timestamp
		"TX5,A,A,20,2025-01-01 09:07:00", // self loop
		"TX6,,B,20,2025-01-01 09:08:00", // missing endpoint
	)

	table, err := Parse("transactions.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(table.Rows))
	}
	if table.Dropped.BadAmount != 2 {
		t.Errorf("expected 2 bad-amount drops, got %d", table.Dropped.BadAmount)
	}
	if table.Dropped.BadTimestamp != 1 {
		t.Errorf("expected 1 bad-timestamp drop, got %d", table.Dropped.BadTimestamp)
	}
	if table.Dropped.SelfLoop != 1 {
		t.Errorf("expected 1 self-loop drop, got %d", table.Dropped.SelfLoop)
	}
	if table.Dropped.MissingEndpoint != 1 {
		t.Errorf("expected 1 missing-endpoint drop, got %d", table.Dropped.MissingEndpoint)
	}
}

func TestParse_DuplicateTransactionIDFirstWins(t *testing.T) {
	data := csvBytes(
		"transaction_id,sender,receiver,amount,timestamp",
		"TX1,A,B,100,2025-01-01 09:00:00",
		"TX1,C,D,999,2025-01-01 10:00:00",
	)

	table, err := Parse("transactions.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row after dedup, got %d", len(table.Rows))
	}
	if table.Rows[0].Sender != "A" {
		t.Errorf("expected first occurrence to win, got sender %q", table.Rows[0].Sender)
	}
	if table.Dropped.DuplicateID != 1 {
		t.Errorf("expected 1 duplicate drop, got %d", table.Dropped.DuplicateID)
	}
}

func TestParse_NoValidTransactions(t *testing.T) {
	data := csvBytes(
		"transaction_id,sender,receiver,amount,timestamp",
		"TX1,A,B,-5,2025-01-01 09:00:00",
	)
	_, err := Parse("transactions.csv", data)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindNoValidTransactions {
		t.Fatalf("expected NoValidTransactions error, got %v", err)
	}
}

func TestParse_TSVSupported(t *testing.T) {
	data := []byte("transaction_id\tsender\treceiver\tamount\ttimestamp\nTX1\tA\tB\t10\t2025-01-01 09:00:00\n")
	table, err := Parse("transactions.tsv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
}

func TestParseTimestamp_MultipleFormats(t *testing.T) {
	cases := []string{
		"2025-01-01 09:00:00",
		"2025-01-01 09:00:00.123456",
		"2025/01/01 09:00:00",
		"01-01-2025 09:00:00",
		"01/01/2025 09:00:00",
		"2025-01-01",
		"01-01-2025",
		"01/01/2025",
	}
	for _, c := range cases {
		if _, ok := parseTimestamp(c); !ok {
			t.Errorf("expected %q to parse", c)
		}
	}
	if _, ok := parseTimestamp("not-a-date"); ok {
		t.Errorf("expected garbage timestamp to fail")
	}
}

func TestParseAmount_RejectsNonPositive(t *testing.T) {
	if _, ok := parseAmount("0"); ok {
		t.Errorf("expected zero amount to be rejected")
	}
	if _, ok := parseAmount("-10"); ok {
		t.Errorf("expected negative amount to be rejected")
	}
	if v, ok := parseAmount("$1,250.50"); !ok || v != 1250.50 {
		t.Errorf("expected formatted amount to parse to 1250.50, got %v ok=%v", v, ok)
	}
}
