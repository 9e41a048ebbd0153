package domain

import "time"

// Transaction is one canonicalized row of the ingested transfer table.
type Transaction struct {
	ID        string    `json:"transaction_id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionTable is the deduplicated, time-sorted output of the parser.
type TransactionTable struct {
	Rows    []Transaction
	Dropped DropCounts
}

// DropCounts tallies soft-error rows skipped while parsing, by reason.
// Never surfaced in a Report; only logged and exported as metrics.
type DropCounts struct {
	BadAmount       int
	BadTimestamp    int
	MissingEndpoint int
	SelfLoop        int
	DuplicateID     int
}

// Total returns the sum of every drop reason.
func (d DropCounts) Total() int {
	return d.BadAmount + d.BadTimestamp + d.MissingEndpoint + d.SelfLoop + d.DuplicateID
}
