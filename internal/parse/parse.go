// Package parse turns an uploaded transaction file (CSV, TSV, or Excel)
// into a deduplicated, time-sorted domain.TransactionTable. Every row-level
// defect is a soft error: the row is dropped and tallied, never raised as a
// request failure. Only file-shape problems — wrong extension, missing
// required columns, or zero survivors — fail the request.
package parse

import (
	"sort"
	"strings"

	"github.com/vanshika/muletrace/internal/domain"
	"github.com/vanshika/muletrace/internal/metrics"
)

// Parse is the package's single entry point. filename is used only to pick
// a reader by extension; the bytes are never touched again after that.
func Parse(filename string, data []byte) (domain.TransactionTable, error) {
	raw, err := readFile(filename, data)
	if err != nil {
		return domain.TransactionTable{}, err
	}

	index, missing := columnIndex(raw.Headers)
	if len(missing) > 0 {
		return domain.TransactionTable{}, errMissingColumns(missing)
	}

	var (
		rows    []domain.Transaction
		dropped domain.DropCounts
		seen    = make(map[string]struct{}, len(raw.Rows))
	)

	for _, record := range raw.Rows {
		tx, reason, ok := coerceRow(record, index)
		if !ok {
			bump(&dropped, reason)
			continue
		}
		if _, duplicate := seen[tx.ID]; duplicate {
			dropped.DuplicateID++
			continue
		}
		seen[tx.ID] = struct{}{}
		rows = append(rows, tx)
	}

	emitDropMetrics(dropped)

	if len(rows) == 0 {
		return domain.TransactionTable{}, errNoValidTransactions()
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})

	return domain.TransactionTable{Rows: rows, Dropped: dropped}, nil
}

type dropReason int

const (
	dropNone dropReason = iota
	dropBadAmount
	dropBadTimestamp
	dropMissingEndpoint
	dropSelfLoop
)

// coerceRow converts one raw record into a Transaction. The returned reason
// is only meaningful when ok is false.
func coerceRow(record []string, index map[string]int) (domain.Transaction, dropReason, bool) {
	get := func(field string) string {
		i, ok := index[field]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	id := strings.TrimSpace(get(fieldTransactionID))
	sender := strings.TrimSpace(get(fieldSender))
	receiver := strings.TrimSpace(get(fieldReceiver))

	if id == "" || sender == "" || receiver == "" {
		return domain.Transaction{}, dropMissingEndpoint, false
	}
	if sender == receiver {
		return domain.Transaction{}, dropSelfLoop, false
	}

	amount, ok := parseAmount(get(fieldAmount))
	if !ok {
		return domain.Transaction{}, dropBadAmount, false
	}

	ts, ok := parseTimestamp(get(fieldTimestamp))
	if !ok {
		return domain.Transaction{}, dropBadTimestamp, false
	}

	return domain.Transaction{
		ID:        id,
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Timestamp: ts,
	}, dropNone, true
}

func bump(d *domain.DropCounts, reason dropReason) {
	switch reason {
	case dropBadAmount:
		d.BadAmount++
	case dropBadTimestamp:
		d.BadTimestamp++
	case dropMissingEndpoint:
		d.MissingEndpoint++
	case dropSelfLoop:
		d.SelfLoop++
	}
}

func emitDropMetrics(d domain.DropCounts) {
	metrics.RecordRowsDropped("bad_amount", d.BadAmount)
	metrics.RecordRowsDropped("bad_timestamp", d.BadTimestamp)
	metrics.RecordRowsDropped("missing_endpoint", d.MissingEndpoint)
	metrics.RecordRowsDropped("self_loop", d.SelfLoop)
	metrics.RecordRowsDropped("duplicate_id", d.DuplicateID)
}
