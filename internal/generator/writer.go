package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV serializes rows into transactions.csv under the provided
// directory, using the parser's canonical column names as the header.
func WriteCSV(rows []Row, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, "transactions.csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"transaction_id", "sender", "receiver", "amount", "timestamp"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.TransactionID,
			row.Sender,
			row.Receiver,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write row %s: %w", row.TransactionID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}
