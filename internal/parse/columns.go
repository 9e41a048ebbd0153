package parse

import "strings"

// canonical field names.
const (
	fieldTransactionID = "transaction_id"
	fieldSender        = "sender"
	fieldReceiver      = "receiver"
	fieldAmount        = "amount"
	fieldTimestamp     = "timestamp"
)

// columnAliases maps every incoming header spelling (lowercased, trimmed) to
// the canonical field it represents, including the canonical name itself.
var columnAliases = map[string]string{
	"transaction_id":     fieldTransactionID,
	"txn_id":             fieldTransactionID,
	"tx_id":              fieldTransactionID,
	"id":                 fieldTransactionID,
	"transaction_number": fieldTransactionID,

	"sender":       fieldSender,
	"sender_id":    fieldSender,
	"from_account": fieldSender,
	"source_id":    fieldSender,
	"from_id":      fieldSender,
	"payer_id":     fieldSender,

	"receiver":       fieldReceiver,
	"receiver_id":    fieldReceiver,
	"to_account":     fieldReceiver,
	"destination_id": fieldReceiver,
	"to_id":          fieldReceiver,
	"payee_id":       fieldReceiver,

	"amount":             fieldAmount,
	"value":              fieldAmount,
	"transaction_amount": fieldAmount,
	"sum":                fieldAmount,

	"timestamp":        fieldTimestamp,
	"date":             fieldTimestamp,
	"datetime":         fieldTimestamp,
	"transaction_date": fieldTimestamp,
	"time":             fieldTimestamp,
	"created_at":       fieldTimestamp,
}

var requiredFields = []string{fieldTransactionID, fieldSender, fieldReceiver, fieldAmount, fieldTimestamp}

// columnIndex maps each canonical field to the index of the first incoming
// column that resolves to it, and reports which canonical fields are
// unmatched.
func columnIndex(headers []string) (map[string]int, []string) {
	index := make(map[string]int, len(requiredFields))
	for i, raw := range headers {
		name := strings.ToLower(strings.TrimSpace(raw))
		canonical, ok := columnAliases[name]
		if !ok {
			continue
		}
		if _, exists := index[canonical]; exists {
			continue // first match wins
		}
		index[canonical] = i
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := index[field]; !ok {
			missing = append(missing, field)
		}
	}
	return index, missing
}
