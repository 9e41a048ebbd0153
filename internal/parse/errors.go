package parse

import "fmt"

// Kind identifies the machine-stable error taxonomy the HTTP layer switches
// on to pick a status code (see §7 of the spec).
type Kind string

const (
	KindUnsupportedFileType Kind = "UnsupportedFileType"
	KindMissingColumns      Kind = "MissingColumns"
	KindNoValidTransactions Kind = "NoValidTransactions"
	KindParseError          Kind = "ParseError"
)

// Error is the typed input-shape error surfaced to callers. All are client
// errors (HTTP 400 at the transport); nothing in this package raises a
// 500-class error.
type Error struct {
	Kind    Kind
	Detail  string
	Columns []string // populated only for KindMissingColumns
}

func (e *Error) Error() string {
	if len(e.Columns) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Kind, e.Detail, e.Columns)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func errUnsupportedFileType(filename string) error {
	return &Error{Kind: KindUnsupportedFileType, Detail: fmt.Sprintf("unsupported file type for %q", filename)}
}

func errMissingColumns(columns []string) error {
	return &Error{
		Kind:    KindMissingColumns,
		Detail:  "missing required columns",
		Columns: columns,
	}
}

func errNoValidTransactions() error {
	return &Error{Kind: KindNoValidTransactions, Detail: "no valid transaction rows found after filtering"}
}

func errParse(detail string) error {
	return &Error{Kind: KindParseError, Detail: detail}
}
