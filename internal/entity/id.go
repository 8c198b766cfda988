package entity

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	receiptIDPrefix = "RCPT-"
	paymentIDPrefix = "PAY-"
)

// NewClientID returns a short uppercase code, e.g. "3F2A9C1B".
func NewClientID() string {
	return strings.ToUpper(uuid.Must(uuid.NewV4()).String()[:8])
}

// NewReceiptID returns a prefixed code, e.g. "RCPT-8A41FC".
func NewReceiptID() string {
	return receiptIDPrefix + strings.ToUpper(uuid.Must(uuid.NewV4()).String()[:6])
}

// NewPaymentID returns a prefixed code, e.g. "PAY-0B7D2E".
func NewPaymentID() string {
	return paymentIDPrefix + strings.ToUpper(uuid.Must(uuid.NewV4()).String()[:6])
}

func NewTrashID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// NewTimestamp stamps records with the current UTC time. Timestamps are
// stored as text so trash snapshots can be reinserted byte for byte.
func NewTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
