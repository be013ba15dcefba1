package model

import "time"

// TransactionStatus indicates how a persisted transaction came to be.
type TransactionStatus string

const (
	// StatusUserConfirmed means the user accepted a parsed transaction as-is.
	StatusUserConfirmed TransactionStatus = "USER_CONFIRMED"
	// StatusUserModified means the user edited the parse before accepting.
	StatusUserModified TransactionStatus = "USER_MODIFIED"
)

// Transaction is a confirmed financial transaction as stored.
// Only the confirmation flow creates these; the extraction core never does.
type Transaction struct {
	Date         time.Time
	CreatedAt    time.Time
	ID           string
	CategoryID   string
	CategoryName string
	Note         string
	Status       TransactionStatus
	Source       ParseSource
	Type         CategoryType
	Amount       float64
	Confidence   float64
}
