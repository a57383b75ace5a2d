package model

import "time"

// NotificationStatus describes the outcome of the best-effort phase.
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationSkipped NotificationStatus = "skipped"
)

// NotificationOutcome reports what happened after the order was committed.
type NotificationOutcome struct {
	Status    NotificationStatus
	Recipient string
	Warning   string
}

// Placement is the result of a successful order placement. Order is always
// set; Notification never turns the placement into a failure.
type Placement struct {
	Order        *ComposedOrder
	Notification NotificationOutcome
}

// DispatchReceipt confirms a delivery note left the mail transport.
type DispatchReceipt struct {
	OrderID    int64
	Recipient  string
	Subject    string
	Attachment string
	SentAt     time.Time
}
