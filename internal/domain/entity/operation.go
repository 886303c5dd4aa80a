package entity

import "time"

// Operation types.
const (
	OperationReceipt    = "Receipt"
	OperationDelivery   = "Delivery"
	OperationTransfer   = "Transfer"
	OperationAdjustment = "Adjustment"
)

// Operation statuses.
const (
	StatusDraft     = "Draft"
	StatusWaiting   = "Waiting"
	StatusReady     = "Ready"
	StatusDone      = "Done"
	StatusCancelled = "Cancelled"
)

// Operation a warehouse transaction (receipt, delivery, transfer, adjustment) with a lifecycle status.
type Operation struct {
	ID                  string
	ReferenceNumber     string // unique; doubles as idempotency key
	Type                string
	Status              string
	ScheduleDate        time.Time
	Contact             string
	SourceLocation      string
	DestinationLocation string
	Notes               string
	Responsible         string
	Items               []OperationItem
	CreatedBy           string
	DoneAt              *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OperationItem one line of an operation. Quantity is the demand; DoneQuantity what was processed.
type OperationItem struct {
	ProductID    string
	ProductName  string
	SKU          string
	Quantity     int
	DoneQuantity int
}

// IsValidOperationType reports whether t is a known operation type.
func IsValidOperationType(t string) bool {
	switch t {
	case OperationReceipt, OperationDelivery, OperationTransfer, OperationAdjustment:
		return true
	}
	return false
}

// IsValidOperationStatus reports whether s is a known operation status.
func IsValidOperationStatus(s string) bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// IsClosed reports whether the operation reached a terminal status.
func (o *Operation) IsClosed() bool {
	return o.Status == StatusDone || o.Status == StatusCancelled
}

// IsLate reports whether an open operation is scheduled before the day of now.
func (o *Operation) IsLate(now time.Time) bool {
	if o.IsClosed() {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	sy, sm, sd := o.ScheduleDate.Date()
	sched := time.Date(sy, sm, sd, 0, 0, 0, 0, now.Location())
	return sched.Before(today)
}
