package inventory

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ReferencePrefix warehouse document prefix per operation type (WH/IN, WH/OUT, ...).
func ReferencePrefix(opType string) string {
	switch opType {
	case entity.OperationReceipt:
		return "WH/IN"
	case entity.OperationDelivery:
		return "WH/OUT"
	case entity.OperationTransfer:
		return "WH/INT"
	default:
		return "WH/ADJ"
	}
}

// FormatReference builds "<prefix>/<seq>" with the sequence zero-padded to 4 digits.
func FormatReference(prefix string, seq int64) string {
	return fmt.Sprintf("%s/%04d", prefix, seq)
}
