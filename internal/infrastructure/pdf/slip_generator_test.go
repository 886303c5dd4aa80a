package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

func TestOperationSlip(t *testing.T) {
	op := &entity.Operation{
		ReferenceNumber: "WH/IN/0001",
		Type:            entity.OperationReceipt,
		Status:          entity.StatusReady,
		ScheduleDate:    time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Contact:         "TechGlobal",
		Items: []entity.OperationItem{
			{ProductID: "p1", ProductName: "NanoTech Chipset X1", SKU: "NC-X1", Quantity: 50, DoneQuantity: 48},
			{ProductID: "p2", ProductName: "Quantum Display 55", SKU: "QD-55", Quantity: 5},
		},
	}

	out, err := NewSlipGenerator("").OperationSlip(op)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestOperationSlip_Nil(t *testing.T) {
	_, err := NewSlipGenerator("Acme").OperationSlip(nil)
	assert.Error(t, err)
}
