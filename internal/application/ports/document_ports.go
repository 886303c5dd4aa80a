package ports

import (
	"io"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ProductSpreadsheet reads and writes the catalog as a workbook.
type ProductSpreadsheet interface {
	ReadProducts(r io.Reader) ([]dto.ProductRequest, error)
	WriteProducts(w io.Writer, products []dto.ProductResponse) error
}

// SlipRenderer renders the printable slip of an operation.
type SlipRenderer interface {
	OperationSlip(op *entity.Operation) ([]byte, error)
}
