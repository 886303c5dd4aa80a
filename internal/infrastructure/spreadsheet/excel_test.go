package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for r, row := range rows {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadProducts(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Name", "SKU", "Category", "Stock", "Min Stock", "Price", "Supplier"},
		{"NanoTech Chipset X1", "NC-X1", "electronics", 154, 20, 299.99, "TechGlobal"},
		{"", "", "", "", "", "", ""},
		{"Quantum Display", "QD-55", "Displays", 12, 15, "1,299.00", ""},
	})

	list, err := NewProductCodec().ReadProducts(buf)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "NC-X1", list[0].SKU)
	assert.Equal(t, 154, list[0].Stock)
	assert.Equal(t, 20, list[0].MinStock)
	assert.True(t, decimal.RequireFromString("299.99").Equal(list[0].Price))
	assert.Equal(t, "TechGlobal", list[0].Supplier)
	assert.True(t, decimal.NewFromInt(1299).Equal(list[1].Price))
}

func TestReadProducts_Errors(t *testing.T) {
	_, err := NewProductCodec().ReadProducts(bytes.NewBufferString("not a workbook"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	buf := workbook(t, [][]any{{"name", "category"}, {"A", "B"}})
	_, err = NewProductCodec().ReadProducts(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sku column is required")

	buf = workbook(t, [][]any{{"name", "sku", "category", "stock"}, {"A", "A-1", "B", "lots"}})
	_, err = NewProductCodec().ReadProducts(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteThenRead(t *testing.T) {
	var buf bytes.Buffer
	err := NewProductCodec().WriteProducts(&buf, []dto.ProductResponse{{
		Name: "NanoTech Chipset X1", SKU: "NC-X1", Category: "Electronics", Stock: 154, MinStock: 20,
		Price: decimal.RequireFromString("299.99"), Unit: "pcs", Status: "In Stock",
	}})
	require.NoError(t, err)

	list, err := NewProductCodec().ReadProducts(&buf)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "NC-X1", list[0].SKU)
	assert.Equal(t, "pcs", list[0].Unit)
}
