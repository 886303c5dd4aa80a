// Package spreadsheet reads and writes the product catalog as .xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// Columns header row written on export and recognised on import.
var Columns = []string{"name", "sku", "category", "stock", "minStock", "price", "unit", "location", "supplier", "description"}

// aliases extra header spellings accepted on import, keyed by normalised header.
var aliases = map[string]string{
	"productname":   "name",
	"product":       "name",
	"minstocklevel": "minStock",
	"minimumstock":  "minStock",
	"min":           "minStock",
	"unitprice":     "price",
	"unitofmeasure": "unit",
	"uom":           "unit",
	"supplierinfo":  "supplier",
	"quantity":      "stock",
	"qty":           "stock",
}

const sheetName = "Products"

// ProductCodec implements the catalog import/export port with excelize.
type ProductCodec struct{}

// NewProductCodec builds the codec.
func NewProductCodec() *ProductCodec { return &ProductCodec{} }

// ReadProducts parses the first sheet: a header row then one product per row.
// Blank rows are skipped. Cell errors are reported with their 1-based row number.
func (ProductCodec) ReadProducts(r io.Reader) ([]dto.ProductRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable .xlsx file", domain.ErrInvalidInput)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet needs a header row and at least one product", domain.ErrInvalidInput)
	}

	index := headerIndex(rows[0])
	for _, required := range []string{"name", "sku", "category"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrInvalidInput, required)
		}
	}

	out := make([]dto.ProductRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if isBlank(row) {
			continue
		}

		stock, err := intCell(cell("stock"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: stock: %v", domain.ErrInvalidInput, rowNum, err)
		}
		minStock, err := intCell(cell("minStock"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: minStock: %v", domain.ErrInvalidInput, rowNum, err)
		}
		price := decimal.Zero
		if s := cell("price"); s != "" {
			price, err = decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: price %q is not a number", domain.ErrInvalidInput, rowNum, s)
			}
		}

		out = append(out, dto.ProductRequest{
			Name:        cell("name"),
			SKU:         cell("sku"),
			Category:    cell("category"),
			Stock:       stock,
			MinStock:    minStock,
			Price:       price,
			Unit:        cell("unit"),
			Location:    cell("location"),
			Supplier:    cell("supplier"),
			Description: cell("description"),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: sheet has no product rows", domain.ErrInvalidInput)
	}
	return out, nil
}

// WriteProducts writes the catalog to w as a single-sheet workbook.
func (ProductCodec) WriteProducts(w io.Writer, products []dto.ProductResponse) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := append(append([]string{}, Columns...), "status")
	for i, h := range header {
		if err := f.SetCellValue(sheetName, cellName(i, 1), h); err != nil {
			return err
		}
	}
	for r, p := range products {
		row := r + 2
		price, _ := p.Price.Float64()
		values := []any{p.Name, p.SKU, p.Category, p.Stock, p.MinStock, price, p.Unit, p.Location, p.Supplier, p.Description, p.Status}
		for c, v := range values {
			if err := f.SetCellValue(sheetName, cellName(c, row), v); err != nil {
				return err
			}
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return f.Write(w)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func headerIndex(header []string) map[string]int {
	canonical := make(map[string]string, len(Columns))
	for _, c := range Columns {
		canonical[normalize(c)] = c
	}
	index := make(map[string]int)
	for i, h := range header {
		key := normalize(h)
		col, ok := canonical[key]
		if !ok {
			col, ok = aliases[key]
		}
		if !ok {
			continue
		}
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	return index
}

func normalize(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func intCell(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
