// Package pdf renders the printable operation slip.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: operation type + status │ reference + schedule date  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ROUTE: contact / source -> destination / responsible        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: SKU | Product | Demand | Done                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR of the reference + notes + signature line        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// SlipGenerator renders operation slips with Maroto v2.
type SlipGenerator struct {
	company string
}

// NewSlipGenerator builds the generator. company is printed in the document metadata.
func NewSlipGenerator(company string) *SlipGenerator {
	return &SlipGenerator{company: nonEmpty(company, "StockMaster")}
}

// OperationSlip returns the PDF bytes of the operation's slip.
func (g *SlipGenerator) OperationSlip(op *entity.Operation) ([]byte, error) {
	if op == nil {
		return nil, fmt.Errorf("pdf: nil operation")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(op.Type+" "+op.ReferenceNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(routeRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(op.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(op.Items))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(op)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate slip: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(op *entity.Operation) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(op.Type, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Status: "+op.Status, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("OPERATION SLIP", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(op.ReferenceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Scheduled: "+op.ScheduleDate.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func routeRow(op *entity.Operation) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(nonEmpty(op.Contact, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("From: %s   |   To: %s   |   Responsible: %s",
				nonEmpty(op.SourceLocation, "-"),
				nonEmpty(op.DestinationLocation, "-"),
				nonEmpty(op.Responsible, "-"),
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Product", 5, align.Left),
		h("Demand", 2, align.Right),
		h("Done", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.OperationItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(nonEmpty(it.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(nonEmpty(it.ProductName, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.DoneQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(items []entity.OperationItem) core.Row {
	var demand, done int
	for _, it := range items {
		demand += it.Quantity
		done += it.DoneQuantity
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d line(s)", len(items)), props.Text{Size: 9, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(strconv.Itoa(demand), bold)),
		col.New(2).Add(text.New(strconv.Itoa(done), bold)),
	)
}

func footerRows(op *entity.Operation) []core.Row {
	notes := nonEmpty(op.Notes, "No notes.")
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(op.ReferenceNumber, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 8, Left: 3, Color: colorPrimary}),
				text.New(notes, props.Text{Size: 8, Top: 5, Left: 3}),
				text.New("Received by: ______________________", props.Text{Size: 9, Top: 30, Left: 3, Color: colorGray}),
			),
		),
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
