// Package seed loads the demo catalog used by the dashboard screens.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	rules "github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

type demoProduct struct {
	name, sku, category string
	stock, minStock     int
	price               int64
	location, unit      string
	supplier            string
	image               int
}

var demoProducts = []demoProduct{
	{"NanoTech Chipset X1", "NC-X1", "Electronics", 154, 20, 450, "A-12-04", "pcs", "TechGlobal", 1},
	{"Quantum Sensor Module", "QS-M2", "Electronics", 12, 15, 1250, "B-05-11", "pcs", "QuantumSys", 2},
	{"Hydraulic Piston V4", "HP-V4", "Tools", 85, 10, 320, "C-01-02", "set", "MechParts", 3},
	{"Carbon Fiber Sheet", "CF-S9", "Materials", 0, 50, 95, "D-22-01", "sqm", "MatWorld", 4},
	{"OLED Display 4K", "OD-4K", "Electronics", 45, 20, 899, "A-14-02", "pcs", "DisplayTech", 5},
	{"Wireless Controller", "WC-01", "Electronics", 200, 30, 59, "E-02-05", "pcs", "GameGear", 6},
	{"Industrial Servo Motor", "ISM-900", "Tools", 22, 5, 1200, "C-05-01", "pcs", "MechParts", 7},
	{"Thermal Paste 5g", "TP-5G", "Materials", 500, 100, 15, "D-01-01", "tube", "CoolTech", 8},
	{"Safety Goggles Pro", "SG-Pro", "Safety Gear", 120, 20, 25, "S-01-01", "pcs", "SafetyFirst", 9},
	{"Packaging Foam Roll", "PF-Roll", "Packaging", 8, 10, 45, "P-10-05", "roll", "PackIt", 10},
}

type demoOperation struct {
	opType, status, schedule string
	contact, from, to        string
}

// References are drawn from the sequence, so they come out as WH/IN/0001, WH/OUT/0001, WH/INT/0001, WH/IN/0002.
var demoOperations = []demoOperation{
	{entity.OperationReceipt, entity.StatusDone, "2024-10-24", "TechGlobal", "Vendor", "WH/Stock"},
	{entity.OperationDelivery, entity.StatusReady, "2024-10-24", "CyberDyne", "WH/Stock", "Customer"},
	{entity.OperationTransfer, entity.StatusDraft, "2024-10-26", "", "WH/Stock", "WH/Output"},
	{entity.OperationReceipt, entity.StatusDraft, "2024-11-01", "RawMaterials Co.", "Vendor", "WH/Stock"},
}

type demoMovement struct {
	at, sku, opType, reference string
	quantity                   int
	from, to, contact, status  string
}

var demoMovements = []demoMovement{
	{"2024-10-24T14:30:00Z", "NC-X1", entity.OperationReceipt, "WH/IN/0001", 120, "Vendor", "WH/Stock1", "Azure Interior", entity.StatusDone},
	{"2024-10-24T11:15:00Z", "QS-M2", entity.OperationReceipt, "WH/IN/0001", 50, "Vendor", "WH/Stock1", "Azure Interior", entity.StatusDone},
	{"2024-10-23T16:45:00Z", "HP-V4", entity.OperationDelivery, "WH/OUT/0002", -5, "WH/Stock1", "Customer", "Deco Addict", entity.StatusDone},
	{"2024-10-23T09:20:00Z", "OD-4K", entity.OperationDelivery, "WH/OUT/0003", -2, "WH/Stock2", "Customer", "Gemini Furniture", entity.StatusReady},
}

// Result how many records each collection received.
type Result struct {
	Products   int
	Operations int
	Movements  int
}

// Demo fills every empty collection with the demo data in one transaction.
// Collections that already hold records are left untouched.
func Demo(ctx context.Context, txRunner inventory.TxRunner, log zerolog.Logger) (Result, error) {
	var res Result
	now := time.Now().UTC()

	err := txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		res = Result{}

		n, err := productRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			for _, d := range demoProducts {
				if err := productRepo.Create(ctx, d.entity(now)); err != nil {
					return fmt.Errorf("seed product %s: %w", d.sku, err)
				}
				res.Products++
			}
		}

		n, err = operationRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			for _, d := range demoOperations {
				op, err := d.entity(ctx, operationRepo, now)
				if err != nil {
					return err
				}
				if err := operationRepo.Create(ctx, op); err != nil {
					return fmt.Errorf("seed operation %s: %w", op.ReferenceNumber, err)
				}
				res.Operations++
			}
		}

		existing, err := movementRepo.List(ctx, repository.StockMovementFilter{})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, d := range demoMovements {
			p, err := productRepo.GetBySKU(ctx, d.sku)
			if err != nil {
				return err
			}
			if p == nil {
				continue
			}
			ts, err := time.Parse(time.RFC3339, d.at)
			if err != nil {
				return err
			}
			m := &entity.StockMovement{
				ID:              uuid.New().String(),
				Type:            d.opType,
				ReferenceNumber: d.reference,
				ProductID:       p.ID,
				ProductName:     p.Name,
				SKU:             p.SKU,
				Quantity:        d.quantity,
				LocationFrom:    d.from,
				LocationTo:      d.to,
				Contact:         d.contact,
				Status:          d.status,
				Timestamp:       ts,
			}
			if err := movementRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("seed movement %s: %w", d.reference, err)
			}
			res.Movements++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info().
		Int("products", res.Products).
		Int("operations", res.Operations).
		Int("movements", res.Movements).
		Msg("demo data seeded")
	return res, nil
}

func (d demoProduct) entity(now time.Time) *entity.Product {
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          d.name,
		SKU:           d.sku,
		Category:      d.category,
		Stock:         d.stock,
		MinStockLevel: d.minStock,
		Price:         decimal.NewFromInt(d.price),
		Image:         fmt.Sprintf("https://picsum.photos/400/300?random=%d", d.image),
		Location:      d.location,
		UnitOfMeasure: d.unit,
		SupplierInfo:  d.supplier,
		Tags:          []string{},
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	rules.Refresh(p)
	return p
}

func (d demoOperation) entity(ctx context.Context, repo repository.OperationRepository, now time.Time) (*entity.Operation, error) {
	schedule, err := time.Parse("2006-01-02", d.schedule)
	if err != nil {
		return nil, err
	}
	prefix := rules.ReferencePrefix(d.opType)
	seq, err := repo.NextReferenceSeq(ctx, prefix)
	if err != nil {
		return nil, err
	}
	op := &entity.Operation{
		ID:                  uuid.New().String(),
		ReferenceNumber:     rules.FormatReference(prefix, seq),
		Type:                d.opType,
		Status:              d.status,
		ScheduleDate:        schedule,
		Contact:             d.contact,
		SourceLocation:      d.from,
		DestinationLocation: d.to,
		Items:               []entity.OperationItem{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if d.status == entity.StatusDone {
		op.DoneAt = &schedule
	}
	return op, nil
}
