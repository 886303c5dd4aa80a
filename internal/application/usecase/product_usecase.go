package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	rules "github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// ProductUseCase catalog queries and writes. Status is always derived from stock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	sheets   ports.ProductSpreadsheet
	log      zerolog.Logger
	now      func() time.Time
}

// NewProductUseCase builds the use case.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	sheets ports.ProductSpreadsheet,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, sheets: sheets, log: log, now: time.Now}
}

// List applies the filter (AND of predicates), sorted by name.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.list(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// Get returns a product or domain.ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	res := ToProductResponse(p)
	return &res, nil
}

// Create persists a new product. A taken sku is domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.newProduct(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	res := ToProductResponse(p)
	return &res, nil
}

// Update replaces every field of an existing product (PUT semantics).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	applyRequest(p, in)
	p.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	res := ToProductResponse(p)
	return &res, nil
}

// BulkCreate inserts every product in one transaction; any failure rolls back the batch.
func (uc *ProductUseCase) BulkCreate(ctx context.Context, in []dto.ProductRequest) ([]dto.ProductResponse, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: expected a non-empty array of products", domain.ErrInvalidInput)
	}
	products := make([]*entity.Product, 0, len(in))
	seen := make(map[string]int, len(in))
	for i, item := range in {
		p, err := uc.newProduct(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if j, dup := seen[p.SKU]; dup {
			return nil, fmt.Errorf("%w: items %d and %d share sku %q", domain.ErrDuplicate, j, i, p.SKU)
		}
		seen[p.SKU] = i
		products = append(products, p)
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.OperationRepository,
		_ repository.StockMovementRepository,
	) error {
		for _, p := range products {
			if err := productRepo.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// Import reads a workbook and bulk-creates its rows. Categories are title-cased.
func (uc *ProductUseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := uc.sheets.ReadProducts(r)
	if err != nil {
		return nil, err
	}
	caser := cases.Title(language.English)
	for i := range rows {
		rows[i].Category = caser.String(strings.TrimSpace(rows[i].Category))
	}
	created, err := uc.BulkCreate(ctx, rows)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("count", len(created)).Msg("products imported")
	return &dto.ImportResult{Imported: len(created), Products: created}, nil
}

// Export writes the filtered catalog as a workbook to w.
func (uc *ProductUseCase) Export(ctx context.Context, f dto.ProductFilter, w io.Writer) error {
	list, err := uc.List(ctx, f)
	if err != nil {
		return err
	}
	return uc.sheets.WriteProducts(w, list)
}

func (uc *ProductUseCase) list(ctx context.Context, f dto.ProductFilter) ([]*entity.Product, error) {
	if f.Status != "" && !entity.IsValidStockStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown stock status %q", domain.ErrInvalidInput, f.Status)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, fmt.Errorf("%w: minPrice is greater than maxPrice", domain.ErrInvalidInput)
	}
	return uc.repo.List(ctx, repository.ProductFilter{
		Text:            f.Q,
		Category:        f.Category,
		Status:          f.Status,
		MinPrice:        f.MinPrice,
		MaxPrice:        f.MaxPrice,
		IncludeInactive: f.IncludeInactive,
	})
}

func (uc *ProductUseCase) newProduct(in dto.ProductRequest) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRequest(p, in)
	return p, nil
}

// validateProduct rules that struct tags cannot express (bulk and import rows skip the HTTP validator).
func validateProduct(in dto.ProductRequest) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.SKU) == "":
		return fmt.Errorf("%w: sku is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	case in.Stock < 0, in.MinStock < 0, in.ReorderQuantity < 0:
		return fmt.Errorf("%w: stock levels must not be negative", domain.ErrInvalidInput)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// applyRequest replaces every editable field of p with the request and re-derives the status.
// An absent isActive means active.
func applyRequest(p *entity.Product, in dto.ProductRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.SKU = strings.TrimSpace(in.SKU)
	p.Barcode = strings.TrimSpace(in.Barcode)
	p.Category = strings.TrimSpace(in.Category)
	p.Description = in.Description
	p.Image = in.Image
	p.Stock = in.Stock
	p.MinStockLevel = in.MinStock
	p.ReorderQuantity = in.ReorderQuantity
	p.Price = in.Price
	p.Location = strings.TrimSpace(in.Location)
	p.UnitOfMeasure = strings.TrimSpace(in.Unit)
	if p.UnitOfMeasure == "" {
		p.UnitOfMeasure = entity.DefaultUnitOfMeasure
	}
	p.SupplierInfo = strings.TrimSpace(in.Supplier)
	p.Tags = in.Tags
	p.IsActive = true
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	rules.Refresh(p)
}

// ToProductResponse maps a product to the client shape.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Barcode:         p.Barcode,
		Category:        p.Category,
		Description:     p.Description,
		Stock:           p.Stock,
		MinStock:        p.MinStockLevel,
		ReorderQuantity: p.ReorderQuantity,
		Price:           p.Price,
		Status:          p.Status,
		Image:           p.Image,
		Location:        p.Location,
		Unit:            p.UnitOfMeasure,
		Supplier:        p.SupplierInfo,
		Tags:            tags,
		IsActive:        p.IsActive,
		LastUpdated:     p.UpdatedAt,
	}
}
