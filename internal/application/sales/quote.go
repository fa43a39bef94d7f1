package sales

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Quote vista previa de un cobro sin escribir nada.
type Quote struct {
	Items   []entity.SaleItem
	TaxRate decimal.Decimal
	Totals  sales.Totals
}

// QueryUseCase lecturas de ventas y cotización del carrito.
type QueryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	defaultTax  decimal.Decimal
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	defaultTax decimal.Decimal,
) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, productRepo: productRepo, companyRepo: companyRepo, defaultTax: defaultTax}
}

// QuoteSale calcula los totales con los mismos pasos que el cobro. No revisa stock ni crédito.
func (uc *QueryUseCase) QuoteSale(ctx context.Context, in CompleteSaleInput) (*Quote, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentCash
	}
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(in.Lines))
	for _, l := range in.Lines {
		if _, ok := products[l.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if !p.Active {
			return nil, &domain.InsufficientStockError{ProductID: p.ID, ProductName: p.Name, Available: decimal.Zero, Requested: l.Quantity}
		}
		products[l.ProductID] = p
	}
	items, lines, err := buildItems(in.Lines, products)
	if err != nil {
		return nil, err
	}

	taxRate := decimal.Zero
	if in.TaxEnabled {
		taxRate = uc.defaultTax
		company, err := uc.companyRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if company != nil {
			taxRate = company.TaxRate
		}
	}
	return &Quote{
		Items:   items,
		TaxRate: taxRate,
		Totals:  sales.CalculateTotals(lines, in.DiscountPercent, in.TaxEnabled, taxRate),
	}, nil
}

// GetByID devuelve la venta o domain.ErrNotFound.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// List ventas según filtro.
func (uc *QueryUseCase) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return uc.saleRepo.List(ctx, f)
}
