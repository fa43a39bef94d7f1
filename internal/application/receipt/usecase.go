package receipt

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// UseCase genera el comprobante imprimible de una venta.
type UseCase struct {
	saleRepo    repository.SaleRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	branchRepo  repository.BranchRepository
	generator   Generator
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	generator Generator,
) *UseCase {
	return &UseCase{
		saleRepo:    saleRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		branchRepo:  branchRepo,
		generator:   generator,
	}
}

// RenderSale devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound si la venta no existe.
//   - error envuelto si la generación falla.
func (uc *UseCase) RenderSale(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	company, err := uc.companyRepo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener empresa: %w", err)
	}
	if company == nil {
		company = &entity.Company{Name: "Punto de Venta"}
	}

	data := Data{Sale: sale, Company: company}
	if sale.ClientID != "" {
		if data.Client, err = uc.clientRepo.GetByID(ctx, sale.ClientID); err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener cliente: %w", err)
		}
	}
	if u, err := uc.userRepo.GetByID(ctx, sale.CashierID); err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cajero: %w", err)
	} else if u != nil {
		data.CashierName = u.Name
	}
	if b, err := uc.branchRepo.GetByID(ctx, sale.BranchID); err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener sucursal: %w", err)
	} else if b != nil {
		data.BranchName = b.Name
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("%s_%s.pdf", sale.DocumentType, sale.Folio), nil
}
