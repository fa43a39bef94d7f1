package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var maxTaxRate = decimal.NewFromInt(100)

// CompanyUseCase datos de la empresa y etiquetas de precios (registros únicos).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	labelRepo repository.PriceLabelRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, labelRepo repository.PriceLabelRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, labelRepo: labelRepo}
}

// Get devuelve la empresa; ErrNotFound si aún no está configurada.
func (uc *CompanyUseCase) Get(ctx context.Context) (*dto.CompanyResponse, error) {
	c, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(c), nil
}

// Save crea o reemplaza los datos de la empresa. La tasa de IVA aplica a las ventas siguientes.
func (uc *CompanyUseCase) Save(ctx context.Context, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(maxTaxRate) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if c == nil {
		c = &entity.Company{ID: uuid.New().String(), CreatedAt: now}
	}
	c.Name = in.Name
	c.RFC = in.RFC
	c.Address = in.Address
	c.Phone = in.Phone
	c.Email = in.Email
	c.LogoRef = in.LogoRef
	c.TaxRate = in.TaxRate
	c.UpdatedAt = now
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// PriceLabels etiquetas configuradas o las de fábrica.
func (uc *CompanyUseCase) PriceLabels(ctx context.Context) (*dto.PriceLabelsDTO, error) {
	cfg, err := uc.labelRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		d := entity.DefaultPriceLabels()
		cfg = &d
	}
	return &dto.PriceLabelsDTO{Price1: cfg.Price1, Price2: cfg.Price2, Price3: cfg.Price3, Price4: cfg.Price4}, nil
}

// SavePriceLabels reemplaza las etiquetas.
func (uc *CompanyUseCase) SavePriceLabels(ctx context.Context, in dto.PriceLabelsDTO) (*dto.PriceLabelsDTO, error) {
	cfg := &entity.PriceLabelConfig{
		Price1:    in.Price1,
		Price2:    in.Price2,
		Price3:    in.Price3,
		Price4:    in.Price4,
		UpdatedAt: time.Now(),
	}
	if err := uc.labelRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return &in, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		RFC:       c.RFC,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		LogoRef:   c.LogoRef,
		TaxRate:   c.TaxRate,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
