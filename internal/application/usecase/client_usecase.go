package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ClientUseCase casos de uso del padrón de clientes. CurrentCredit solo lo mueven ventas y abonos.
type ClientUseCase struct {
	repo        repository.ClientRepository
	creditRepo  repository.CreditRepository
	paymentRepo repository.PaymentRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(
	repo repository.ClientRepository,
	creditRepo repository.CreditRepository,
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
) *ClientUseCase {
	return &ClientUseCase{repo: repo, creditRepo: creditRepo, paymentRepo: paymentRepo, saleRepo: saleRepo, now: time.Now}
}

// Create registra un cliente con saldo de crédito en cero.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Client{
		ID:            uuid.New().String(),
		Name:          in.Name,
		RFC:           in.RFC,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		CreditLimit:   in.CreditLimit,
		CurrentCredit: decimal.Zero,
		Active:        in.Active == nil || *in.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// Update edita datos y límite. Un límite menor al saldo actual se permite: solo bloquea nuevas ventas a crédito.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.RFC = in.RFC
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.CreditLimit = in.CreditLimit
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista clientes con búsqueda por nombre, RFC o teléfono.
func (uc *ClientUseCase) List(ctx context.Context, in dto.ClientListRequest) (*dto.ClientListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ClientFilter{
		Search:     in.Search,
		ActiveOnly: in.ActiveOnly,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina al cliente si no tiene créditos pendientes.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	open, err := uc.creditRepo.CountPendingByClient(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrClientHasOpenCredits
	}
	return uc.repo.Delete(ctx, id)
}

// Statement estado de cuenta: ventas del cliente y sus créditos con abonos.
func (uc *ClientUseCase) Statement(ctx context.Context, id string) (*dto.ClientStatementResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	saleList, err := uc.saleRepo.List(ctx, repository.SaleFilter{ClientID: id})
	if err != nil {
		return nil, err
	}
	credits, err := uc.creditRepo.List(ctx, repository.CreditFilter{ClientID: id})
	if err != nil {
		return nil, err
	}

	out := &dto.ClientStatementResponse{
		Client:  *toClientResponse(c),
		Sales:   make([]dto.SaleResponse, 0, len(saleList)),
		Credits: make([]dto.CreditResponse, 0, len(credits)),
	}
	for _, s := range saleList {
		out.Sales = append(out.Sales, *ToSaleResponse(s))
	}
	asOf := uc.now()
	for _, cr := range credits {
		payments, err := uc.paymentRepo.ListByCredit(ctx, cr.ID)
		if err != nil {
			return nil, err
		}
		out.Credits = append(out.Credits, ToCreditResponse(appcredit.CreditView{
			Credit:        *cr,
			ClientName:    c.Name,
			DisplayStatus: credit.Status(cr, asOf),
			Overdue:       credit.IsOverdue(cr, asOf),
			Payments:      payments,
		}))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		RFC:             c.RFC,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		CreditLimit:     c.CreditLimit,
		CurrentCredit:   c.CurrentCredit,
		AvailableCredit: c.AvailableCredit(),
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
