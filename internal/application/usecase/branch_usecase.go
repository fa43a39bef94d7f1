package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales y sus cajas.
type BranchUseCase struct {
	repo         repository.BranchRepository
	registerRepo repository.RegisterRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, registerRepo repository.RegisterRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo, registerRepo: registerRepo}
}

// Create crea una sucursal activa salvo que se indique lo contrario.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.BranchRequest) (*dto.BranchResponse, error) {
	now := time.Now()
	b := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Active:    in.Active == nil || *in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// Update edita la sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, id string, in dto.BranchRequest) (*dto.BranchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	b.Name = in.Name
	b.Address = in.Address
	b.Phone = in.Phone
	if in.Active != nil {
		b.Active = *in.Active
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// List todas las sucursales.
func (uc *BranchUseCase) List(ctx context.Context) ([]dto.BranchResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBranchResponse(b))
	}
	return out, nil
}

// Delete elimina la sucursal si ya no tiene cajas.
func (uc *BranchUseCase) Delete(ctx context.Context, id string) error {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	regs, err := uc.registerRepo.ListByBranch(ctx, id)
	if err != nil {
		return err
	}
	if len(regs) > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// CreateRegister da de alta una caja en una sucursal existente.
func (uc *BranchUseCase) CreateRegister(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	b, err := uc.repo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	r := &entity.Register{
		ID:        uuid.New().String(),
		BranchID:  in.BranchID,
		Name:      in.Name,
		Active:    in.Active == nil || *in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.registerRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRegisterResponse(r), nil
}

// UpdateRegister edita nombre, sucursal o estado de la caja.
func (uc *BranchUseCase) UpdateRegister(ctx context.Context, id string, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	r, err := uc.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if in.BranchID != r.BranchID {
		b, err := uc.repo.GetByID(ctx, in.BranchID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrInvalidInput
		}
		r.BranchID = in.BranchID
	}
	r.Name = in.Name
	if in.Active != nil {
		r.Active = *in.Active
	}
	r.UpdatedAt = time.Now()
	if err := uc.registerRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRegisterResponse(r), nil
}

// ListRegisters cajas de una sucursal; branchID vacío lista todas.
func (uc *BranchUseCase) ListRegisters(ctx context.Context, branchID string) ([]dto.RegisterResponse, error) {
	list, err := uc.registerRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegisterResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRegisterResponse(r))
	}
	return out, nil
}

// DeleteRegister elimina una caja. Las ventas conservan el ID de caja.
func (uc *BranchUseCase) DeleteRegister(ctx context.Context, id string) error {
	r, err := uc.registerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	return uc.registerRepo.Delete(ctx, id)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toRegisterResponse(r *entity.Register) *dto.RegisterResponse {
	return &dto.RegisterResponse{
		ID:        r.ID,
		BranchID:  r.BranchID,
		Name:      r.Name,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
