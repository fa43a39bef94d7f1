package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// ErrSeedPasswordRequired el primer arranque necesita SEED_ADMIN_PASSWORD.
var ErrSeedPasswordRequired = errors.New("se requiere contraseña para el usuario administrador inicial")

var defaultCategories = []string{"General", "Abarrotes", "Bebidas"}

// BootstrapInput datos configurables del primer arranque.
type BootstrapInput struct {
	CompanyName   string
	TaxRate       decimal.Decimal
	AdminUsername string
	AdminPassword string
}

// BootstrapResult lo que se creó; Seeded en false si el almacén ya tenía empresa.
type BootstrapResult struct {
	Seeded     bool
	CompanyID  string
	BranchID   string
	RegisterID string
	AdminID    string
}

// BootstrapUseCase carga los datos mínimos para operar: empresa, sucursal principal, caja,
// categorías, etiquetas de precio y un administrador.
type BootstrapUseCase struct {
	companyRepo  repository.CompanyRepository
	labelRepo    repository.PriceLabelRepository
	branchRepo   repository.BranchRepository
	registerRepo repository.RegisterRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewBootstrapUseCase(
	companyRepo repository.CompanyRepository,
	labelRepo repository.PriceLabelRepository,
	branchRepo repository.BranchRepository,
	registerRepo repository.RegisterRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *BootstrapUseCase {
	return &BootstrapUseCase{
		companyRepo:  companyRepo,
		labelRepo:    labelRepo,
		branchRepo:   branchRepo,
		registerRepo: registerRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Run siembra el almacén solo si no existe empresa. Es idempotente entre arranques.
func (uc *BootstrapUseCase) Run(ctx context.Context, in BootstrapInput) (*BootstrapResult, error) {
	existing, err := uc.companyRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: empresa: %w", err)
	}
	if existing != nil {
		return &BootstrapResult{CompanyID: existing.ID}, nil
	}
	if in.AdminPassword == "" {
		return nil, ErrSeedPasswordRequired
	}
	if in.AdminUsername == "" {
		in.AdminUsername = "admin"
	}
	if in.CompanyName == "" {
		in.CompanyName = "Mi Negocio"
	}
	if in.TaxRate.IsZero() {
		in.TaxRate = decimal.NewFromInt(16)
	}

	now := time.Now()
	branch := &entity.Branch{ID: uuid.New().String(), Name: "Sucursal Principal", Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.branchRepo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("bootstrap: sucursal: %w", err)
	}
	register := &entity.Register{ID: uuid.New().String(), BranchID: branch.ID, Name: "Caja 1", Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.registerRepo.Create(ctx, register); err != nil {
		return nil, fmt.Errorf("bootstrap: caja: %w", err)
	}
	for _, name := range defaultCategories {
		cat := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		if err := uc.categoryRepo.Create(ctx, cat); err != nil {
			return nil, fmt.Errorf("bootstrap: categoría %s: %w", name, err)
		}
	}
	labels := entity.DefaultPriceLabels()
	labels.UpdatedAt = now
	if err := uc.labelRepo.Save(ctx, &labels); err != nil {
		return nil, fmt.Errorf("bootstrap: etiquetas: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.AdminUsername,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		BranchID:     branch.ID,
		RegisterID:   register.ID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("bootstrap: administrador: %w", err)
	}

	// La empresa va al final: su presencia marca el almacén como sembrado.
	company := &entity.Company{ID: uuid.New().String(), Name: in.CompanyName, TaxRate: in.TaxRate, CreatedAt: now, UpdatedAt: now}
	if err := uc.companyRepo.Save(ctx, company); err != nil {
		return nil, fmt.Errorf("bootstrap: empresa: %w", err)
	}
	return &BootstrapResult{
		Seeded:     true,
		CompanyID:  company.ID,
		BranchID:   branch.ID,
		RegisterID: register.ID,
		AdminID:    admin.ID,
	}, nil
}
