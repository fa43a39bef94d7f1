package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// CompanyRepository persiste los datos de la empresa (registro único).
// Get devuelve nil, nil si aún no se ha configurado.
type CompanyRepository interface {
	Get(ctx context.Context) (*entity.Company, error)
	Save(ctx context.Context, company *entity.Company) error
}

// PriceLabelRepository persiste las etiquetas de niveles de precio (registro único).
type PriceLabelRepository interface {
	Get(ctx context.Context) (*entity.PriceLabelConfig, error)
	Save(ctx context.Context, cfg *entity.PriceLabelConfig) error
}
