package receipt

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// Data todo lo que imprime un comprobante. Client es nil en ventas de mostrador.
type Data struct {
	Sale        *entity.Sale
	Company     *entity.Company
	Client      *entity.Client
	CashierName string
	BranchName  string
}

// Generator dibuja el comprobante (ticket o factura) y devuelve los bytes del PDF.
type Generator interface {
	GenerateReceipt(ctx context.Context, data Data) ([]byte, error)
}
