package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día y del mes en curso.
// GET /api/dashboard/summary?branch_id=
//
// Respuesta: DashboardSummaryDTO (ventas de hoy y del mes, inventario, clientes,
// créditos pendientes y vencidos, top 5 productos, date_label).
// Sin branch_id considera todas las sucursales.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.Query("branch_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
