package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
)

// ReportHandler maneja los reportes de ventas.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetSalesReport godoc
// @Summary      Reporte de ventas por período
// @Description  Gráfica por hora (daily), día (weekly) o semana (monthly), top 10 productos por importe
// @Description  y totales por forma de pago, sucursal y cajero.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period      query  string  false  "daily | weekly | monthly (default daily)"
// @Param        branch_id   query  string  false  "Sucursal"
// @Param        cashier_id  query  string  false  "Cajero"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if e := bindQuery(c, &req); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	report, err := h.uc.SalesReport(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
