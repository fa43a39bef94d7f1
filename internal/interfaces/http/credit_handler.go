package http

import (
	"github.com/gofiber/fiber/v2"
	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// CreditHandler abonos y consulta de cuentas por cobrar.
type CreditHandler struct {
	pay   *appcredit.ApplyPaymentUseCase
	query *appcredit.QueryUseCase
}

func NewCreditHandler(pay *appcredit.ApplyPaymentUseCase, query *appcredit.QueryUseCase) *CreditHandler {
	return &CreditHandler{pay: pay, query: query}
}

// ApplyPayment godoc
// @Summary      Abonar a un crédito
// @Tags         credits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del crédito"
// @Param        body  body  dto.ApplyPaymentRequest  true  "Monto y forma de pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/credits/{id}/payments [post]
func (h *CreditHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !in.Amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "el monto debe ser mayor a cero"})
	}
	if e := validateStruct(&in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	p, err := h.pay.ApplyPayment(c.UserContext(), appcredit.ApplyPaymentInput{
		CreditID:      c.Params("id"),
		Amount:        in.Amount,
		PaymentMethod: entity.PaymentMethod(in.PaymentMethod),
	}, Cashier(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToPaymentResponse(p))
}

// List GET /api/credits?client_id=&status=pendiente|pagado|vencido
func (h *CreditHandler) List(c *fiber.Ctx) error {
	var in dto.CreditListRequest
	if e := bindQuery(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	in.DefaultPage()
	f := repository.CreditFilter{ClientID: in.ClientID, Status: in.Status, Limit: in.Limit, Offset: in.Offset}
	overdueOnly := in.Status == string(credit.StatusOverdue)
	if overdueOnly {
		// vencido se calcula al leer: se filtra sobre todos los pendientes.
		f.Status, f.Limit, f.Offset = "", 0, 0
	}
	views, err := h.query.List(c.UserContext(), f, overdueOnly)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CreditResponse, 0, len(views))
	for _, v := range views {
		out = append(out, usecase.ToCreditResponse(v))
	}
	return c.JSON(out)
}

// Summary GET /api/credits/summary
func (h *CreditHandler) Summary(c *fiber.Ctx) error {
	s, err := h.query.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToCreditSummaryResponse(s))
}

// GetByID crédito con su historial de abonos.
func (h *CreditHandler) GetByID(c *fiber.Ctx) error {
	v, err := h.query.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToCreditResponse(*v))
}
