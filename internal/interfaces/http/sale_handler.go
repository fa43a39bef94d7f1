package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/receipt"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// SaleHandler cobro, cotización, consulta y comprobante de ventas.
type SaleHandler struct {
	complete *sales.CompleteSaleUseCase
	query    *sales.QueryUseCase
	receipt  *receipt.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(complete *sales.CompleteSaleUseCase, query *sales.QueryUseCase, receiptUC *receipt.UseCase) *SaleHandler {
	return &SaleHandler{complete: complete, query: query, receipt: receiptUC}
}

func toSaleInput(in dto.CompleteSaleRequest) sales.CompleteSaleInput {
	lines := make([]sales.CartLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, sales.CartLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			PriceTier: entity.PriceTier(it.PriceTier),
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		})
	}
	return sales.CompleteSaleInput{
		Lines:           lines,
		ClientID:        in.ClientID,
		PaymentMethod:   entity.PaymentMethod(in.PaymentMethod),
		DiscountPercent: in.DiscountPercent,
		TaxEnabled:      in.TaxEnabled,
		DocumentType:    entity.DocumentType(in.DocumentType),
	}
}

// Create godoc
// @Summary      Cobrar una venta
// @Description  Valida carrito, stock y crédito; descuenta inventario y, si es a crédito, abre la cuenta por cobrar.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteSaleRequest  true  "Carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CompleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El carrito vacío tiene su propio código; se revisa antes que el resto.
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
	}
	if e := validateStruct(&in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	sale, err := h.complete.CompleteSale(c.UserContext(), toSaleInput(in), Cashier(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToSaleResponse(sale))
}

// Quote calcula totales del carrito sin registrar nada.
// POST /api/sales/quote
func (h *SaleHandler) Quote(c *fiber.Ctx) error {
	var in dto.CompleteSaleRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	q, err := h.query.QuoteSale(c.UserContext(), toSaleInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToQuoteResponse(q))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta, inclusivo (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if e := bindQuery(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	in.DefaultPage()
	from, to, e := parseDateRange(in.From, in.To)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	list, err := h.query.List(c.UserContext(), repository.SaleFilter{
		BranchID:  in.BranchID,
		CashierID: in.CashierID,
		ClientID:  in.ClientID,
		From:      from,
		To:        to,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(list)), Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}
	for _, s := range list {
		out.Items = append(out.Items, *usecase.ToSaleResponse(s))
	}
	return c.JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.query.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToSaleResponse(sale))
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta (ticket o factura)
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.RenderSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
