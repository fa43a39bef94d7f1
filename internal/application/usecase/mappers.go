package usecase

import (
	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ToSaleResponse convierte una venta con sus renglones.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		Folio:          s.Folio,
		ClientID:       s.ClientID,
		CashierID:      s.CashierID,
		BranchID:       s.BranchID,
		RegisterID:     s.RegisterID,
		Subtotal:       s.Subtotal,
		DiscountRate:   s.DiscountRate,
		DiscountAmount: s.DiscountAmount,
		TaxRate:        s.TaxRate,
		TaxAmount:      s.TaxAmount,
		Total:          s.Total,
		PaymentMethod:  string(s.PaymentMethod),
		DocumentType:   string(s.DocumentType),
		Status:         s.Status,
		Items:          toSaleItems(s.Items),
		CreatedAt:      s.CreatedAt,
	}
}

// ToQuoteResponse convierte la cotización de un carrito.
func ToQuoteResponse(q *sales.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		Items:          toSaleItems(q.Items),
		Subtotal:       q.Totals.Subtotal,
		DiscountAmount: q.Totals.DiscountAmount,
		TaxRate:        q.TaxRate,
		TaxAmount:      q.Totals.TaxAmount,
		Total:          q.Totals.Total,
	}
}

func toSaleItems(items []entity.SaleItem) []dto.SaleItemResponse {
	out := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			PriceTier:   string(it.PriceTier),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

// ToCreditResponse convierte un crédito con su estado de presentación.
func ToCreditResponse(v appcredit.CreditView) dto.CreditResponse {
	c := v.Credit
	resp := dto.CreditResponse{
		ID:            c.ID,
		ClientID:      c.ClientID,
		ClientName:    v.ClientName,
		SaleID:        c.SaleID,
		Amount:        c.Amount,
		Balance:       c.Balance,
		Status:        c.Status,
		DisplayStatus: string(v.DisplayStatus),
		Overdue:       v.Overdue,
		DueDate:       c.DueDate,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, p := range v.Payments {
		resp.Payments = append(resp.Payments, *ToPaymentResponse(p))
	}
	return resp
}

// ToPaymentResponse convierte un abono.
func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		CreditID:      p.CreditID,
		Amount:        p.Amount,
		PaymentMethod: string(p.PaymentMethod),
		CashierID:     p.CashierID,
		CreatedAt:     p.CreatedAt,
	}
}

// ToCreditSummaryResponse convierte el resumen de cuentas por cobrar.
func ToCreditSummaryResponse(s *appcredit.Summary) *dto.CreditSummaryResponse {
	return &dto.CreditSummaryResponse{
		PendingAmount: s.PendingAmount,
		ActiveCount:   s.ActiveCount,
		OverdueCount:  s.OverdueCount,
		OverdueAmount: s.OverdueAmount,
	}
}

// ToMovementResponse convierte un movimiento de inventario.
func ToMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Direction:   m.Direction,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		Reason:      m.Reason,
		ReferenceID: m.ReferenceID,
		CashierID:   m.CashierID,
		BranchID:    m.BranchID,
		CreatedAt:   m.CreatedAt,
	}
}
