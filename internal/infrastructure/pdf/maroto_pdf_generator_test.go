package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/receipt"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(doc entity.DocumentType, client *entity.Client) receipt.Data {
	return receipt.Data{
		Sale: &entity.Sale{
			ID: "s1", Folio: "V-000042", DocumentType: doc, PaymentMethod: entity.PaymentCredit,
			Subtotal: decimal.NewFromInt(180), DiscountRate: decimal.Zero, DiscountAmount: decimal.Zero,
			TaxRate: decimal.NewFromInt(16), TaxAmount: decimal.RequireFromString("28.8"),
			Total: decimal.RequireFromString("208.8"), Status: entity.SaleStatusCompleted,
			CreatedAt: time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC),
			Items: []entity.SaleItem{{
				ProductID: "p1", ProductName: "Café molido 500g", ProductCode: "CAF-500",
				PriceTier: entity.PriceTier1, Quantity: decimal.NewFromInt(2),
				UnitPrice: decimal.NewFromInt(90), Discount: decimal.Zero, Subtotal: decimal.NewFromInt(180),
			}},
		},
		Company:     &entity.Company{Name: "Abarrotes Lupita", RFC: "LUPA800101AB1", TaxRate: decimal.NewFromInt(16)},
		Client:      client,
		CashierName: "Ana",
		BranchName:  "Centro",
	}
}

func TestGenerateReceipt_FormatosDeDocumento(t *testing.T) {
	client := &entity.Client{ID: "c1", Name: "Rosa Martínez", RFC: "MARR900101XX1"}
	cases := []struct {
		name string
		data receipt.Data
	}{
		{"ticket de mostrador", sampleData(entity.DocumentTicket, nil)},
		{"ticket con cliente", sampleData(entity.DocumentTicket, client)},
		{"factura", sampleData(entity.DocumentInvoice, client)},
		{"factura sin cliente", sampleData(entity.DocumentInvoice, nil)},
	}
	g := NewMarotoPDFGenerator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := g.GenerateReceipt(context.Background(), tc.data)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}
