package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sales"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Config parámetros del motor de ventas.
type Config struct {
	DefaultTaxRate decimal.Decimal // porcentaje, si la empresa no está configurada
	CreditTermDays int
}

// CartLine renglón del carrito. UnitPrice nil toma el precio del nivel desde el catálogo.
type CartLine struct {
	ProductID string
	Quantity  decimal.Decimal
	PriceTier entity.PriceTier
	UnitPrice *decimal.Decimal
	Discount  decimal.Decimal
}

// CompleteSaleInput datos de cobro.
type CompleteSaleInput struct {
	Lines           []CartLine
	ClientID        string
	PaymentMethod   entity.PaymentMethod
	DiscountPercent decimal.Decimal
	TaxEnabled      bool
	DocumentType    entity.DocumentType
}

// CompleteSaleUseCase convierte un carrito en una venta confirmada: valida, calcula totales,
// descuenta stock, registra salidas y, si es a crédito, abre el crédito del cliente.
type CompleteSaleUseCase struct {
	txRunner     TxRunner
	companyRepo  repository.CompanyRepository
	registerRepo repository.RegisterRepository
	folios       repository.FolioSequence // nil = secuencia de la misma transacción
	cfg          Config
	log          *logger.Logger
	now          func() time.Time
}

// NewCompleteSaleUseCase construye el caso de uso. folios puede ser nil.
func NewCompleteSaleUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	registerRepo repository.RegisterRepository,
	folios repository.FolioSequence,
	cfg Config,
	log *logger.Logger,
) *CompleteSaleUseCase {
	if cfg.CreditTermDays <= 0 {
		cfg.CreditTermDays = 30
	}
	return &CompleteSaleUseCase{
		txRunner:     txRunner,
		companyRepo:  companyRepo,
		registerRepo: registerRepo,
		folios:       folios,
		cfg:          cfg,
		log:          log.Component("sales"),
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CompleteSaleUseCase) WithClock(now func() time.Time) *CompleteSaleUseCase {
	uc.now = now
	return uc
}

// CompleteSale valida en este orden: carrito vacío, cliente para crédito, stock por producto
// y crédito disponible sobre el total calculado. Cualquier rechazo ocurre antes de escribir.
func (uc *CompleteSaleUseCase) CompleteSale(ctx context.Context, in CompleteSaleInput, cashier entity.CashierContext) (*entity.Sale, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if in.PaymentMethod == entity.PaymentCredit && in.ClientID == "" {
		return nil, domain.ErrMissingClient
	}
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if cashier.UserID == "" || cashier.BranchID == "" {
		return nil, domain.ErrUnauthorized
	}

	taxRate, err := uc.taxRate(ctx)
	if err != nil {
		return nil, err
	}
	if !in.TaxEnabled {
		taxRate = decimal.Zero
	}
	registerID, err := uc.resolveRegister(ctx, cashier)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditRepository,
		movRepo repository.InventoryMovementRepository,
		folioRepo repository.FolioSequence,
	) error {
		var client *entity.Client
		if in.ClientID != "" {
			c, err := clientRepo.GetForUpdate(ctx, in.ClientID)
			if err != nil {
				return err
			}
			if c == nil {
				if in.PaymentMethod == entity.PaymentCredit {
					return domain.ErrMissingClient
				}
				return domain.ErrNotFound
			}
			client = c
		}

		products, err := lockProducts(ctx, productRepo, in.Lines)
		if err != nil {
			return err
		}

		items, lines, err := buildItems(in.Lines, products)
		if err != nil {
			return err
		}
		totals := sales.CalculateTotals(lines, in.DiscountPercent, in.TaxEnabled, taxRate)

		if in.PaymentMethod == entity.PaymentCredit {
			available := client.AvailableCredit()
			if totals.Total.GreaterThan(available) {
				return &domain.InsufficientCreditError{Available: available}
			}
		}

		// Commit
		seqSource := folioRepo
		if uc.folios != nil {
			seqSource = uc.folios
		}
		seq, err := seqSource.Next(ctx, cashier.BranchID)
		if err != nil {
			return err
		}
		now := uc.now()
		sale = &entity.Sale{
			ID:             uuid.New().String(),
			Folio:          sales.FormatFolio(seq),
			CashierID:      cashier.UserID,
			BranchID:       cashier.BranchID,
			RegisterID:     registerID,
			Subtotal:       totals.Subtotal,
			DiscountRate:   in.DiscountPercent,
			DiscountAmount: totals.DiscountAmount,
			TaxRate:        taxRate,
			TaxAmount:      totals.TaxAmount,
			Total:          totals.Total,
			PaymentMethod:  in.PaymentMethod,
			DocumentType:   in.DocumentType,
			Status:         entity.SaleStatusCompleted,
			Items:          items,
			CreatedAt:      now,
		}
		if client != nil {
			sale.ClientID = client.ID
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		if err := uc.decrementStock(ctx, productRepo, movRepo, products, sale); err != nil {
			return err
		}

		if in.PaymentMethod == entity.PaymentCredit {
			return uc.openCredit(ctx, creditRepo, clientRepo, client, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("folio", sale.Folio).
		Str("branch_id", sale.BranchID).
		Str("payment_method", string(sale.PaymentMethod)).
		Str("total", sale.Total.String()).
		Msg("venta registrada")
	return sale, nil
}

// decrementStock descuenta cada renglón y agrega su salida. Un stock negativo aquí es un error de integridad.
func (uc *CompleteSaleUseCase) decrementStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	products map[string]*entity.Product,
	sale *entity.Sale,
) error {
	reason := "Venta " + sale.Folio
	for _, it := range sale.Items {
		p := products[it.ProductID]
		next := p.Stock.Sub(it.Quantity)
		if next.IsNegative() {
			err := &domain.IntegrityError{Entity: "product", ID: p.ID, Detail: "stock negativo " + next.String()}
			uc.log.Error().Err(err).Str("folio", sale.Folio).Msg("integridad de stock")
			return err
		}
		if err := productRepo.UpdateStock(ctx, p.ID, next); err != nil {
			return err
		}
		p.Stock = next
		mov := &entity.InventoryMovement{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			Type:        entity.MovementTypeExit,
			Direction:   entity.DirectionOut,
			Quantity:    it.Quantity,
			UnitCost:    p.Cost,
			Reason:      reason,
			ReferenceID: sale.ID,
			CashierID:   sale.CashierID,
			BranchID:    sale.BranchID,
			CreatedAt:   sale.CreatedAt,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// openCredit crea el crédito por el total y lo suma al saldo del cliente.
func (uc *CompleteSaleUseCase) openCredit(
	ctx context.Context,
	creditRepo repository.CreditRepository,
	clientRepo repository.ClientRepository,
	client *entity.Client,
	sale *entity.Sale,
) error {
	cr := &entity.Credit{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		SaleID:    sale.ID,
		Amount:    sale.Total,
		Balance:   sale.Total,
		Status:    entity.CreditStatusPending,
		DueDate:   sale.CreatedAt.AddDate(0, 0, uc.cfg.CreditTermDays),
		CreatedAt: sale.CreatedAt,
		UpdatedAt: sale.CreatedAt,
	}
	if err := creditRepo.Create(ctx, cr); err != nil {
		return err
	}
	return clientRepo.UpdateCurrentCredit(ctx, client.ID, client.CurrentCredit.Add(sale.Total))
}

// taxRate tasa de la empresa; si no hay empresa configurada, la de configuración.
func (uc *CompleteSaleUseCase) taxRate(ctx context.Context) (decimal.Decimal, error) {
	company, err := uc.companyRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if company == nil {
		return uc.cfg.DefaultTaxRate, nil
	}
	return company.TaxRate, nil
}

// resolveRegister usa la caja del cajero o la primera caja activa de la sucursal.
// Sin cajas la venta se registra sin caja.
func (uc *CompleteSaleUseCase) resolveRegister(ctx context.Context, cashier entity.CashierContext) (string, error) {
	if cashier.RegisterID != "" {
		return cashier.RegisterID, nil
	}
	regs, err := uc.registerRepo.ListByBranch(ctx, cashier.BranchID)
	if err != nil {
		return "", err
	}
	for _, r := range regs {
		if r.Active {
			return r.ID, nil
		}
	}
	return "", nil
}

// validateInput revisa forma y rangos; completa valores por defecto.
func validateInput(in *CompleteSaleInput) error {
	if !in.PaymentMethod.Valid() {
		return domain.ErrInvalidInput
	}
	if in.DocumentType == "" {
		in.DocumentType = entity.DocumentTicket
	}
	if !in.DocumentType.Valid() {
		return domain.ErrInvalidInput
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	for i := range in.Lines {
		l := &in.Lines[i]
		if l.ProductID == "" || !l.Quantity.IsPositive() || l.Discount.IsNegative() {
			return domain.ErrInvalidInput
		}
		if l.PriceTier == "" {
			l.PriceTier = entity.PriceTier1
		}
		if !l.PriceTier.Valid() {
			return domain.ErrInvalidInput
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// lockProducts bloquea cada producto una vez, en orden de ID, y verifica existencias contra la
// cantidad total pedida (un producto puede repetirse en varios renglones).
func lockProducts(ctx context.Context, repo repository.ProductRepository, lines []CartLine) (map[string]*entity.Product, error) {
	requested := map[string]decimal.Decimal{}
	var ids []string
	for _, l := range lines {
		if _, ok := requested[l.ProductID]; !ok {
			ids = append(ids, l.ProductID)
		}
		requested[l.ProductID] = requested[l.ProductID].Add(l.Quantity)
	}
	sort.Strings(ids)

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.InsufficientStockError{ProductID: id, Available: decimal.Zero, Requested: requested[id]}
		}
		// Un producto dado de baja no se vende aunque conserve existencias.
		if !p.Active {
			return nil, &domain.InsufficientStockError{ProductID: p.ID, ProductName: p.Name, Available: decimal.Zero, Requested: requested[id]}
		}
		if p.Stock.LessThan(requested[id]) {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   requested[id],
			}
		}
		products[id] = p
	}
	return products, nil
}

// buildItems congela nombre, código y precio de cada renglón.
func buildItems(cart []CartLine, products map[string]*entity.Product) ([]entity.SaleItem, []sales.Line, error) {
	items := make([]entity.SaleItem, 0, len(cart))
	lines := make([]sales.Line, 0, len(cart))
	for _, l := range cart {
		p := products[l.ProductID]
		price := p.PriceFor(l.PriceTier)
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		line := sales.Line{Quantity: l.Quantity, UnitPrice: price, Discount: l.Discount}
		if line.Subtotal().IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		items = append(items, entity.SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			ProductCode: p.Code,
			PriceTier:   l.PriceTier,
			Quantity:    l.Quantity,
			UnitPrice:   price,
			Discount:    l.Discount,
			Subtotal:    line.Subtotal(),
		})
		lines = append(lines, line)
	}
	return items, lines, nil
}
