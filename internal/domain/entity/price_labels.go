package entity

import "time"

// PriceTier identifica uno de los cuatro precios configurables de un producto.
type PriceTier string

const (
	PriceTier1 PriceTier = "price1"
	PriceTier2 PriceTier = "price2"
	PriceTier3 PriceTier = "price3"
	PriceTier4 PriceTier = "price4"
)

// PriceTiers en orden de presentación.
var PriceTiers = []PriceTier{PriceTier1, PriceTier2, PriceTier3, PriceTier4}

func (t PriceTier) Valid() bool {
	switch t {
	case PriceTier1, PriceTier2, PriceTier3, PriceTier4:
		return true
	}
	return false
}

// PriceLabelConfig etiquetas visibles de los niveles de precio (singleton).
type PriceLabelConfig struct {
	Price1    string
	Price2    string
	Price3    string
	Price4    string
	UpdatedAt time.Time
}

// Label devuelve la etiqueta del nivel.
func (c *PriceLabelConfig) Label(tier PriceTier) string {
	switch tier {
	case PriceTier2:
		return c.Price2
	case PriceTier3:
		return c.Price3
	case PriceTier4:
		return c.Price4
	default:
		return c.Price1
	}
}

// DefaultPriceLabels etiquetas iniciales.
func DefaultPriceLabels() PriceLabelConfig {
	return PriceLabelConfig{
		Price1: "Público",
		Price2: "Mayoreo",
		Price3: "Distribuidor",
		Price4: "Especial",
	}
}
