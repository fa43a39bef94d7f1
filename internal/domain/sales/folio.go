package sales

import "fmt"

// FolioPrefix prefijo de los folios de venta.
const FolioPrefix = "V-"

// FormatFolio convierte el consecutivo de la sucursal en folio legible (V-000042).
func FormatFolio(seq int64) string {
	return fmt.Sprintf("%s%06d", FolioPrefix, seq)
}
