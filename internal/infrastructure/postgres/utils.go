package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// validID indica si id puede compararse con una columna UUID. Un id con otro formato
// no existe: se responde "no encontrado" sin consultar para no abortar la transacción (22P02).
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isCheckViolation 23514: el esquema rechazó un stock o saldo negativo.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// whereBuilder arma cláusulas WHERE con parámetros posicionales.
// Cada "?" de una condición se reemplaza por el mismo $n.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

// addID filtra por una columna UUID; un id mal formado no coincide con ninguna fila.
func (w *whereBuilder) addID(col, id string) {
	if !validID(id) {
		w.conds = append(w.conds, "FALSE")
		return
	}
	w.add(col+" = ?", id)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET; limit <= 0 no limita.
func (w *whereBuilder) page(limit, offset int) string {
	s := ""
	if limit > 0 {
		w.args = append(w.args, limit)
		s += fmt.Sprintf(" LIMIT $%d", len(w.args))
	}
	if offset > 0 {
		w.args = append(w.args, offset)
		s += fmt.Sprintf(" OFFSET $%d", len(w.args))
	}
	return s
}
