package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, validID(uuid.New().String()))
	for _, id := range []string{"", "abc", "no-existe", "p1", "123"} {
		assert.False(t, validID(id), id)
	}
}

func TestWhereBuilder_AddID(t *testing.T) {
	id := uuid.New().String()

	var w whereBuilder
	w.addID("client_id", id)
	w.add("status = ?", "pendiente")
	assert.Equal(t, " WHERE client_id = $1 AND status = $2", w.sql())
	assert.Equal(t, []any{id, "pendiente"}, w.args)

	var bad whereBuilder
	bad.addID("client_id", "xyz")
	bad.add("status = ?", "pendiente")
	assert.Equal(t, " WHERE FALSE AND status = $1", bad.sql())
	assert.Equal(t, []any{"pendiente"}, bad.args)
	assert.Equal(t, " LIMIT $2", bad.page(10, 0))
}
