package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/PuntoVenta-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func identidad() pkgjwt.Identity {
	return pkgjwt.Identity{
		UserID:     "00000000-0000-0000-0000-000000000001",
		Role:       "cajero",
		BranchID:   "00000000-0000-0000-0000-0000000000b1",
		RegisterID: "00000000-0000-0000-0000-0000000000c1",
	}
}

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, identidad(), "punto-venta-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, identidad(), id)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, identidad(), "punto-venta-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, identidad(), "punto-venta-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", identidad(), "x", 60)
	assert.Error(t, err)
}
