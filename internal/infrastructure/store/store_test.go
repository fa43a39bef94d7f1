package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func TestOpen_MemoryDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory, FolioBackend: config.FolioBackendStore}}

	s, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.Products)
	assert.NotNil(t, s.TxRunner)
	assert.Nil(t, s.Folios)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}

	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
