// Package redisfolio entrega consecutivos de folio con INCR de Redis, compartidos entre instancias.
package redisfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

var _ repository.FolioSequence = (*Sequence)(nil)

const keyPrefix = "folio:"

// NewClient abre la conexión y verifica con PING. Addr acepta host:port o una URL redis://.
func NewClient(cfg config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	opt := &redis.Options{Addr: cfg.Addr}
	if strings.HasPrefix(cfg.Addr, "redis://") || strings.HasPrefix(cfg.Addr, "rediss://") {
		parsed, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("parse Redis URL: %w", err)
		}
		opt = parsed
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping Redis: %w", err)
	}

	log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("conexión a Redis establecida")
	return client, nil
}

// Sequence consecutivo por sucursal en la llave folio:<sucursal>.
// Un folio tomado por una venta que después se revierte queda como hueco.
type Sequence struct {
	client redis.Cmdable
}

func NewSequence(client redis.Cmdable) *Sequence {
	return &Sequence{client: client}
}

func (s *Sequence) Next(ctx context.Context, branchID string) (int64, error) {
	n, err := s.client.Incr(ctx, keyPrefix+branchID).Result()
	if err != nil {
		return 0, fmt.Errorf("next folio: %w", err)
	}
	return n, nil
}
