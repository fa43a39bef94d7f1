// Package memory implementa el almacén de entidades en proceso.
// Todas las escrituras se serializan con un mutex; cada transacción toma una
// copia del estado y la restaura si el callback falla. Opcionalmente el estado
// se guarda en un archivo JSON después de cada commit.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// state colecciones en memoria. Los valores guardados nunca se mutan en sitio:
// cada escritura reemplaza el puntero, por eso basta una copia superficial para rollback.
type state struct {
	Products    map[string]*entity.Product  `json:"products"`
	Categories  map[string]*entity.Category `json:"categories"`
	Branches    map[string]*entity.Branch   `json:"branches"`
	Registers   map[string]*entity.Register `json:"registers"`
	Users       map[string]*entity.User     `json:"users"`
	Clients     map[string]*entity.Client   `json:"clients"`
	Sales       map[string]*entity.Sale     `json:"sales"`
	Credits     map[string]*entity.Credit   `json:"credits"`
	Payments    map[string]*entity.Payment  `json:"payments"`
	Movements   []*entity.InventoryMovement `json:"movements"`
	Company     *entity.Company             `json:"company,omitempty"`
	PriceLabels *entity.PriceLabelConfig    `json:"price_labels,omitempty"`
	Folios      map[string]int64            `json:"folios"`
}

func newState() *state {
	st := &state{}
	st.ensure()
	return st
}

// ensure inicializa mapas nulos (estado cargado de un archivo incompleto).
func (st *state) ensure() {
	if st.Products == nil {
		st.Products = map[string]*entity.Product{}
	}
	if st.Categories == nil {
		st.Categories = map[string]*entity.Category{}
	}
	if st.Branches == nil {
		st.Branches = map[string]*entity.Branch{}
	}
	if st.Registers == nil {
		st.Registers = map[string]*entity.Register{}
	}
	if st.Users == nil {
		st.Users = map[string]*entity.User{}
	}
	if st.Clients == nil {
		st.Clients = map[string]*entity.Client{}
	}
	if st.Sales == nil {
		st.Sales = map[string]*entity.Sale{}
	}
	if st.Credits == nil {
		st.Credits = map[string]*entity.Credit{}
	}
	if st.Payments == nil {
		st.Payments = map[string]*entity.Payment{}
	}
	if st.Folios == nil {
		st.Folios = map[string]int64{}
	}
}

func (st *state) clone() *state {
	return &state{
		Products:    maps.Clone(st.Products),
		Categories:  maps.Clone(st.Categories),
		Branches:    maps.Clone(st.Branches),
		Registers:   maps.Clone(st.Registers),
		Users:       maps.Clone(st.Users),
		Clients:     maps.Clone(st.Clients),
		Sales:       maps.Clone(st.Sales),
		Credits:     maps.Clone(st.Credits),
		Payments:    maps.Clone(st.Payments),
		Movements:   st.Movements[:len(st.Movements):len(st.Movements)],
		Company:     st.Company,
		PriceLabels: st.PriceLabels,
		Folios:      maps.Clone(st.Folios),
	}
}

// Store almacén en memoria compartido por todos los repositorios.
type Store struct {
	mu   chanMutex
	st   *state
	path string
}

// NewStore crea un almacén vacío sin archivo.
func NewStore() *Store {
	return &Store{mu: newChanMutex(), st: newState()}
}

// Open crea un almacén respaldado por path. Si el archivo existe se carga.
func Open(path string) (*Store, error) {
	s := NewStore()
	s.path = path
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	st := &state{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	st.ensure()
	s.st = st
	return s, nil
}

// persistLocked escribe el estado en el archivo (temporal + rename). Requiere el lock.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.st)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("crear snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cerrar snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// runTx ejecuta fn con el lock exclusivo; si fn falla el estado vuelve a la copia previa.
func (s *Store) runTx(ctx context.Context, fn func(db session) error) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	snap := s.st.clone()
	if err := fn(session{store: s, tx: s.st}); err != nil {
		s.st = snap
		return err
	}
	if err := s.persistLocked(); err != nil {
		s.st = snap
		return err
	}
	return nil
}

func (s *Store) session() session {
	return session{store: s}
}

// session da acceso al estado: dentro de una transacción usa el estado ya bloqueado,
// fuera de ella toma el lock en cada operación.
type session struct {
	store *Store
	tx    *state
}

func (db session) read(ctx context.Context, fn func(st *state) error) error {
	if db.tx != nil {
		return fn(db.tx)
	}
	if err := db.store.mu.Lock(ctx); err != nil {
		return err
	}
	defer db.store.mu.Unlock()
	return fn(db.store.st)
}

func (db session) write(ctx context.Context, fn func(st *state) error) error {
	if db.tx != nil {
		return fn(db.tx)
	}
	return db.store.runTx(ctx, func(inner session) error {
		return fn(inner.tx)
	})
}

// chanMutex mutex que respeta la cancelación del contexto mientras espera.
type chanMutex chan struct{}

func newChanMutex() chanMutex { return make(chanMutex, 1) }

func (m chanMutex) Lock(ctx context.Context) error {
	select {
	case m <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m chanMutex) Unlock() { <-m }

// paginate aplica limit/offset; limit <= 0 devuelve todo desde offset.
func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
