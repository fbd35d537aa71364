// Package memory implementación en memoria de los repositorios y del TxRunner.
// Se usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// row guarda el valor junto con su orden de inserción para desempatar listados.
type row[T any] struct {
	v   T
	seq int64
}

type table[T any] map[string]row[T]

func (t table[T]) clone() table[T] {
	out := make(table[T], len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// sorted devuelve copias de las filas que cumplen keep, ordenadas por less y luego por inserción.
func (t table[T]) sorted(keep func(*T) bool, less func(a, b *T) int) []*T {
	rows := make([]row[T], 0, len(t))
	for _, r := range t {
		if keep == nil || keep(&r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if less != nil {
			if c := less(&rows[i].v, &rows[j].v); c != 0 {
				return c < 0
			}
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*T, 0, len(rows))
	for i := range rows {
		v := rows[i].v
		out = append(out, &v)
	}
	return out
}

func (t table[T]) get(id string) *T {
	r, ok := t[id]
	if !ok {
		return nil
	}
	v := r.v
	return &v
}

type state struct {
	seq      int64
	orders   table[entity.Order]
	works    table[entity.OrderWork]
	parts    table[entity.OrderPart]
	expenses table[entity.Expense]
	users    table[entity.User]
	services table[entity.Service]
	comments table[entity.Comment]
	audit    []entity.AuditLog
}

func newState() *state {
	return &state{
		orders:   table[entity.Order]{},
		works:    table[entity.OrderWork]{},
		parts:    table[entity.OrderPart]{},
		expenses: table[entity.Expense]{},
		users:    table[entity.User]{},
		services: table[entity.Service]{},
		comments: table[entity.Comment]{},
	}
}

func (s *state) clone() *state {
	return &state{
		seq:      s.seq,
		orders:   s.orders.clone(),
		works:    s.works.clone(),
		parts:    s.parts.clone(),
		expenses: s.expenses.clone(),
		users:    s.users.clone(),
		services: s.services.clone(),
		comments: s.comments.clone(),
		audit:    append([]entity.AuditLog(nil), s.audit...),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Store guarda todo en mapas protegidos por un único mutex.
// Cada Run trabaja sobre una copia y la publica sólo si fn no devuelve error.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run implementa ports.TxRunner. Las transacciones se serializan.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

func reposFor(st *state) ports.Repos {
	return ports.Repos{
		Orders:   &orderRepo{st: st},
		Works:    &workRepo{st: st},
		Parts:    &partRepo{st: st},
		Expenses: &expenseRepo{st: st},
		Users:    &userRepo{st: st},
		Services: &serviceRepo{st: st},
		Comments: &commentRepo{st: st},
		Audit:    &auditRepo{st: st},
	}
}

var _ ports.TxRunner = (*Store)(nil)
