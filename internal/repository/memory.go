package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UniqueKey extrai de um registro o valor de um campo único. String vazia
// significa campo ausente e não participa da checagem.
type UniqueKey[T any] func(rec *T) string

// Memory é um Repository em processo, usado com STORE_DRIVER=memory e nos
// testes. Guarda cópias e devolve cópias; a ordem de listagem é a de inserção.
type Memory[T any, PT entity[T]] struct {
	mu     sync.Mutex
	order  []uuid.UUID
	recs   map[uuid.UUID]T
	unique []UniqueKey[T]
	now    func() time.Time
}

func NewMemory[T any, PT entity[T]](unique ...UniqueKey[T]) *Memory[T, PT] {
	return &Memory[T, PT]{
		recs:   make(map[uuid.UUID]T),
		unique: unique,
		now:    time.Now,
	}
}

// WithClock troca o relógio usado para os timestamps.
func (m *Memory[T, PT]) WithClock(now func() time.Time) *Memory[T, PT] {
	m.now = now
	return m
}

func (m *Memory[T, PT]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *Memory[T, PT]) FindAll(_ context.Context, filters ...Filter[T]) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		rec := m.recs[id]
		if matchAll(&rec, filters) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory[T, PT]) FindOne(_ context.Context, filter Filter[T]) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		rec := m.recs[id]
		if filter.Match(&rec) {
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory[T, PT]) Insert(_ context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := PT(rec)
	p.EnsureID()
	if _, exists := m.recs[p.GetID()]; exists {
		return fmt.Errorf("%w: id %s", ErrDuplicate, p.GetID())
	}
	if err := m.checkUnique(rec, uuid.Nil); err != nil {
		return err
	}

	p.Stamp(m.now())
	m.recs[p.GetID()] = *rec
	m.order = append(m.order, p.GetID())
	return nil
}

func (m *Memory[T, PT]) UpdateByID(_ context.Context, id uuid.UUID, apply func(rec *T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := apply(&rec); err != nil {
		return nil, err
	}
	if err := m.checkUnique(&rec, id); err != nil {
		return nil, err
	}

	PT(&rec).Touch(m.now())
	m.recs[id] = rec
	return &rec, nil
}

func (m *Memory[T, PT]) DeleteByID(_ context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.recs, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &rec, nil
}

func (m *Memory[T, PT]) checkUnique(rec *T, self uuid.UUID) error {
	for i, key := range m.unique {
		v := key(rec)
		if v == "" {
			continue
		}
		for id, other := range m.recs {
			if id == self {
				continue
			}
			if key(&other) == v {
				return fmt.Errorf("%w: chave %d = %q", ErrDuplicate, i, v)
			}
		}
	}
	return nil
}

func matchAll[T any](rec *T, filters []Filter[T]) bool {
	for _, f := range filters {
		if !f.Match(rec) {
			return false
		}
	}
	return true
}
