package repository

import (
	"context"
	"errors"

	"financeiro-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("registro não encontrado")
	ErrDuplicate = errors.New("registro duplicado")
)

// Filter é um predicado que sabe se aplicar tanto a uma query do gorm
// quanto a um registro já carregado em memória. As duas formas precisam
// concordar.
type Filter[T any] interface {
	Scope(db *gorm.DB) *gorm.DB
	Match(rec *T) bool
}

// Repository é o contrato de persistência de uma entidade.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filters ...Filter[T]) ([]T, error)
	FindOne(ctx context.Context, filter Filter[T]) (*T, error)
	Insert(ctx context.Context, rec *T) error
	// UpdateByID carrega o registro, aplica apply e grava, tudo de forma
	// atômica em relação a outras escritas no mesmo id.
	UpdateByID(ctx context.Context, id uuid.UUID, apply func(rec *T) error) (*T, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*T, error)
}

type entity[T any] interface {
	*T
	models.Entity
}

// Where é um Filter de igualdade simples sobre uma coluna.
type Where[T any] struct {
	Column string
	Value  any
	Test   func(rec *T) bool
}

func (w Where[T]) Scope(db *gorm.DB) *gorm.DB {
	return db.Where(w.Column+" = ?", w.Value)
}

func (w Where[T]) Match(rec *T) bool { return w.Test(rec) }
