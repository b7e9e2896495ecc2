package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implementa Repository sobre o postgres via gorm.
type GormStore[T any, PT entity[T]] struct {
	db *gorm.DB
}

func NewGormStore[T any, PT entity[T]](db *gorm.DB) *GormStore[T, PT] {
	return &GormStore[T, PT]{db: db}
}

func (s *GormStore[T, PT]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *GormStore[T, PT]) FindAll(ctx context.Context, filters ...Filter[T]) ([]T, error) {
	q := s.db.WithContext(ctx).Model(new(T))
	for _, f := range filters {
		q = f.Scope(q)
	}

	recs := make([]T, 0)
	if err := q.Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	return recs, nil
}

func (s *GormStore[T, PT]) FindOne(ctx context.Context, filter Filter[T]) (*T, error) {
	var rec T
	q := filter.Scope(s.db.WithContext(ctx).Model(new(T)))
	if err := q.Order("created_at ASC").First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *GormStore[T, PT]) Insert(ctx context.Context, rec *T) error {
	PT(rec).EnsureID()
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore[T, PT]) UpdateByID(ctx context.Context, id uuid.UUID, apply func(rec *T) error) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		if err := apply(&rec); err != nil {
			return err
		}
		PT(&rec).Touch(time.Now())
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *GormStore[T, PT]) DeleteByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// translate depende de gorm.Config.TranslateError para reconhecer chave duplicada.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
