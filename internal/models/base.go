package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// valores monetários saem como número no JSON, igual ao que o cliente envia
	decimal.MarshalJSONWithoutQuotes = true
}

// Base é embutido em todas as entidades persistidas.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	b.EnsureID()
	return nil
}

func (b *Base) GetID() uuid.UUID { return b.ID }

func (b *Base) EnsureID() {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
}

// Stamp preenche os timestamps de criação se ainda estiverem zerados.
func (b *Base) Stamp(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
}

// Touch marca uma atualização. UpdatedAt sempre avança, mesmo se o relógio
// devolver o mesmo instante da última escrita.
func (b *Base) Touch(now time.Time) {
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = now
}

// Entity é satisfeito por ponteiros para qualquer model que embuta Base.
type Entity interface {
	GetID() uuid.UUID
	EnsureID()
	Stamp(now time.Time)
	Touch(now time.Time)
}
