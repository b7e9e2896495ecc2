package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_TouchAlwaysAdvances(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var b Base
	b.Stamp(now)

	b.Touch(now)
	assert.True(t, b.UpdatedAt.After(now))

	later := now.Add(time.Hour)
	b.Touch(later)
	assert.Equal(t, later, b.UpdatedAt)
	assert.Equal(t, now, b.CreatedAt)
}

func TestBase_EnsureIDKeepsExisting(t *testing.T) {
	id := uuid.New()
	b := Base{ID: id}
	b.EnsureID()
	assert.Equal(t, id, b.ID)

	var empty Base
	empty.EnsureID()
	assert.NotEqual(t, uuid.Nil, empty.ID)
}

func validMovement() FinancialMovement {
	return FinancialMovement{
		OriginAccount:      "001",
		DestinationAccount: "002",
		OriginName:         "Sindicato",
		DestinationName:    "Fornecedor",
		GrossValue:         decimal.NewFromInt(100),
		PaymentMethod:      PaymentMethodPIX,
	}
}

func TestFinancialMovement_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *FinancialMovement)
		valid  bool
	}{
		{"válida", func(m *FinancialMovement) {}, true},
		{"sem forma de pagamento", func(m *FinancialMovement) { m.PaymentMethod = "" }, true},
		{"forma desconhecida", func(m *FinancialMovement) { m.PaymentMethod = "Bitcoin" }, false},
		{"desconto negativo", func(m *FinancialMovement) { m.Discount = decimal.NewNullDecimal(decimal.NewFromInt(-1)) }, false},
		{"acréscimo zero", func(m *FinancialMovement) { m.Surcharge = decimal.NewNullDecimal(decimal.Zero) }, true},
		{"descrição longa", func(m *FinancialMovement) { m.Description = strings.Repeat("a", MaxDescriptionLength+1) }, false},
		{"sem conta origem", func(m *FinancialMovement) { m.OriginAccount = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMovement()
			tt.mutate(&m)
			v := validate.Struct(&m)
			assert.Equal(t, tt.valid, v.Validate(), v.Errors.One())
		})
	}
}

func TestPatrimonio_TagRange(t *testing.T) {
	for _, tag := range []int{0, 9999} {
		p := Patrimonio{Name: "Mesa", TagNumber: tag}
		assert.True(t, validate.Struct(&p).Validate(), "etiqueta %d", tag)
	}
	for _, tag := range []int{-1, 10000} {
		p := PatrimonioLocalizacao{TagNumber: tag}
		assert.False(t, validate.Struct(&p).Validate(), "etiqueta %d", tag)
	}
}

func TestFinancialMovement_JSONKeys(t *testing.T) {
	m := validMovement()
	m.EnsureID()
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Contains(t, out, "_id")
	assert.Equal(t, "001", out["contaOrigem"])
	assert.Equal(t, float64(100), out["valorBruto"])
	assert.Nil(t, out["datadePagamento"])
	assert.Nil(t, out["valorLiquido"])
}
