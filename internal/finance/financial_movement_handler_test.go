package finance

import (
	"context"
	"strings"
	"testing"
	"time"

	"financeiro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movementData(extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"contaOrigem":      "Conta Movimento",
		"contaDestino":     "Fornecedor XPTO",
		"nomeOrigem":       "Sindicato",
		"nomeDestino":      "XPTO Ltda",
		"valorBruto":       1500.50,
		"formadePagamento": "PIX",
		"datadeVencimento": "2024-12-16",
		"cpFCnpj":          "12.345.678/0001-99",
	}
	for k, v := range extra {
		data[k] = v
	}
	return fiber.Map{"financialMovementsData": data}
}

func createMovement(t *testing.T, env *testEnv, extra fiber.Map) models.FinancialMovement {
	t.Helper()
	var m models.FinancialMovement
	status := env.do(t, "POST", "/financialMovements/create", movementData(extra), &m)
	require.Equal(t, fiber.StatusCreated, status)
	return m
}

func TestCreateMovement_EchoesFieldsAndDefaults(t *testing.T) {
	env := newTestEnv()
	m := createMovement(t, env, nil)

	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "Conta Movimento", m.OriginAccount)
	assert.Equal(t, "XPTO Ltda", m.DestinationName)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(m.GrossValue))
	assert.Equal(t, models.PaymentMethodPIX, m.PaymentMethod)
	assert.Equal(t, time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), m.DueDate.UTC())
	assert.Equal(t, " ", m.DocumentType)
	assert.Nil(t, m.PaymentDate)
	assert.False(t, m.FixedExpense)
	assert.False(t, m.NetValue.Valid)
}

func TestCreateMovement_DueDateDefaultsToNow(t *testing.T) {
	env := newTestEnv()
	before := time.Now().Add(-time.Second)

	var m models.FinancialMovement
	body := movementData(nil)
	delete(body["financialMovementsData"].(fiber.Map), "datadeVencimento")
	require.Equal(t, fiber.StatusCreated, env.do(t, "POST", "/financialMovements/create", body, &m))
	assert.True(t, m.DueDate.After(before))
}

func TestCreateMovement_Rejects(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{"sem envelope", fiber.Map{"contaOrigem": "x"}, "No data provided"},
		{"sem valor bruto", movementData(fiber.Map{"valorBruto": nil}), "valorBruto é obrigatório"},
		{"sem conta origem", movementData(fiber.Map{"contaOrigem": ""}), ""},
		{"forma inválida", movementData(fiber.Map{"formadePagamento": "Bitcoin"}), ""},
		{"desconto negativo", movementData(fiber.Map{"desconto": -10}), ""},
		{"descrição longa", movementData(fiber.Map{"descricao": strings.Repeat("x", 131)}), ""},
		{"data inválida", movementData(fiber.Map{"datadeVencimento": "16/12/2024"}), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]string
			status := env.do(t, "POST", "/financialMovements/create", tt.body, &out)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.NotEmpty(t, out["error"])
			if tt.msg != "" {
				assert.Equal(t, tt.msg, out["error"])
			}
		})
	}

	all, err := env.movements.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMovement_InvalidAndUnknownID(t *testing.T) {
	env := newTestEnv()

	var out map[string]string
	assert.Equal(t, fiber.StatusBadRequest, env.do(t, "GET", "/financialMovements/abc", nil, &out))
	assert.Equal(t, "Invalid ID", out["error"])

	unknown := uuid.NewString()
	for _, req := range []struct{ method, path string }{
		{"GET", "/financialMovements/" + unknown},
		{"PATCH", "/financialMovements/update/" + unknown},
		{"DELETE", "/financialMovements/delete/" + unknown},
	} {
		out = nil
		status := env.do(t, req.method, req.path, `{"financialMovementsData": {"baixada": true}}`, &out)
		assert.Equal(t, fiber.StatusNotFound, status, req.path)
		assert.Equal(t, "Financial Movement not found", out["error"])
	}
}

func TestUpdateMovement_PartialMerge(t *testing.T) {
	env := newTestEnv()
	m := createMovement(t, env, fiber.Map{"valorLiquido": 1400})

	var updated models.FinancialMovement
	status := env.do(t, "PATCH", "/financialMovements/update/"+m.ID.String(), fiber.Map{
		"financialMovementsData": fiber.Map{
			"baixada":         true,
			"datadePagamento": "2024-12-10",
			"valorLiquido":    nil,
			"cpFCnpj":         "000.000.000-00",
		},
	}, &updated)
	require.Equal(t, fiber.StatusOK, status)

	assert.True(t, updated.Paid)
	require.NotNil(t, updated.PaymentDate)
	assert.Equal(t, 10, updated.PaymentDate.Day())
	assert.False(t, updated.NetValue.Valid)
	assert.Equal(t, "12.345.678/0001-99", updated.TaxID)
	assert.Equal(t, m.OriginAccount, updated.OriginAccount)
	assert.True(t, m.GrossValue.Equal(updated.GrossValue))
	assert.True(t, updated.UpdatedAt.After(m.UpdatedAt))
}

func TestUpdateMovement_InvalidValueKeepsRecord(t *testing.T) {
	env := newTestEnv()
	m := createMovement(t, env, nil)

	var out map[string]string
	status := env.do(t, "PATCH", "/financialMovements/update/"+m.ID.String(), fiber.Map{
		"financialMovementsData": fiber.Map{"acrescimo": -1},
	}, &out)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var got models.FinancialMovement
	require.Equal(t, fiber.StatusOK, env.do(t, "GET", "/financialMovements/"+m.ID.String(), nil, &got))
	assert.False(t, got.Surcharge.Valid)
}

func TestDeleteMovement_ReturnsRecord(t *testing.T) {
	env := newTestEnv()
	m := createMovement(t, env, nil)

	var deleted models.FinancialMovement
	require.Equal(t, fiber.StatusOK, env.do(t, "DELETE", "/financialMovements/delete/"+m.ID.String(), nil, &deleted))
	assert.Equal(t, m.ID, deleted.ID)

	var list []models.FinancialMovement
	require.Equal(t, fiber.StatusOK, env.do(t, "GET", "/financialMovements", nil, &list))
	assert.Empty(t, list)

	logs, err := env.logs.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.AuditActionDelete, logs[1].Action)
	assert.Equal(t, "null", logs[1].AfterData)
}
