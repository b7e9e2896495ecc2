package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/auth"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste-com-mais-de-32-caracteres"

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler})
	Setup(app, Deps{
		Stores:    NewMemoryStores(),
		JWTSecret: testSecret,
		Report:    report.Options{Dir: t.TempDir()},
	})
	return app
}

func token(t *testing.T, perms ...string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, "u-1", "Maria", perms, time.Hour)
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, method, path, tok string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestSetup_RequiresToken(t *testing.T) {
	app := newApp(t)

	for _, path := range []string{"/financialMovements", "/finance/getBankAccount", "/patrimonio", "/localizacao",
		"/patrimonioLocalizacao", "/SupplierForm", "/audit-logs"} {
		status, _ := call(t, app, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
	}
}

func TestSetup_PermissionPerRoute(t *testing.T) {
	app := newApp(t)
	viewer := token(t, auth.PermBankAccountView, auth.PermMovementView)

	status, _ := call(t, app, "GET", "/finance/getBankAccount", viewer, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, "POST", "/finance/createBankAccount", viewer, fiber.Map{"formData": fiber.Map{"name": "Caixa"}})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = call(t, app, "GET", "/SupplierForm", viewer, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// report usa a permissão de visualização
	status, body := call(t, app, "POST", "/financialMovements/report", viewer, fiber.Map{"formArquivo": "CSV"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, string(body), "Nenhuma movimentação financeira encontrada.")
}

func TestSetup_MutationsAreAudited(t *testing.T) {
	app := newApp(t)
	tok := token(t, auth.PermBankAccountCreate, auth.PermAuditView)

	status, body := call(t, app, "POST", "/finance/createBankAccount", tok, fiber.Map{"formData": fiber.Map{"name": "Caixa"}})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var acc models.BankAccount
	require.NoError(t, json.Unmarshal(body, &acc))

	status, body = call(t, app, "GET", "/audit-logs?entity_type=bank_account", tok, nil)
	require.Equal(t, fiber.StatusOK, status)

	var logs []models.AuditLog
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, acc.ID, logs[0].EntityID)
	assert.Equal(t, "u-1", logs[0].UserID)
	assert.Equal(t, "Maria", logs[0].UserName)
	assert.Equal(t, models.AuditActionCreate, logs[0].Action)
}

func TestSetup_MovementLifecycle(t *testing.T) {
	app := newApp(t)
	tok := token(t, auth.PermMovementCreate, auth.PermMovementView, auth.PermMovementEdit, auth.PermMovementDelete)

	status, body := call(t, app, "POST", "/financialMovements/create", tok, fiber.Map{
		"financialMovementsData": fiber.Map{
			"contaOrigem": "001", "contaDestino": "100", "nomeOrigem": "Sindicato", "nomeDestino": "Papelaria",
			"valorBruto": 250.75, "datadeVencimento": "2024-12-16",
		},
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var created models.FinancialMovement
	require.NoError(t, json.Unmarshal(body, &created))
	id := created.ID.String()

	status, _ = call(t, app, "GET", "/financialMovements/"+id, tok, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, body = call(t, app, "POST", "/financialMovements/report", tok, fiber.Map{
		"formArquivo": "CSV", "includeFields": fiber.Map{"datadeVencimento": true},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Conta Origem,Conta Destino,Nome Origem,Nome Destino,Data de Vencimento\n"+
		"001,100,Sindicato,Papelaria,16/12/2024\n", string(body))

	status, _ = call(t, app, "DELETE", "/financialMovements/delete/"+id, tok, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, "GET", "/financialMovements/"+id, tok, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
