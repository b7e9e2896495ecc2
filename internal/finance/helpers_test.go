package finance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/logger"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app       *fiber.App
	accounts  *repository.Memory[models.BankAccount, *models.BankAccount]
	movements *repository.Memory[models.FinancialMovement, *models.FinancialMovement]
	logs      *repository.Memory[models.AuditLog, *models.AuditLog]
}

func newTestEnv() *testEnv {
	env := &testEnv{
		accounts:  repository.NewMemory[models.BankAccount](func(a *models.BankAccount) string { return a.Name }),
		movements: repository.NewMemory[models.FinancialMovement](),
		logs:      repository.NewMemory[models.AuditLog](),
	}
	rec := audit.NewRecorder(audit.NewService(env.logs), logger.FromCtx)

	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler})
	app.Post("/finance/createBankAccount", CreateBankAccountHandler(env.accounts, rec))
	app.Get("/finance/getBankAccount", ListBankAccountsHandler(env.accounts))
	app.Get("/finance/bankAccount/:id", GetBankAccountHandler(env.accounts))
	app.Patch("/finance/updateBankAccount/:id", UpdateBankAccountHandler(env.accounts, rec))
	app.Delete("/finance/deleteBankAccount/:id", DeleteBankAccountHandler(env.accounts, rec))

	app.Post("/financialMovements/create", CreateMovementHandler(env.movements, rec))
	app.Get("/financialMovements", ListMovementsHandler(env.movements))
	app.Get("/financialMovements/:id", GetMovementHandler(env.movements))
	app.Patch("/financialMovements/update/:id", UpdateMovementHandler(env.movements, rec))
	app.Delete("/financialMovements/delete/:id", DeleteMovementHandler(env.movements, rec))
	env.app = app
	return env
}

// do envia body como JSON (string crua se body for string) e decodifica a resposta em out.
func (e *testEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
