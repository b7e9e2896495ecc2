package finance

import (
	"encoding/json"
	"errors"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	bankAccountNotFound = "Bank Account not found"
	bankAccountDupName  = "Nome já cadastrado"
	bankAccountBadID    = "ID inválido ou ausente"
)

type BankAccountStore = repository.Repository[models.BankAccount]

// Falhas do store em create e list são 400; nas rotas com id, 500.
var bankAccountCollectionErrors = apperror.StoreErrors{
	NotFound:      bankAccountNotFound,
	Conflict:      bankAccountDupName,
	FailureStatus: fiber.StatusBadRequest,
}

// name chega como qualquer tipo JSON e é checado à mão.
type createBankAccountRequest struct {
	Name          any    `json:"name"`
	Bank          string `json:"bank"`
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
	AccountType   string `json:"accountType"`
}

type UpdateBankAccountRequest struct {
	Name          *string `json:"name"`
	Bank          *string `json:"bank"`
	AccountNumber *string `json:"accountNumber"`
	Status        *string `json:"status"`
	AccountType   *string `json:"accountType"`
}

func byName(name string) repository.Where[models.BankAccount] {
	return repository.Where[models.BankAccount]{
		Column: "name",
		Value:  name,
		Test:   func(a *models.BankAccount) bool { return a.Name == name },
	}
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	}
	return false
}

func bankAccountID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := payload.ParseID(c)
	if !ok {
		return uuid.Nil, apperror.ServerValidation(bankAccountBadID)
	}
	return id, nil
}

// POST /finance/createBankAccount
func CreateBankAccountHandler(store BankAccountStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createBankAccountRequest
		if raw, err := payload.Envelope(c, "formData"); err == nil {
			if err := json.Unmarshal(raw, &body); err != nil {
				return apperror.Validation("Dados inválidos: " + err.Error())
			}
		}

		if falsy(body.Name) {
			return apperror.Validation("Nome não fornecido")
		}
		name, ok := body.Name.(string)
		if !ok {
			return apperror.ServerValidation("Tipo de dado incorreto")
		}

		_, err := store.FindOne(c.UserContext(), byName(name))
		switch {
		case err == nil:
			return apperror.Conflict(bankAccountDupName)
		case !errors.Is(err, repository.ErrNotFound):
			return bankAccountCollectionErrors.From(err)
		}

		account := models.BankAccount{
			Name:          name,
			Bank:          body.Bank,
			AccountNumber: body.AccountNumber,
			Status:        body.Status,
			AccountType:   body.AccountType,
		}
		if err := store.Insert(c.UserContext(), &account); err != nil {
			return bankAccountCollectionErrors.From(err)
		}

		rec.Record(c, models.AuditActionCreate, audit.EntityBankAccount, account.ID,
			"Conta bancária criada: "+account.Name, nil, account)

		return c.Status(fiber.StatusCreated).JSON(account)
	}
}

// GET /finance/getBankAccount
func ListBankAccountsHandler(store BankAccountStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := store.FindAll(c.UserContext())
		if err != nil {
			return bankAccountCollectionErrors.From(err)
		}
		return c.JSON(accounts)
	}
}

// GET /finance/bankAccount/:id
func GetBankAccountHandler(store BankAccountStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := bankAccountID(c)
		if err != nil {
			return err
		}

		account, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			return apperror.FromStore(err, bankAccountNotFound, bankAccountDupName)
		}
		return c.JSON(account)
	}
}

// PATCH /finance/updateBankAccount/:id
// Aceita os campos dentro de formData ou na raiz do corpo.
func UpdateBankAccountHandler(store BankAccountStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := bankAccountID(c)
		if err != nil {
			return err
		}

		var body UpdateBankAccountRequest
		if raw := payload.EnvelopeOrRoot(c, "formData"); len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				return apperror.ServerValidation("Dados inválidos: " + err.Error())
			}
		}
		if body.Name != nil && *body.Name == "" {
			return apperror.ServerValidation("Nome não fornecido")
		}

		var before models.BankAccount
		updated, err := store.UpdateByID(c.UserContext(), id, func(a *models.BankAccount) error {
			before = *a
			if body.Name != nil {
				a.Name = *body.Name
			}
			if body.Bank != nil {
				a.Bank = *body.Bank
			}
			if body.AccountNumber != nil {
				a.AccountNumber = *body.AccountNumber
			}
			if body.Status != nil {
				a.Status = *body.Status
			}
			if body.AccountType != nil {
				a.AccountType = *body.AccountType
			}
			return nil
		})
		if err != nil {
			return apperror.FromStore(err, bankAccountNotFound, bankAccountDupName)
		}

		rec.Record(c, models.AuditActionUpdate, audit.EntityBankAccount, updated.ID,
			"Conta bancária atualizada: "+updated.Name, before, updated)

		return c.JSON(updated)
	}
}

// DELETE /finance/deleteBankAccount/:id
func DeleteBankAccountHandler(store BankAccountStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := bankAccountID(c)
		if err != nil {
			return err
		}

		deleted, err := store.DeleteByID(c.UserContext(), id)
		if err != nil {
			return apperror.FromStore(err, bankAccountNotFound, bankAccountDupName)
		}

		rec.Record(c, models.AuditActionDelete, audit.EntityBankAccount, deleted.ID,
			"Conta bancária removida: "+deleted.Name, deleted, nil)

		return c.JSON(fiber.Map{"message": "Conta deletada com sucesso"})
	}
}
