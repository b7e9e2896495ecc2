package supplier

import (
	"encoding/json"
	"strconv"
	"strings"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const (
	envelope  = "supplierFormData"
	notFound  = "Supplier not found"
	duplicate = "Fornecedor já cadastrado"
)

type Store = repository.Repository[models.Supplier]

var supplierErrors = apperror.StoreErrors{
	NotFound:      notFound,
	Conflict:      duplicate,
	FailureStatus: fiber.StatusBadRequest,
}

// UniqueKeys são os campos únicos de Supplier, para o store em memória.
var UniqueKeys = []repository.UniqueKey[models.Supplier]{
	func(s *models.Supplier) string { return s.Name },
	func(s *models.Supplier) string { return deref(s.TaxID) },
	func(s *models.Supplier) string { return deref(s.Email) },
	func(s *models.Supplier) string { return deref(s.MobilePhone) },
	func(s *models.Supplier) string { return deref(s.Phone) },
	func(s *models.Supplier) string { return deref(s.PixKey) },
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// text converte o valor já validado em string; números (cep, numeroBanco, dv)
// chegam como float64.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	}
	return ""
}

func optional(v any) *string {
	s := strings.TrimSpace(text(v))
	if s == "" {
		return nil
	}
	return &s
}

// assign copia para s os campos presentes em f. cpfCnpj só é lido na criação.
func assign(s *models.Supplier, f Fields, creating bool) {
	setters := map[string]func(v any){
		"nome":              func(v any) { s.Name = strings.TrimSpace(text(v)) },
		"tipoPessoa":        func(v any) { s.PersonType = models.PersonType(text(v)) },
		"statusFornecedor":  func(v any) { s.Status = models.SupplierStatus(text(v)) },
		"naturezaTransacao": func(v any) { s.TransactionNature = models.TransactionNature(text(v)) },
		"email":             func(v any) { s.Email = optional(v) },
		"nomeContato":       func(v any) { s.ContactName = text(v) },
		"celular":           func(v any) { s.MobilePhone = optional(v) },
		"telefone":          func(v any) { s.Phone = optional(v) },
		"cep":               func(v any) { s.PostalCode = text(v) },
		"cidade":            func(v any) { s.City = text(v) },
		"uf_endereco":       func(v any) { s.State = text(v) },
		"logradouro":        func(v any) { s.Street = text(v) },
		"complemento":       func(v any) { s.Complement = text(v) },
		"nomeBanco":         func(v any) { s.BankName = text(v) },
		"agencia":           func(v any) { s.Agency = text(v) },
		"numeroBanco":       func(v any) { s.BankNumber = text(v) },
		"dv":                func(v any) { s.CheckDigit = text(v) },
		"chavePix":          func(v any) { s.PixKey = optional(v) },
	}
	if creating {
		setters["cpfCnpj"] = func(v any) { s.TaxID = optional(v) }
	}

	for key, set := range setters {
		v, ok := f[key]
		if !ok || (v == nil && key == "nome") {
			continue
		}
		set(v)
	}
}

func decodeFields(raw json.RawMessage) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, apperror.Validation("Dados inválidos: " + err.Error())
	}
	if f == nil {
		f = Fields{}
	}
	return f, nil
}

// POST /SupplierForm/create
func CreateSupplierHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := payload.Envelope(c, envelope)
		if err != nil {
			return apperror.Validation("No data provided")
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return err
		}
		if err := Validate(fields, true); err != nil {
			return err
		}

		var s models.Supplier
		assign(&s, fields, true)
		if err := store.Insert(c.UserContext(), &s); err != nil {
			return supplierErrors.From(err)
		}

		rec.Record(c, models.AuditActionCreate, audit.EntitySupplier, s.ID,
			"Fornecedor criado: "+s.Name, nil, s)

		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// GET /SupplierForm
func ListSuppliersHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.FindAll(c.UserContext())
		if err != nil {
			return supplierErrors.From(err)
		}
		return c.JSON(items)
	}
}

// GET /SupplierForm/:id
func GetSupplierHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		s, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			return supplierErrors.From(err)
		}
		return c.JSON(s)
	}
}

// PATCH /SupplierForm/update/:id
func UpdateSupplierHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		fields := Fields{}
		if raw, err := payload.Envelope(c, envelope); err == nil {
			if fields, err = decodeFields(raw); err != nil {
				return err
			}
		}
		if err := Validate(fields, false); err != nil {
			return err
		}

		var before models.Supplier
		updated, err := store.UpdateByID(c.UserContext(), id, func(s *models.Supplier) error {
			before = *s
			assign(s, fields, false)
			return nil
		})
		if err != nil {
			return supplierErrors.From(err)
		}

		rec.Record(c, models.AuditActionUpdate, audit.EntitySupplier, updated.ID,
			"Fornecedor atualizado: "+updated.Name, before, updated)

		return c.JSON(updated)
	}
}

// DELETE /SupplierForm/delete/:id
func DeleteSupplierHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		deleted, err := store.DeleteByID(c.UserContext(), id)
		if err != nil {
			return supplierErrors.From(err)
		}

		rec.Record(c, models.AuditActionDelete, audit.EntitySupplier, deleted.ID,
			"Fornecedor removido: "+deleted.Name, deleted, nil)

		return c.JSON(deleted)
	}
}
