package finance

import (
	"encoding/json"
	"time"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	movementEnvelope = "financialMovementsData"
	movementNotFound = "Financial Movement not found"
	movementConflict = "Movimentação financeira duplicada"
)

type MovementStore = repository.Repository[models.FinancialMovement]

var movementErrors = apperror.StoreErrors{
	NotFound:      movementNotFound,
	Conflict:      movementConflict,
	FailureStatus: fiber.StatusBadRequest,
}

type CreateMovementRequest struct {
	OriginAccount      string               `json:"contaOrigem"`
	DestinationAccount string               `json:"contaDestino"`
	OriginName         string               `json:"nomeOrigem"`
	DestinationName    string               `json:"nomeDestino"`
	DocumentType       string               `json:"tipoDocumento"`
	TaxID              string               `json:"cpFCnpj"`
	GrossValue         decimal.NullDecimal  `json:"valorBruto"`
	NetValue           decimal.NullDecimal  `json:"valorLiquido"`
	Surcharge          decimal.NullDecimal  `json:"acrescimo"`
	Discount           decimal.NullDecimal  `json:"desconto"`
	PaymentMethod      models.PaymentMethod `json:"formadePagamento"`
	DueDate            *payload.Date        `json:"datadeVencimento"`
	PaymentDate        *payload.Date        `json:"datadePagamento"`
	Paid               bool                 `json:"baixada"`
	Description        string               `json:"descricao"`
	FixedExpense       bool                 `json:"gastoFixo"`
}

// UpdateMovementRequest não tem cpFCnpj: o campo é imutável e, se vier, é ignorado.
type UpdateMovementRequest struct {
	OriginAccount      *string                           `json:"contaOrigem"`
	DestinationAccount *string                           `json:"contaDestino"`
	OriginName         *string                           `json:"nomeOrigem"`
	DestinationName    *string                           `json:"nomeDestino"`
	DocumentType       *string                           `json:"tipoDocumento"`
	GrossValue         *decimal.Decimal                  `json:"valorBruto"`
	NetValue           payload.Optional[decimal.Decimal] `json:"valorLiquido"`
	Surcharge          payload.Optional[decimal.Decimal] `json:"acrescimo"`
	Discount           payload.Optional[decimal.Decimal] `json:"desconto"`
	PaymentMethod      *models.PaymentMethod             `json:"formadePagamento"`
	DueDate            *payload.Date                     `json:"datadeVencimento"`
	PaymentDate        payload.Optional[payload.Date]    `json:"datadePagamento"`
	Paid               *bool                             `json:"baixada"`
	Description        *string                           `json:"descricao"`
	FixedExpense       *bool                             `json:"gastoFixo"`
}

func (r CreateMovementRequest) toModel(now time.Time) models.FinancialMovement {
	m := models.FinancialMovement{
		OriginAccount:      r.OriginAccount,
		DestinationAccount: r.DestinationAccount,
		OriginName:         r.OriginName,
		DestinationName:    r.DestinationName,
		DocumentType:       r.DocumentType,
		TaxID:              r.TaxID,
		GrossValue:         r.GrossValue.Decimal,
		NetValue:           r.NetValue,
		Surcharge:          r.Surcharge,
		Discount:           r.Discount,
		PaymentMethod:      r.PaymentMethod,
		DueDate:            now,
		Paid:               r.Paid,
		Description:        r.Description,
		FixedExpense:       r.FixedExpense,
	}
	if m.DocumentType == "" {
		m.DocumentType = " "
	}
	if r.DueDate != nil {
		m.DueDate = r.DueDate.Time
	}
	if r.PaymentDate != nil {
		t := r.PaymentDate.Time
		m.PaymentDate = &t
	}
	return m
}

func nullable(o payload.Optional[decimal.Decimal], dst *decimal.NullDecimal) {
	switch {
	case !o.Set:
	case o.Null:
		*dst = decimal.NullDecimal{}
	default:
		*dst = decimal.NewNullDecimal(o.Value)
	}
}

func (r UpdateMovementRequest) apply(m *models.FinancialMovement) {
	setString(&m.OriginAccount, r.OriginAccount)
	setString(&m.DestinationAccount, r.DestinationAccount)
	setString(&m.OriginName, r.OriginName)
	setString(&m.DestinationName, r.DestinationName)
	setString(&m.DocumentType, r.DocumentType)
	setString(&m.Description, r.Description)

	if r.GrossValue != nil {
		m.GrossValue = *r.GrossValue
	}
	nullable(r.NetValue, &m.NetValue)
	nullable(r.Surcharge, &m.Surcharge)
	nullable(r.Discount, &m.Discount)

	if r.PaymentMethod != nil {
		m.PaymentMethod = *r.PaymentMethod
	}
	if r.DueDate != nil {
		m.DueDate = r.DueDate.Time
	}
	if r.PaymentDate.Set {
		if r.PaymentDate.Null {
			m.PaymentDate = nil
		} else {
			t := r.PaymentDate.Value.Time
			m.PaymentDate = &t
		}
	}
	if r.Paid != nil {
		m.Paid = *r.Paid
	}
	if r.FixedExpense != nil {
		m.FixedExpense = *r.FixedExpense
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// POST /financialMovements/create
func CreateMovementHandler(store MovementStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMovementRequest
		if err := payload.Decode(c, movementEnvelope, &body); err != nil {
			return err
		}
		if !body.GrossValue.Valid {
			return apperror.Validation("valorBruto é obrigatório")
		}

		movement := body.toModel(time.Now())
		if err := payload.Check(&movement); err != nil {
			return err
		}

		if err := store.Insert(c.UserContext(), &movement); err != nil {
			return movementErrors.From(err)
		}

		rec.Record(c, models.AuditActionCreate, audit.EntityFinancialMovement, movement.ID,
			"Movimentação financeira criada", nil, movement)

		return c.Status(fiber.StatusCreated).JSON(movement)
	}
}

// GET /financialMovements
func ListMovementsHandler(store MovementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movements, err := store.FindAll(c.UserContext())
		if err != nil {
			return movementErrors.From(err)
		}
		return c.JSON(movements)
	}
}

// GET /financialMovements/:id
func GetMovementHandler(store MovementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		movement, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			return movementErrors.From(err)
		}
		return c.JSON(movement)
	}
}

// PATCH /financialMovements/update/:id
// Sem financialMovementsData o registro só tem updatedAt renovado.
func UpdateMovementHandler(store MovementStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		var body UpdateMovementRequest
		if raw, err := payload.Envelope(c, movementEnvelope); err == nil {
			if err := json.Unmarshal(raw, &body); err != nil {
				return apperror.Validation("Dados inválidos: " + err.Error())
			}
		}

		var before models.FinancialMovement
		updated, err := store.UpdateByID(c.UserContext(), id, func(m *models.FinancialMovement) error {
			before = *m
			body.apply(m)
			return payload.Check(m)
		})
		if err != nil {
			return movementErrors.From(err)
		}

		rec.Record(c, models.AuditActionUpdate, audit.EntityFinancialMovement, updated.ID,
			"Movimentação financeira atualizada", before, updated)

		return c.JSON(updated)
	}
}

// DELETE /financialMovements/delete/:id
func DeleteMovementHandler(store MovementStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		deleted, err := store.DeleteByID(c.UserContext(), id)
		if err != nil {
			return movementErrors.From(err)
		}

		rec.Record(c, models.AuditActionDelete, audit.EntityFinancialMovement, deleted.ID,
			"Movimentação financeira removida", deleted, nil)

		return c.JSON(deleted)
	}
}
