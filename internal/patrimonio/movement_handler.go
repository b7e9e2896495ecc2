package patrimonio

import (
	"encoding/json"
	"fmt"
	"time"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const (
	movementEnvelope       = "patrimonioLocalizacaoData"
	movementLegacyEnvelope = "patrimonioData" // update de clientes antigos
	movementNotFound       = "PatrimonioLocalizacao not found"
	movementConflict       = "PatrimonioLocalizacao duplicada"
)

type MovementStore = repository.Repository[models.PatrimonioLocalizacao]

var movementErrors = apperror.StoreErrors{
	NotFound:      movementNotFound,
	Conflict:      movementConflict,
	FailureStatus: fiber.StatusBadRequest,
}

type CreateMovementRequest struct {
	TagNumber *int          `json:"numerodeEtiqueta"`
	From      string        `json:"de"`
	To        string        `json:"para"`
	MovedAt   *payload.Date `json:"data"`
}

type UpdateMovementRequest struct {
	TagNumber *int          `json:"numerodeEtiqueta"`
	From      *string       `json:"de"`
	To        *string       `json:"para"`
	MovedAt   *payload.Date `json:"data"`
}

// POST /patrimonioLocalizacao/create
func CreateMovementHandler(store MovementStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMovementRequest
		if err := payload.Decode(c, movementEnvelope, &body); err != nil {
			return err
		}
		if body.TagNumber == nil {
			return apperror.Validation("numerodeEtiqueta é obrigatório")
		}

		m := models.PatrimonioLocalizacao{
			TagNumber: *body.TagNumber,
			From:      body.From,
			To:        body.To,
			MovedAt:   time.Now(),
		}
		if body.MovedAt != nil {
			m.MovedAt = body.MovedAt.Time
		}
		if err := payload.Check(&m); err != nil {
			return err
		}

		if err := store.Insert(c.UserContext(), &m); err != nil {
			return movementErrors.From(err)
		}

		rec.Record(c, models.AuditActionCreate, audit.EntityPatrimonioLocalizacao, m.ID,
			fmt.Sprintf("Etiqueta %d movida de %q para %q", m.TagNumber, m.From, m.To), nil, m)

		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GET /patrimonioLocalizacao
func ListMovementsHandler(store MovementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.FindAll(c.UserContext())
		if err != nil {
			return movementErrors.From(err)
		}
		return c.JSON(items)
	}
}

// GET /patrimonioLocalizacao/:id
func GetMovementHandler(store MovementStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		m, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			return movementErrors.From(err)
		}
		return c.JSON(m)
	}
}

// PATCH /patrimonioLocalizacao/update/:id
func UpdateMovementHandler(store MovementStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		var body UpdateMovementRequest
		raw, err := payload.Envelope(c, movementEnvelope)
		if err != nil {
			raw, err = payload.Envelope(c, movementLegacyEnvelope)
		}
		if err == nil {
			if err := json.Unmarshal(raw, &body); err != nil {
				return apperror.Validation("Dados inválidos: " + err.Error())
			}
		}

		var before models.PatrimonioLocalizacao
		updated, err := store.UpdateByID(c.UserContext(), id, func(m *models.PatrimonioLocalizacao) error {
			before = *m
			if body.TagNumber != nil {
				m.TagNumber = *body.TagNumber
			}
			if body.From != nil {
				m.From = *body.From
			}
			if body.To != nil {
				m.To = *body.To
			}
			if body.MovedAt != nil {
				m.MovedAt = body.MovedAt.Time
			}
			return payload.Check(m)
		})
		if err != nil {
			return movementErrors.From(err)
		}

		rec.Record(c, models.AuditActionUpdate, audit.EntityPatrimonioLocalizacao, updated.ID,
			fmt.Sprintf("Movimentação da etiqueta %d atualizada", updated.TagNumber), before, updated)

		return c.JSON(updated)
	}
}

// DELETE /patrimonioLocalizacao/delete/:id
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

		rec.Record(c, models.AuditActionDelete, audit.EntityPatrimonioLocalizacao, deleted.ID,
			fmt.Sprintf("Movimentação da etiqueta %d removida", deleted.TagNumber), deleted, nil)

		return c.JSON(deleted)
	}
}
