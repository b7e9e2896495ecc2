package patrimonio

import (
	"encoding/json"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/audit"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const (
	localizacaoEnvelope = "localizacaoData"
	localizacaoNotFound = "Localizacao not found"
	localizacaoConflict = "Localizacao duplicada"
)

type LocalizacaoStore = repository.Repository[models.Localizacao]

var localizacaoErrors = apperror.StoreErrors{
	NotFound:      localizacaoNotFound,
	Conflict:      localizacaoConflict,
	FailureStatus: fiber.StatusBadRequest,
}

type localizacaoRequest struct {
	Label *string `json:"localizacao"`
}

// POST /localizacao/create
func CreateLocalizacaoHandler(store LocalizacaoStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body localizacaoRequest
		if err := payload.Decode(c, localizacaoEnvelope, &body); err != nil {
			return err
		}

		var loc models.Localizacao
		if body.Label != nil {
			loc.Label = *body.Label
		}
		if err := store.Insert(c.UserContext(), &loc); err != nil {
			return localizacaoErrors.From(err)
		}

		rec.Record(c, models.AuditActionCreate, audit.EntityLocalizacao, loc.ID,
			"Localização criada: "+loc.Label, nil, loc)

		return c.Status(fiber.StatusCreated).JSON(loc)
	}
}

// GET /localizacao
func ListLocalizacaoHandler(store LocalizacaoStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.FindAll(c.UserContext())
		if err != nil {
			return localizacaoErrors.From(err)
		}
		return c.JSON(items)
	}
}

// GET /localizacao/:id
func GetLocalizacaoHandler(store LocalizacaoStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		loc, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			return localizacaoErrors.From(err)
		}
		return c.JSON(loc)
	}
}

// PATCH /localizacao/update/:id
func UpdateLocalizacaoHandler(store LocalizacaoStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		var body localizacaoRequest
		if raw, err := payload.Envelope(c, localizacaoEnvelope); err == nil {
			if err := json.Unmarshal(raw, &body); err != nil {
				return apperror.Validation("Dados inválidos: " + err.Error())
			}
		}

		var before models.Localizacao
		updated, err := store.UpdateByID(c.UserContext(), id, func(l *models.Localizacao) error {
			before = *l
			if body.Label != nil {
				l.Label = *body.Label
			}
			return nil
		})
		if err != nil {
			return localizacaoErrors.From(err)
		}

		rec.Record(c, models.AuditActionUpdate, audit.EntityLocalizacao, updated.ID,
			"Localização atualizada: "+updated.Label, before, updated)

		return c.JSON(updated)
	}
}

// DELETE /localizacao/delete/:id
func DeleteLocalizacaoHandler(store LocalizacaoStore, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		deleted, err := store.DeleteByID(c.UserContext(), id)
		if err != nil {
			return localizacaoErrors.From(err)
		}

		rec.Record(c, models.AuditActionDelete, audit.EntityLocalizacao, deleted.ID,
			"Localização removida: "+deleted.Label, deleted, nil)

		return c.JSON(deleted)
	}
}
