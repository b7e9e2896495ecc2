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
	"github.com/shopspring/decimal"
)

const (
	patrimonioEnvelope = "patrimonioData"
	patrimonioNotFound = "Patrimonio not found"
	patrimonioConflict = "Patrimonio duplicado"
)

type Store = repository.Repository[models.Patrimonio]

var patrimonioErrors = apperror.StoreErrors{
	NotFound:      patrimonioNotFound,
	Conflict:      patrimonioConflict,
	FailureStatus: fiber.StatusBadRequest,
}

type CreatePatrimonioRequest struct {
	Name             string              `json:"nome"`
	Description      string              `json:"descricao"`
	Value            decimal.NullDecimal `json:"valor"`
	SerialNumber     string              `json:"numerodeSerie"`
	TagNumber        *int                `json:"numerodeEtiqueta"`
	Location         string              `json:"localizacao"`
	Donation         bool                `json:"doacao"`
	RegistrationDate *payload.Date       `json:"datadeCadastro"`
}

type UpdatePatrimonioRequest struct {
	Name             *string          `json:"nome"`
	Description      *string          `json:"descricao"`
	Value            *decimal.Decimal `json:"valor"`
	SerialNumber     *string          `json:"numerodeSerie"`
	TagNumber        *int             `json:"numerodeEtiqueta"`
	Location         *string          `json:"localizacao"`
	Donation         *bool            `json:"doacao"`
	RegistrationDate *payload.Date    `json:"datadeCadastro"`
}

func (r UpdatePatrimonioRequest) apply(p *models.Patrimonio) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Value != nil {
		p.Value = *r.Value
	}
	if r.SerialNumber != nil {
		p.SerialNumber = *r.SerialNumber
	}
	if r.TagNumber != nil {
		p.TagNumber = *r.TagNumber
	}
	if r.Location != nil {
		p.Location = *r.Location
	}
	if r.Donation != nil {
		p.Donation = *r.Donation
	}
	if r.RegistrationDate != nil {
		p.RegistrationDate = r.RegistrationDate.Time
	}
}

// POST /patrimonio/create
func CreatePatrimonioHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePatrimonioRequest
		if err := payload.Decode(c, patrimonioEnvelope, &body); err != nil {
			return err
		}
		if !body.Value.Valid {
			return apperror.Validation("valor é obrigatório")
		}
		if body.TagNumber == nil {
			return apperror.Validation("numerodeEtiqueta é obrigatório")
		}

		p := models.Patrimonio{
			Name:             body.Name,
			Description:      body.Description,
			Value:            body.Value.Decimal,
			SerialNumber:     body.SerialNumber,
			TagNumber:        *body.TagNumber,
			Location:         body.Location,
			Donation:         body.Donation,
			RegistrationDate: time.Now(),
		}
		if body.RegistrationDate != nil {
			p.RegistrationDate = body.RegistrationDate.Time
		}
		if err := payload.Check(&p); err != nil {
			return err
		}

		if err := store.Insert(c.UserContext(), &p); err != nil {
			return patrimonioErrors.From(err)
		}

		rec.Record(c, models.AuditActionCreate, audit.EntityPatrimonio, p.ID,
			fmt.Sprintf("Patrimônio criado: %s (etiqueta %d)", p.Name, p.TagNumber), nil, p)

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GET /patrimonio
func ListPatrimonioHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.FindAll(c.UserContext())
		if err != nil {
			return patrimonioErrors.From(err)
		}
		return c.JSON(items)
	}
}

// GET /patrimonio/:id
func GetPatrimonioHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		p, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			return patrimonioErrors.From(err)
		}
		return c.JSON(p)
	}
}

// PATCH /patrimonio/update/:id
func UpdatePatrimonioHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}

		var body UpdatePatrimonioRequest
		if raw, err := payload.Envelope(c, patrimonioEnvelope); err == nil {
			if err := json.Unmarshal(raw, &body); err != nil {
				return apperror.Validation("Dados inválidos: " + err.Error())
			}
		}

		var before models.Patrimonio
		updated, err := store.UpdateByID(c.UserContext(), id, func(p *models.Patrimonio) error {
			before = *p
			body.apply(p)
			return payload.Check(p)
		})
		if err != nil {
			return patrimonioErrors.From(err)
		}

		rec.Record(c, models.AuditActionUpdate, audit.EntityPatrimonio, updated.ID,
			"Patrimônio atualizado: "+updated.Name, before, updated)

		return c.JSON(updated)
	}
}

// DELETE /patrimonio/delete/:id
func DeletePatrimonioHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := payload.ParseID(c)
		if !ok {
			return apperror.Validation("Invalid ID")
		}
		deleted, err := store.DeleteByID(c.UserContext(), id)
		if err != nil {
			return patrimonioErrors.From(err)
		}

		rec.Record(c, models.AuditActionDelete, audit.EntityPatrimonio, deleted.ID,
			"Patrimônio removido: "+deleted.Name, deleted, nil)

		return c.JSON(deleted)
	}
}
