package audit

import (
	"context"
	"encoding/json"

	"financeiro-backend/internal/models"
	"financeiro-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	EntityFinancialMovement     = "financial_movement"
	EntityBankAccount           = "bank_account"
	EntityPatrimonio            = "patrimonio"
	EntityPatrimonioLocalizacao = "patrimonio_localizacao"
	EntityLocalizacao           = "localizacao"
	EntitySupplier              = "supplier"
)

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    uuid.UUID
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Service struct {
	store repository.Repository[models.AuditLog]
}

func NewService(store repository.Repository[models.AuditLog]) *Service {
	return &Service{store: store}
}

// Record grava o log. Falha de gravação só é logada: a operação auditada já
// aconteceu e a resposta não deve mudar por causa disso.
func (s *Service) Record(ctx context.Context, log *logrus.Entry, opts LogOptions) {
	// jsonb não aceita string vazia, "null" é o JSON nulo
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := s.store.Insert(ctx, &entry); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"entity_type": opts.EntityType,
			"entity_id":   opts.EntityID,
			"action":      opts.Action,
		}).Error("falha ao gravar log de auditoria")
	}
}

func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
