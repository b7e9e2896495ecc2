package audit

import (
	"strings"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/auth"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recorder monta LogOptions a partir da requisição e grava pelo Service.
type Recorder interface {
	Record(c *fiber.Ctx, action models.AuditAction, entityType string, entityID uuid.UUID, description string, before, after any)
}

type fiberRecorder struct {
	svc *Service
	log func(c *fiber.Ctx) *logrus.Entry
}

// NewRecorder liga o Service ao contexto do fiber: usuário vem do token e a
// entry de log vem de logFn.
func NewRecorder(svc *Service, logFn func(c *fiber.Ctx) *logrus.Entry) Recorder {
	return &fiberRecorder{svc: svc, log: logFn}
}

func (r *fiberRecorder) Record(c *fiber.Ctx, action models.AuditAction, entityType string, entityID uuid.UUID, description string, before, after any) {
	u := auth.CurrentUser(c)
	r.svc.Record(c.UserContext(), r.log(c), LogOptions{
		UserID:      u.ID,
		UserName:    u.Name,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
}

type filter struct {
	column string
	value  string
	test   func(l *models.AuditLog) bool
}

func (f filter) Scope(db *gorm.DB) *gorm.DB    { return db.Where(f.column+" = ?", f.value) }
func (f filter) Match(l *models.AuditLog) bool { return f.test(l) }

func newestFirst(logs []models.AuditLog) []models.AuditLog {
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs
}

// GET /audit-logs?entity_type=supplier&entity_id=<uuid>&user_id=<id>
func ListAuditLogsHandler(store repository.Repository[models.AuditLog]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filters []repository.Filter[models.AuditLog]

		if et := strings.TrimSpace(c.Query("entity_type")); et != "" {
			filters = append(filters, filter{"entity_type", et, func(l *models.AuditLog) bool { return l.EntityType == et }})
		}
		if eid := strings.TrimSpace(c.Query("entity_id")); eid != "" {
			id, err := uuid.Parse(eid)
			if err != nil {
				return apperror.Validation("Invalid ID")
			}
			filters = append(filters, filter{"entity_id", id.String(), func(l *models.AuditLog) bool { return l.EntityID == id }})
		}
		if uid := strings.TrimSpace(c.Query("user_id")); uid != "" {
			filters = append(filters, filter{"user_id", uid, func(l *models.AuditLog) bool { return l.UserID == uid }})
		}

		logs, err := store.FindAll(c.UserContext(), filters...)
		if err != nil {
			return apperror.Internal("Erro ao listar o histórico", err)
		}
		return c.JSON(newestFirst(logs))
	}
}
