package models

import "github.com/google/uuid"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	Base

	// Quem fez? (vem do token)
	UserID   string `gorm:"size:64;index" json:"userId"`
	UserName string `gorm:"size:100" json:"userName"`

	// Qual entidade? (ex: "financial_movement", "bank_account", "supplier")
	EntityType string    `gorm:"size:50;index" json:"entityType"`
	EntityID   uuid.UUID `gorm:"type:uuid;index" json:"entityId"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Estado antes e depois (JSON)
	BeforeData string `gorm:"type:jsonb" json:"beforeData"`
	AfterData  string `gorm:"type:jsonb" json:"afterData"`
}
