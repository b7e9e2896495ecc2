package database

import (
	"fmt"
	"time"

	"financeiro-backend/internal/config"
	"financeiro-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models é a lista migrada no boot.
var Models = []any{
	&models.FinancialMovement{},
	&models.BankAccount{},
	&models.Patrimonio{},
	&models.PatrimonioLocalizacao{},
	&models.Localizacao{},
	&models.Supplier{},
	&models.AuditLog{},
}

func Open(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("conexão com o banco falhou: %w", err)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("AutoMigrate falhou: %w", err)
	}

	log.Info("Conexão com o banco estabelecida. Migração concluída.")
	return db, nil
}

func newGormLogger(log *logrus.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
