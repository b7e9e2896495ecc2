package routes

import (
	"financeiro-backend/internal/finance"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/patrimonio"
	"financeiro-backend/internal/repository"
	"financeiro-backend/internal/supplier"

	"gorm.io/gorm"
)

// Stores reúne um repositório por entidade.
type Stores struct {
	BankAccounts finance.BankAccountStore
	Movements    finance.MovementStore
	Patrimonios  patrimonio.Store
	Locations    patrimonio.LocalizacaoStore
	LocationLogs patrimonio.MovementStore
	Suppliers    supplier.Store
	AuditLogs    repository.Repository[models.AuditLog]
}

func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		BankAccounts: repository.NewGormStore[models.BankAccount](db),
		Movements:    repository.NewGormStore[models.FinancialMovement](db),
		Patrimonios:  repository.NewGormStore[models.Patrimonio](db),
		Locations:    repository.NewGormStore[models.Localizacao](db),
		LocationLogs: repository.NewGormStore[models.PatrimonioLocalizacao](db),
		Suppliers:    repository.NewGormStore[models.Supplier](db),
		AuditLogs:    repository.NewGormStore[models.AuditLog](db),
	}
}

// NewMemoryStores monta stores em processo com as mesmas chaves únicas do
// schema do banco.
func NewMemoryStores() Stores {
	return Stores{
		BankAccounts: repository.NewMemory[models.BankAccount](func(a *models.BankAccount) string { return a.Name }),
		Movements:    repository.NewMemory[models.FinancialMovement](),
		Patrimonios:  repository.NewMemory[models.Patrimonio](),
		Locations:    repository.NewMemory[models.Localizacao](),
		LocationLogs: repository.NewMemory[models.PatrimonioLocalizacao](),
		Suppliers:    repository.NewMemory[models.Supplier](supplier.UniqueKeys...),
		AuditLogs:    repository.NewMemory[models.AuditLog](),
	}
}
