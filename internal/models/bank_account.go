package models

// BankAccount: conta bancária da organização
type BankAccount struct {
	Base
	Name          string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Bank          string `gorm:"size:100" json:"bank"`
	AccountNumber string `gorm:"size:50" json:"accountNumber"`
	Status        string `gorm:"size:20" json:"status"`
	AccountType   string `gorm:"size:50" json:"accountType"`
}
