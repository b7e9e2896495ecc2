package models

import (
	"time"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCredit   PaymentMethod = "Crédito"
	PaymentMethodDebit    PaymentMethod = "Débito"
	PaymentMethodPIX      PaymentMethod = "PIX"
	PaymentMethodCash     PaymentMethod = "Dinheiro"
	PaymentMethodBoleto   PaymentMethod = "Boleto"
	PaymentMethodCheque   PaymentMethod = "Cheque"
	PaymentMethodDeposit  PaymentMethod = "Depósito"
	PaymentMethodNotGiven PaymentMethod = ""
)

var paymentMethods = []PaymentMethod{
	PaymentMethodCredit, PaymentMethodDebit, PaymentMethodPIX, PaymentMethodCash,
	PaymentMethodBoleto, PaymentMethodCheque, PaymentMethodDeposit, PaymentMethodNotGiven,
}

const MaxDescriptionLength = 130

// FinancialMovement: movimentação financeira entre duas contas
type FinancialMovement struct {
	Base
	OriginAccount      string              `gorm:"size:100;not null;index" json:"contaOrigem" validate:"required"`
	DestinationAccount string              `gorm:"size:100;not null;index" json:"contaDestino" validate:"required"`
	OriginName         string              `gorm:"size:200;not null;index" json:"nomeOrigem" validate:"required"`
	DestinationName    string              `gorm:"size:200;not null;index" json:"nomeDestino" validate:"required"`
	DocumentType       string              `gorm:"size:100;not null;default:' '" json:"tipoDocumento"`
	TaxID              string              `gorm:"size:20" json:"cpFCnpj,omitempty"` // imutável depois de criado
	GrossValue         decimal.Decimal     `gorm:"type:numeric(15,2);not null" json:"valorBruto"`
	NetValue           decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"valorLiquido"`
	Surcharge          decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"acrescimo" validate:"NonNegative"`
	Discount           decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"desconto" validate:"NonNegative"`
	PaymentMethod      PaymentMethod       `gorm:"size:20" json:"formadePagamento" validate:"KnownPaymentMethod"`
	DueDate            time.Time           `gorm:"not null;index" json:"datadeVencimento"`
	PaymentDate        *time.Time          `gorm:"index" json:"datadePagamento"` // nil = ainda não pago
	Paid               bool                `json:"baixada"`
	Description        string              `gorm:"size:130" json:"descricao" validate:"maxLen:130"`
	FixedExpense       bool                `gorm:"default:false" json:"gastoFixo"`
}

func (m FinancialMovement) Messages() map[string]string {
	return validate.MS{
		"required":           "{field} é obrigatório",
		"maxLen":             "descricao deve ter no máximo 130 caracteres",
		"NonNegative":        "{field} não pode ser negativo",
		"KnownPaymentMethod": "formadePagamento inválida",
	}
}

func (m FinancialMovement) NonNegative(v decimal.NullDecimal) bool {
	return !v.Valid || !v.Decimal.IsNegative()
}

func (m FinancialMovement) KnownPaymentMethod(v PaymentMethod) bool {
	for _, p := range paymentMethods {
		if p == v {
			return true
		}
	}
	return false
}
