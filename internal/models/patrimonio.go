package models

import (
	"time"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
)

const (
	MinTagNumber = 0
	MaxTagNumber = 9999
)

// Patrimonio: bem físico do inventário, identificado pelo número de etiqueta
type Patrimonio struct {
	Base
	Name             string          `gorm:"size:200;not null" json:"nome" validate:"required"`
	Description      string          `gorm:"size:1000" json:"descricao"`
	Value            decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"valor"`
	SerialNumber     string          `gorm:"size:100" json:"numerodeSerie"`
	TagNumber        int             `gorm:"not null;index" json:"numerodeEtiqueta" validate:"ValidTag"`
	Location         string          `gorm:"size:200" json:"localizacao"`
	Donation         bool            `gorm:"default:false" json:"doacao"`
	RegistrationDate time.Time       `json:"datadeCadastro"`
}

// PatrimonioLocalizacao: registro de movimentação de um bem entre locais.
// A ligação com Patrimonio é só pelo número de etiqueta, sem chave estrangeira.
type PatrimonioLocalizacao struct {
	Base
	TagNumber int       `gorm:"not null;index" json:"numerodeEtiqueta" validate:"ValidTag"`
	From      string    `gorm:"size:200" json:"de"`
	To        string    `gorm:"size:200" json:"para"`
	MovedAt   time.Time `json:"data"`
}

// Localizacao: local cadastrado onde bens podem ficar
type Localizacao struct {
	Base
	Label string `gorm:"size:200" json:"localizacao"`
}

func validTag(n int) bool { return n >= MinTagNumber && n <= MaxTagNumber }

var tagMessages = validate.MS{
	"required": "{field} é obrigatório",
	"ValidTag": "numerodeEtiqueta deve estar entre 0 e 9999",
}

func (p Patrimonio) Messages() map[string]string { return tagMessages }
func (p Patrimonio) ValidTag(n int) bool         { return validTag(n) }

func (p PatrimonioLocalizacao) Messages() map[string]string { return tagMessages }
func (p PatrimonioLocalizacao) ValidTag(n int) bool         { return validTag(n) }
