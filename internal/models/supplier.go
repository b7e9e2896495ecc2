package models

type PersonType string

const (
	PersonTypeCompany    PersonType = "Jurídica"
	PersonTypeIndividual PersonType = "Física"
)

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "Ativo"
	SupplierStatusInactive SupplierStatus = "Inativo"
)

type TransactionNature string

const (
	TransactionNatureRevenue TransactionNature = "Receita"
	TransactionNatureExpense TransactionNature = "Despesa"
)

// Supplier: fornecedor. Campos únicos opcionais são ponteiros para que
// ausência vire NULL no banco e não colida no índice único.
type Supplier struct {
	Base
	Name              string            `gorm:"size:200;not null;uniqueIndex" json:"nome"`
	PersonType        PersonType        `gorm:"size:20" json:"tipoPessoa,omitempty"`
	TaxID             *string           `gorm:"size:20;uniqueIndex" json:"cpfCnpj,omitempty"` // imutável
	Status            SupplierStatus    `gorm:"size:20" json:"statusFornecedor,omitempty"`
	TransactionNature TransactionNature `gorm:"size:20" json:"naturezaTransacao,omitempty"`
	Email             *string           `gorm:"size:150;uniqueIndex" json:"email,omitempty"`
	ContactName       string            `gorm:"size:200" json:"nomeContato,omitempty"`
	MobilePhone       *string           `gorm:"size:20;uniqueIndex" json:"celular,omitempty"`
	Phone             *string           `gorm:"size:20;uniqueIndex" json:"telefone,omitempty"`
	PostalCode        string            `gorm:"size:9" json:"cep,omitempty"`
	City              string            `gorm:"size:100" json:"cidade,omitempty"`
	State             string            `gorm:"size:2" json:"uf_endereco,omitempty"`
	Street            string            `gorm:"size:100" json:"logradouro,omitempty"`
	Complement        string            `gorm:"size:100" json:"complemento,omitempty"`
	BankName          string            `gorm:"size:100" json:"nomeBanco,omitempty"`
	Agency            string            `gorm:"size:10" json:"agencia,omitempty"`
	BankNumber        string            `gorm:"size:10" json:"numeroBanco,omitempty"`
	CheckDigit        string            `gorm:"size:2" json:"dv,omitempty"`
	PixKey            *string           `gorm:"size:150;uniqueIndex" json:"chavePix,omitempty"`
}

// BrazilianStates lista as UFs aceitas em uf_endereco.
var BrazilianStates = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}
