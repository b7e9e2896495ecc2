package report

import (
	"time"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"

	"gorm.io/gorm"
)

// Filters é o envelope de filtros do relatório. String vazia é "não informado".
type Filters struct {
	OriginAccount      string `json:"contaOrigem" yaml:"contaOrigem"`
	DestinationAccount string `json:"contaDestino" yaml:"contaDestino"`
	OriginName         string `json:"nomeOrigem" yaml:"nomeOrigem"`
	DestinationName    string `json:"nomeDestino" yaml:"nomeDestino"`
	DocumentType       string `json:"tipoDocumento" yaml:"tipoDocumento"`
	PaymentStatus      string `json:"sitPagamento" yaml:"sitPagamento"`
	StartDate          string `json:"dataInicio" yaml:"dataInicio"`
	EndDate            string `json:"dataFinal" yaml:"dataFinal"`
}

type exact struct {
	column string
	value  string
	get    func(m *models.FinancialMovement) string
}

// Query é o predicado do relatório. Serve tanto como escopo gorm quanto
// como filtro em memória.
type Query struct {
	exact   []exact
	dueFrom *time.Time
	dueTo   *time.Time
	status  string
	now     time.Time
}

// BuildQuery traduz os filtros. now é capturado uma vez e vale para todas as
// comparações com a data de pagamento.
func BuildQuery(f Filters, now time.Time) (Query, error) {
	q := Query{now: now}

	for _, e := range []exact{
		{"origin_name", f.OriginName, func(m *models.FinancialMovement) string { return m.OriginName }},
		{"origin_account", f.OriginAccount, func(m *models.FinancialMovement) string { return m.OriginAccount }},
		{"destination_account", f.DestinationAccount, func(m *models.FinancialMovement) string { return m.DestinationAccount }},
		{"document_type", f.DocumentType, func(m *models.FinancialMovement) string { return m.DocumentType }},
		{"destination_name", f.DestinationName, func(m *models.FinancialMovement) string { return m.DestinationName }},
	} {
		if e.value != "" {
			q.exact = append(q.exact, e)
		}
	}

	var err error
	if q.dueFrom, err = parseBound(f.StartDate, "dataInicio"); err != nil {
		return Query{}, err
	}
	if q.dueTo, err = parseBound(f.EndDate, "dataFinal"); err != nil {
		return Query{}, err
	}

	switch f.PaymentStatus {
	case StatusPaid, StatusUnpaid:
		q.status = f.PaymentStatus
	}
	return q, nil
}

func parseBound(s, name string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := payload.ParseDate(s)
	if err != nil {
		return nil, apperror.Validation("Data inválida em " + name + ": " + s)
	}
	return &t, nil
}

func (q Query) Scope(db *gorm.DB) *gorm.DB {
	for _, e := range q.exact {
		db = db.Where(e.column+" = ?", e.value)
	}

	switch {
	case q.dueFrom != nil && q.dueTo != nil:
		db = db.Where("due_date BETWEEN ? AND ?", *q.dueFrom, *q.dueTo)
	case q.dueFrom != nil:
		db = db.Where("due_date >= ?", *q.dueFrom)
	case q.dueTo != nil:
		db = db.Where("due_date <= ?", *q.dueTo)
	}

	switch q.status {
	case StatusPaid:
		db = db.Where("payment_date IS NOT NULL AND payment_date <= ?", q.now)
	case StatusUnpaid:
		db = db.Where("(payment_date IS NULL OR payment_date > ?)", q.now)
	}
	return db
}

func (q Query) Match(m *models.FinancialMovement) bool {
	for _, e := range q.exact {
		if e.get(m) != e.value {
			return false
		}
	}

	if q.dueFrom != nil && m.DueDate.Before(*q.dueFrom) {
		return false
	}
	if q.dueTo != nil && m.DueDate.After(*q.dueTo) {
		return false
	}

	switch q.status {
	case StatusPaid:
		return PaymentStatus(m.PaymentDate, q.now) == StatusPaid
	case StatusUnpaid:
		return PaymentStatus(m.PaymentDate, q.now) == StatusUnpaid
	}
	return true
}
