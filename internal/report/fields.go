package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"financeiro-backend/internal/models"
	"financeiro-backend/internal/payload"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/shopspring/decimal"
)

const (
	StatusPaid   = "Pago"
	StatusUnpaid = "Não pago"
)

// MandatoryFields abrem todo relatório, nesta ordem.
var MandatoryFields = []string{"contaOrigem", "contaDestino", "nomeOrigem", "nomeDestino"}

type column struct {
	label string
	value func(m *models.FinancialMovement, now time.Time) string
}

var columns = map[string]column{
	"contaOrigem":      {"Conta Origem", func(m *models.FinancialMovement, _ time.Time) string { return m.OriginAccount }},
	"contaDestino":     {"Conta Destino", func(m *models.FinancialMovement, _ time.Time) string { return m.DestinationAccount }},
	"nomeOrigem":       {"Nome Origem", func(m *models.FinancialMovement, _ time.Time) string { return m.OriginName }},
	"nomeDestino":      {"Nome Destino", func(m *models.FinancialMovement, _ time.Time) string { return m.DestinationName }},
	"tipoDocumento":    {"Tipo Documento", func(m *models.FinancialMovement, _ time.Time) string { return m.DocumentType }},
	"cpFCnpj":          {"CPF/CNPJ", func(m *models.FinancialMovement, _ time.Time) string { return m.TaxID }},
	"valorBruto":       {"Valor Bruto", func(m *models.FinancialMovement, _ time.Time) string { return m.GrossValue.StringFixed(2) }},
	"valorLiquido":     {"Valor Líquido", func(m *models.FinancialMovement, _ time.Time) string { return money(m.NetValue) }},
	"acrescimo":        {"Acréscimo", func(m *models.FinancialMovement, _ time.Time) string { return money(m.Surcharge) }},
	"desconto":         {"Desconto", func(m *models.FinancialMovement, _ time.Time) string { return money(m.Discount) }},
	"formadePagamento": {"Forma de Pagamento", func(m *models.FinancialMovement, _ time.Time) string { return string(m.PaymentMethod) }},
	"datadeVencimento": {"Data de Vencimento", func(m *models.FinancialMovement, _ time.Time) string { return FormatNumericDate(m.DueDate) }},
	"datadePagamento":  {"Data de Pagamento", func(m *models.FinancialMovement, _ time.Time) string { return FormatNumericDate(m.PaymentDate) }},
	"sitPagamento":     {"Situação de Pagamento", func(m *models.FinancialMovement, now time.Time) string { return PaymentStatus(m.PaymentDate, now) }},
	"descricao":        {"Descrição", func(m *models.FinancialMovement, _ time.Time) string { return m.Description }},
	"gastoFixo":        {"Gasto Fixo", func(m *models.FinancialMovement, _ time.Time) string { return yesNo(m.FixedExpense) }},
}

// aliases de nomes de campo aceitos em includeFields
var aliases = map[string]string{
	"baixada": "sitPagamento",
}

func canonical(field string) string {
	if c, ok := aliases[field]; ok {
		return c
	}
	return field
}

// knownColumns filtra fields para as colunas que existem, mantendo a ordem.
func knownColumns(fields []string) []column {
	out := make([]column, 0, len(fields))
	for _, f := range fields {
		if col, ok := columns[canonical(f)]; ok {
			out = append(out, col)
		}
	}
	return out
}

// ResolveFields põe os campos obrigatórios na frente da seleção do cliente,
// sem repetir nenhum. Campos desconhecidos passam e são descartados no render.
func ResolveFields(include []string) []string {
	set := linkedhashset.New()
	for _, f := range MandatoryFields {
		set.Add(f)
	}
	for _, f := range include {
		set.Add(canonical(strings.TrimSpace(f)))
	}

	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}

// IncludeFields é a seleção de colunas do cliente. Aceita a forma
// {"campo": true, ...} (ordem das chaves preservada, só valores true) ou
// uma lista de nomes.
type IncludeFields []string

func (f *IncludeFields) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = nil
		return nil
	case b[0] == '[':
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*f = list
		return nil
	case b[0] != '{':
		return fmt.Errorf("includeFields deve ser objeto ou lista")
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return err
	}
	var out []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if on, ok := v.(bool); ok && on {
			out = append(out, key)
		}
	}
	*f = out
	return nil
}

// FormatNumericDate formata como DD/MM/AAAA em UTC. Aceita time.Time,
// *time.Time ou string de data; ausente ou inválido vira "".
func FormatNumericDate(v any) string {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return ""
		}
		t = *x
	case string:
		parsed, err := payload.ParseDate(x)
		if err != nil {
			return ""
		}
		t = parsed
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02/01/2006")
}

// PaymentStatus deriva a situação da data de pagamento: pago se existe e
// não está no futuro.
func PaymentStatus(paidAt *time.Time, now time.Time) string {
	if paidAt != nil && !paidAt.IsZero() && !paidAt.After(now) {
		return StatusPaid
	}
	return StatusUnpaid
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
