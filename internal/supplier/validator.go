package supplier

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/models"
)

var (
	cpfPattern     = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern    = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern  = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	phonePattern   = regexp.MustCompile(`^\(\d{2}\) \d{4}-\d{4}$`)
	cepPattern     = regexp.MustCompile(`^\d{5}-\d{3}$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
	checkDigitExpr = regexp.MustCompile(`^\d{1,2}$`)
)

// Fields é o formulário de fornecedor como chegou no JSON, antes de qualquer
// conversão: os tipos dos valores também são validados.
type Fields map[string]any

func (f Fields) has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

func (f Fields) str(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// Validate devolve a primeira regra violada, na ordem dos campos do
// formulário. Em update (creating=false) só os campos presentes são checados
// e cpfCnpj é ignorado, já que não pode mudar.
func Validate(f Fields, creating bool) error {
	if creating || f.has("nome") {
		if s, ok := f.str("nome"); !ok || strings.TrimSpace(s) == "" {
			return apperror.Validation("Nome ou Razão social inválidos")
		}
	}

	personType, _ := f.str("tipoPessoa")
	if f.has("tipoPessoa") && !oneOf(f["tipoPessoa"], string(models.PersonTypeCompany), string(models.PersonTypeIndividual)) {
		return apperror.Validation("Tipo de pessoa inválida")
	}

	if creating && f.has("cpfCnpj") {
		s, ok := f.str("cpfCnpj")
		if !ok || !validTaxID(s, models.PersonType(personType)) {
			return apperror.Validation("CPF ou CNPJ inválido")
		}
	}

	if f.has("statusFornecedor") && !oneOf(f["statusFornecedor"], string(models.SupplierStatusActive), string(models.SupplierStatusInactive)) {
		return apperror.Validation("Status de fornecedor inválido")
	}
	if f.has("naturezaTransacao") && !oneOf(f["naturezaTransacao"], string(models.TransactionNatureRevenue), string(models.TransactionNatureExpense)) {
		return apperror.Validation("Tipo de transação inválida")
	}

	checks := []struct {
		key string
		ok  func(v any) bool
		msg string
	}{
		{"email", matches(emailPattern), "E-mail inválido"},
		{"nomeContato", isString, "Nome de contato inválido"},
		{"celular", matches(mobilePattern), "Número de celular inválido"},
		{"telefone", matches(phonePattern), "Número de telefone inválido"},
		{"cep", matches(cepPattern), "Cep inválido"},
		{"cidade", isString, "Cidade inválida"},
		{"uf_endereco", func(v any) bool { return oneOf(v, models.BrazilianStates...) }, "UF inválida"},
		{"logradouro", lengthBetween(5, 100), "Logradouro inválido. Deve conter entre 5 e 100 caracteres."},
		{"complemento", isString, "Complemento inválido"},
		{"nomeBanco", isString, "Nome do banco inválido"},
		{"agencia", matches(digitsPattern), "Agência inválida"},
		{"numeroBanco", digitsOrInteger(digitsPattern), "Número inválido"},
		{"dv", digitsOrInteger(checkDigitExpr), "DV inválido"},
		{"chavePix", nonEmptyString, "Chave Pix inválida"},
	}
	for _, c := range checks {
		if f.has(c.key) && !c.ok(f[c.key]) {
			return apperror.Validation(c.msg)
		}
	}
	return nil
}

// validTaxID exige CPF para pessoa física e CNPJ para jurídica; sem tipo
// qualquer um dos dois formatos serve.
func validTaxID(s string, pt models.PersonType) bool {
	switch pt {
	case models.PersonTypeIndividual:
		return cpfPattern.MatchString(s)
	case models.PersonTypeCompany:
		return cnpjPattern.MatchString(s)
	default:
		return cpfPattern.MatchString(s) || cnpjPattern.MatchString(s)
	}
}

func oneOf(v any, allowed ...string) bool {
	s, ok := v.(string)
	return ok && slices.Contains(allowed, s)
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

func matches(re *regexp.Regexp) func(v any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}
}

func lengthBetween(lo, hi int) func(v any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		n := utf8.RuneCountInString(s)
		return ok && n >= lo && n <= hi
	}
}

// digitsOrInteger aceita string numérica ou número inteiro não negativo.
func digitsOrInteger(re *regexp.Regexp) func(v any) bool {
	return func(v any) bool {
		switch x := v.(type) {
		case string:
			return re.MatchString(x)
		case float64:
			return x >= 0 && x == float64(int64(x)) && re.MatchString(formatNumber(x))
		}
		return false
	}
}
