package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"financeiro-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return testNow }

func orderedFixtures(names ...string) []models.FinancialMovement {
	all := fixtureMovements()
	out := make([]models.FinancialMovement, 0, len(names))
	for _, n := range names {
		out = append(out, all[n])
	}
	return out
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, "pdf", f.Extension())
	assert.Equal(t, "application/pdf", f.ContentType())

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", f.ContentType())

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = NewRenderer(Format("XLSX"), fixedNow)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := CSVRenderer{Now: fixedNow}

	err := r.Render(&buf, orderedFixtures("a", "b"), ResolveFields([]string{"tipoDocumento", "sitPagamento"}))
	require.NoError(t, err)

	want := "Conta Origem,Conta Destino,Nome Origem,Nome Destino,Tipo Documento,Situação de Pagamento\n" +
		"001,100,Sindicato,Papelaria,NF,Pago\n" +
		"001,200,Sindicato,Energia,Boleto,Não pago\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVRenderer_QuotesAndMoney(t *testing.T) {
	m := models.FinancialMovement{
		Description: "aluguel, sala 2",
		GrossValue:  decimal.RequireFromString("1200"),
		DueDate:     time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, CSVRenderer{Now: fixedNow}.Render(&buf, []models.FinancialMovement{m},
		[]string{"descricao", "valorBruto", "valorLiquido", "datadeVencimento"}))
	assert.Equal(t, "Descrição,Valor Bruto,Valor Líquido,Data de Vencimento\n\"aluguel, sala 2\",1200.00,,16/12/2024\n", buf.String())
}

func TestRenderers_EdgeCases(t *testing.T) {
	for _, r := range []Renderer{CSVRenderer{Now: fixedNow}, PDFRenderer{Now: fixedNow}} {
		t.Run(fmt.Sprintf("%T", r), func(t *testing.T) {
			var buf bytes.Buffer
			err := r.Render(&buf, nil, MandatoryFields)
			assert.True(t, errors.Is(err, ErrNoRecords))

			buf.Reset()
			require.NoError(t, r.Render(&buf, orderedFixtures("a"), []string{"inexistente", "outro"}))
			assert.Zero(t, buf.Len())
		})
	}
}

func TestPDFRenderer(t *testing.T) {
	records := make([]models.FinancialMovement, 0, 120)
	for i := 0; i < 120; i++ {
		records = append(records, models.FinancialMovement{
			OriginAccount:   fmt.Sprintf("%03d", i),
			DestinationName: "Fornecedor com um nome bem comprido que não cabe na célula da tabela",
			Description:     "Manutenção preventiva",
			GrossValue:      decimal.NewFromInt(int64(i)),
		})
	}

	var buf bytes.Buffer
	err := PDFRenderer{Now: fixedNow}.Render(&buf, records, ResolveFields([]string{"valorBruto", "descricao"}))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}
