package report

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"financeiro-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

type Format string

const (
	FormatPDF Format = "PDF"
	FormatCSV Format = "CSV"
)

var (
	ErrNoRecords         = errors.New("nenhum registro para o relatório")
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatCSV:
		return "csv"
	}
	return ""
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// Renderer escreve os registros em w com uma coluna por campo, na ordem de
// fields. Campos desconhecidos são ignorados; sem nenhum campo conhecido
// nada é escrito.
type Renderer interface {
	Render(w io.Writer, records []models.FinancialMovement, fields []string) error
}

// NewRenderer devolve o renderer do formato. now alimenta a coluna de
// situação de pagamento.
func NewRenderer(f Format, now func() time.Time) (Renderer, error) {
	switch f {
	case FormatCSV:
		return CSVRenderer{Now: now}, nil
	case FormatPDF:
		return PDFRenderer{Now: now}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

type CSVRenderer struct {
	Now func() time.Time
}

func (r CSVRenderer) Render(w io.Writer, records []models.FinancialMovement, fields []string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	cols := knownColumns(fields)
	if len(cols) == 0 {
		return nil
	}
	now := r.Now()

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escrevendo cabeçalho: %w", err)
	}

	row := make([]string, len(cols))
	for i := range records {
		for j, col := range cols {
			row[j] = col.value(&records[i], now)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("escrevendo linha %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

const (
	pdfRowHeight    = 7.0
	pdfHeaderHeight = 8.0
	pdfMargin       = 10.0
	pdfBottom       = 15.0 // reserva para o rodapé
	pdfTitle        = "Relatório Financeiro"
)

type PDFRenderer struct {
	Now func() time.Time
}

func (r PDFRenderer) Render(w io.Writer, records []models.FinancialMovement, fields []string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	cols := knownColumns(fields)
	if len(cols) == 0 {
		return nil
	}
	now := r.Now()

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(len(cols))

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(220, 220, 220)
		for _, col := range cols {
			pdf.CellFormat(colW, pdfHeaderHeight, fit(pdf, tr(col.label), colW), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(pdfTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Gerado em "+now.Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")
	pdf.Ln(2)
	header()

	for i := range records {
		if pdf.GetY()+pdfRowHeight > pageH-pdfBottom {
			pdf.AddPage()
			header()
		}
		for _, col := range cols {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(col.value(&records[i], now)), colW), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("montando pdf: %w", err)
	}
	bw := bufio.NewWriter(w)
	if err := pdf.Output(bw); err != nil {
		return fmt.Errorf("gerando pdf: %w", err)
	}
	return bw.Flush()
}

// fit corta s até caber na largura da célula. s já está em cp1252 (um byte
// por caractere), então o corte é por byte.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const pad = 2.0
	if pdf.GetStringWidth(s) <= width-pad {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width-pad {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
