package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/logger"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	filePrefix       = "financial_report_"
	msgBadFormat     = "Formato de arquivo inválido."
	msgNoRecords     = "Nenhuma movimentação financeira encontrada."
	msgRenderFailed  = "Erro ao gerar o relatório financeiro."
	msgDeliverFailed = "Erro ao enviar o arquivo."
)

type MovementStore = repository.Repository[models.FinancialMovement]

type Request struct {
	Filters
	Format        string        `json:"formArquivo"`
	IncludeFields IncludeFields `json:"includeFields"`
}

type Options struct {
	Dir         string           // arquivos vão para Dir/PDF e Dir/CSV
	Now         func() time.Time // nil = time.Now
	NewRenderer RendererFactory  // nil = NewRenderer
}

type RendererFactory func(f Format, now func() time.Time) (Renderer, error)

// POST /financialMovements/report
func ReportHandler(store MovementStore, opts Options) fiber.Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newRenderer := opts.NewRenderer
	if newRenderer == nil {
		newRenderer = NewRenderer
	}

	return func(c *fiber.Ctx) error {
		log := logger.FromCtx(c)

		var req Request
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return apperror.Validation("Dados inválidos: " + err.Error())
		}

		format, err := ParseFormat(req.Format)
		if err != nil {
			return apperror.UnsupportedFormat(msgBadFormat)
		}

		query, err := BuildQuery(req.Filters, now())
		if err != nil {
			return err
		}

		records, err := store.FindAll(c.UserContext(), query)
		if err != nil {
			return apperror.Render(msgRenderFailed, err)
		}
		log.WithField("records", len(records)).Debug("movimentações encontradas para o relatório")
		if len(records) == 0 {
			return apperror.NotFound(msgNoRecords)
		}

		renderer, err := newRenderer(format, now)
		if err != nil {
			return apperror.Render(msgRenderFailed, err)
		}

		path, err := writeReport(opts.Dir, format, renderer, records, ResolveFields(req.IncludeFields))
		if path != "" {
			defer removeFile(log, path)
		}
		if err != nil {
			return apperror.Render(msgRenderFailed, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return apperror.Delivery(msgDeliverFailed, err)
		}

		c.Set(fiber.HeaderContentType, format.ContentType())
		c.Set(fiber.HeaderContentDisposition, "attachment; filename=financial_report."+format.Extension())
		if err := c.Send(data); err != nil {
			return apperror.Delivery(msgDeliverFailed, err)
		}
		return nil
	}
}

// writeReport renderiza num arquivo com nome único por requisição. Devolve o
// caminho sempre que o arquivo chegou a ser criado, mesmo com erro, para que
// o chamador o remova.
func writeReport(root string, format Format, r Renderer, records []models.FinancialMovement, fields []string) (string, error) {
	dir := filepath.Join(root, string(format))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("criando diretório %s: %w", dir, err)
	}

	path := filepath.Join(dir, filePrefix+uuid.NewString()+"."+format.Extension())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("criando %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	renderErr := r.Render(bw, records, fields)
	if renderErr == nil {
		renderErr = bw.Flush()
	}
	closeErr := f.Close()
	return path, errors.Join(renderErr, closeErr)
}

func removeFile(log *logrus.Entry, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).WithField("path", path).Warn("não foi possível remover o arquivo do relatório")
	}
}
