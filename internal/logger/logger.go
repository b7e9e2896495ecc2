package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const ctxEntryKey = "logger_entry"

// New monta o logger da aplicação: JSON em stdout, nível vindo de LOG_LEVEL.
func New(level string) *logrus.Logger {
	return newWithOutput(level, os.Stdout)
}

func newWithOutput(level string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
		l.WithField("configured_level", level).Warn("LOG_LEVEL inválido, usando info")
	}
	l.SetLevel(lvl)
	return l
}

// Middleware anexa uma entry com request_id ao contexto do fiber e registra
// o resultado de cada requisição. Erros da cadeia são entregues ao
// ErrorHandler do app aqui mesmo, para que o status logado seja o enviado.
// Deve rodar depois do requestid.
func Middleware(base *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry := base.WithFields(logrus.Fields{
			"request_id": requestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
		})
		c.Locals(ctxEntryKey, entry)

		start := time.Now()
		if err := c.Next(); err != nil {
			// a resposta de erro precisa existir antes de o status ser lido
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		entry.WithFields(logrus.Fields{
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request")
		return nil
	}
}

// FromCtx devolve a entry da requisição ou, fora de uma requisição
// instrumentada, uma entry do logger padrão do logrus.
func FromCtx(c *fiber.Ctx) *logrus.Entry {
	if entry, ok := c.Locals(ctxEntryKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
