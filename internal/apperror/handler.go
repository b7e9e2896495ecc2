package apperror

import (
	"errors"

	"financeiro-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// FiberErrorHandler converte erros dos handlers em {"error": "..."}.
// Erros sem tipo conhecido viram 500 com mensagem genérica. Falhas internas
// são logadas mesmo quando o endpoint as responde com 4xx.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Status >= fiber.StatusInternalServerError || appErr.Kind == KindInternal {
			logger.FromCtx(c).WithError(err).Error("falha no processamento da requisição")
		}
		return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	logger.FromCtx(c).WithError(err).Error("erro inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Erro interno do servidor",
	})
}
