package apperror

import (
	"errors"

	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const msgStoreFailure = "Erro ao acessar o banco de dados"

// StoreErrors traduz os sentinelas do repositório para um endpoint.
// FailureStatus é o status de falhas inesperadas do store; zero vale 500.
type StoreErrors struct {
	NotFound      string
	Conflict      string
	FailureStatus int
}

// From devolve nil para nil. Erros que já são *Error (vindos de um apply de
// UpdateByID, por exemplo) passam direto.
func (s StoreErrors) From(err error) error {
	var appErr *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repository.ErrNotFound):
		return NotFound(s.NotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return Wrap(KindConflict, fiber.StatusConflict, s.Conflict, err)
	}

	status := s.FailureStatus
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return Wrap(KindInternal, status, msgStoreFailure, err)
}

// FromStore é From com falhas inesperadas em 500.
func FromStore(err error, notFoundMsg, conflictMsg string) error {
	return StoreErrors{NotFound: notFoundMsg, Conflict: conflictMsg}.From(err)
}
