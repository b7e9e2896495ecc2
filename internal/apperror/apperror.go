package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindRender            Kind = "render"
	KindDelivery          Kind = "delivery"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindInternal          Kind = "internal"
)

// Error é o erro devolvido pelos handlers. Status é decidido por cada
// endpoint: a mesma falha de validação pode ser 400 num recurso e 500 em outro.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Message: msg}
}

func Wrap(kind Kind, status int, msg string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: msg, Err: err}
}

func Validation(msg string) *Error {
	return New(KindValidation, fiber.StatusBadRequest, msg)
}

// ServerValidation é a variante usada pelos endpoints que sinalizam entrada
// inválida como 500 (contas bancárias).
func ServerValidation(msg string) *Error {
	return New(KindValidation, fiber.StatusInternalServerError, msg)
}

func Conflict(msg string) *Error {
	return New(KindConflict, fiber.StatusConflict, msg)
}

func NotFound(msg string) *Error {
	return New(KindNotFound, fiber.StatusNotFound, msg)
}

func UnsupportedFormat(msg string) *Error {
	return New(KindUnsupportedFormat, fiber.StatusBadRequest, msg)
}

func Render(msg string, err error) *Error {
	return Wrap(KindRender, fiber.StatusInternalServerError, msg, err)
}

func Delivery(msg string, err error) *Error {
	return Wrap(KindDelivery, fiber.StatusInternalServerError, msg, err)
}

func Internal(msg string, err error) *Error {
	return Wrap(KindInternal, fiber.StatusInternalServerError, msg, err)
}

// KindOf devolve o Kind de um erro da cadeia, ou "" se não houver *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
