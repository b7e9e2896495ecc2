package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"financeiro-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gookit/validate"
)

const dateOnly = "2006-01-02"

var (
	ErrNoEnvelope = errors.New("envelope ausente")
	null          = []byte("null")
)

// Envelope devolve o JSON cru guardado em body[key]. Chave ausente ou null
// resulta em ErrNoEnvelope.
func Envelope(c *fiber.Ctx, key string) (json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, ErrNoEnvelope
	}
	raw, ok := body[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), null) {
		return nil, ErrNoEnvelope
	}
	return raw, nil
}

// EnvelopeOrRoot usa body[key] se existir, senão o corpo inteiro.
func EnvelopeOrRoot(c *fiber.Ctx, key string) json.RawMessage {
	if raw, err := Envelope(c, key); err == nil {
		return raw
	}
	return json.RawMessage(c.Body())
}

// Decode lê o envelope key em dst. Sem envelope: 400 "No data provided".
func Decode(c *fiber.Ctx, key string, dst any) error {
	raw, err := Envelope(c, key)
	if err != nil {
		return apperror.Validation("No data provided")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperror.Validation("Dados inválidos: " + err.Error())
	}
	return nil
}

// ParseID lê o parâmetro :id como uuid.
func ParseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Check roda as regras gookit/validate de v e devolve a primeira falha como 400.
func Check(v any) error {
	vd := validate.Struct(v)
	if vd.Validate() {
		return nil
	}
	return apperror.Validation(vd.Errors.One())
}

// ParseDate aceita "YYYY-MM-DD" (meia-noite UTC) ou RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Date é um time.Time que aceita os formatos de ParseDate no JSON.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Optional distingue campo ausente (Set=false) de null explícito (Null=true)
// num PATCH.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	*o = Optional[T]{Set: true}
	if bytes.Equal(bytes.TrimSpace(b), null) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
