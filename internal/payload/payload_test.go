package payload

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"financeiro-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-12-16", time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), false},
		{"2024-12-16T10:30:00Z", time.Date(2024, 12, 16, 10, 30, 0, 0, time.UTC), false},
		{"2024-12-16T10:30:00-03:00", time.Date(2024, 12, 16, 13, 30, 0, 0, time.UTC), false},
		{"16/12/2024", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

type patch struct {
	Paid    Optional[bool]   `json:"baixada"`
	PayDate Optional[Date]   `json:"datadePagamento"`
	Note    Optional[string] `json:"descricao"`
}

func TestOptional(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"baixada": true, "datadePagamento": null}`), &p))

	assert.True(t, p.Paid.Set)
	assert.True(t, p.Paid.Value)
	assert.True(t, p.PayDate.Set)
	assert.True(t, p.PayDate.Null)
	assert.False(t, p.Note.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"datadePagamento": "2024-01-31"}`), &p))
	assert.False(t, p.PayDate.Null)
	assert.Equal(t, 31, p.PayDate.Value.Day())
}

func TestOptional_DecodeResetsPreviousState(t *testing.T) {
	var o Optional[string]
	require.NoError(t, json.Unmarshal([]byte(`null`), &o))
	assert.True(t, o.Null)

	require.NoError(t, json.Unmarshal([]byte(`"pago"`), &o))
	assert.True(t, o.Set)
	assert.False(t, o.Null)
	assert.Equal(t, "pago", o.Value)

	require.NoError(t, json.Unmarshal([]byte(`null`), &o))
	assert.True(t, o.Null)
	assert.Empty(t, o.Value)
}

func TestDecode(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler})
	app.Post("/", func(c *fiber.Ctx) error {
		var dst struct {
			Name string `json:"name"`
		}
		if err := Decode(c, "formData", &dst); err != nil {
			return err
		}
		return c.SendString(dst.Name)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"com envelope", `{"formData": {"name": "Itaú"}}`, 200},
		{"sem envelope", `{"name": "Itaú"}`, 400},
		{"envelope null", `{"formData": null}`, 400},
		{"corpo vazio", ``, 400},
		{"tipo errado", `{"formData": {"name": 10}}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

type rules struct {
	Name string `json:"name" validate:"required"`
	Note string `json:"note" validate:"maxLen:5"`
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(&rules{Name: "ok", Note: "curta"}))

	err := Check(&rules{Name: "ok", Note: "longa demais"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Error(t, Check(&rules{}))
}
