package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/models"
	"financeiro-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindByID(ctx context.Context, id uuid.UUID) (*models.AuditLog, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func (m *mockStore) FindAll(ctx context.Context, filters ...repository.Filter[models.AuditLog]) ([]models.AuditLog, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *mockStore) FindOne(ctx context.Context, f repository.Filter[models.AuditLog]) (*models.AuditLog, error) {
	args := m.Called(ctx, f)
	return nil, args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, rec *models.AuditLog) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) UpdateByID(ctx context.Context, id uuid.UUID, apply func(*models.AuditLog) error) (*models.AuditLog, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func (m *mockStore) DeleteByID(ctx context.Context, id uuid.UUID) (*models.AuditLog, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func TestService_RecordSnapshots(t *testing.T) {
	store := repository.NewMemory[models.AuditLog]()
	svc := NewService(store)
	id := uuid.New()

	svc.Record(context.Background(), logrus.NewEntry(logrus.New()), LogOptions{
		UserID:     "u-1",
		UserName:   "Maria",
		EntityType: EntityBankAccount,
		EntityID:   id,
		Action:     models.AuditActionCreate,
		After:      map[string]string{"name": "Itaú"},
	})

	logs, err := store.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "null", logs[0].BeforeData)
	assert.JSONEq(t, `{"name":"Itaú"}`, logs[0].AfterData)
	assert.Equal(t, id, logs[0].EntityID)
	assert.Equal(t, "Maria", logs[0].UserName)
}

func TestService_RecordFailureIsOnlyLogged(t *testing.T) {
	store := new(mockStore)
	store.On("Insert", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(errors.New("banco fora"))

	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)

	NewService(store).Record(context.Background(), logrus.NewEntry(l), LogOptions{
		EntityType: EntitySupplier,
		EntityID:   uuid.New(),
		Action:     models.AuditActionDelete,
	})

	store.AssertExpectations(t)
	assert.Contains(t, buf.String(), "falha ao gravar log de auditoria")
}

func TestListAuditLogsHandler(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := start
	store := repository.NewMemory[models.AuditLog]().WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	})

	target := uuid.New()
	for _, l := range []models.AuditLog{
		{EntityType: EntitySupplier, EntityID: target, UserID: "u-1", Action: models.AuditActionCreate},
		{EntityType: EntityBankAccount, EntityID: uuid.New(), UserID: "u-2", Action: models.AuditActionCreate},
		{EntityType: EntitySupplier, EntityID: target, UserID: "u-2", Action: models.AuditActionUpdate},
	} {
		l := l
		require.NoError(t, store.Insert(ctx, &l))
	}

	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler})
	app.Get("/audit-logs", ListAuditLogsHandler(store))

	list := func(query string) (int, []models.AuditLog) {
		resp, err := app.Test(httptest.NewRequest("GET", "/audit-logs"+query, nil), -1)
		require.NoError(t, err)
		var out []models.AuditLog
		if resp.StatusCode == fiber.StatusOK {
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		}
		return resp.StatusCode, out
	}

	status, all := list("")
	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, all, 3)
	assert.Equal(t, models.AuditActionUpdate, all[0].Action)

	_, bySupplier := list("?entity_type=supplier&entity_id=" + target.String())
	assert.Len(t, bySupplier, 2)

	_, byUser := list("?user_id=u-2")
	assert.Len(t, byUser, 2)

	status, _ = list("?entity_id=nao-e-uuid")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
