package companydataapp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errs.ErrCode
	}{
		{"unknown tenant", fmt.Errorf("create: %w", companydatabus.ErrUnknownTenant), errs.FailedPrecondition},
		{"nil tenant", validation.NewFieldError("tenantId", companydatabus.ErrUnknownTenant), errs.FailedPrecondition},
		{"unknown related", fmt.Errorf("create: %w", companydatabus.ErrUnknownRelated), errs.InvalidArgument},
		{"unknown related field", validation.NewFieldError("clientId", companydatabus.ErrUnknownRelated), errs.InvalidArgument},
		{"not found", companydatabus.ErrNotFound, errs.NotFound},
		{"field", validation.NewFieldError("name", validation.ErrRequired), errs.InvalidArgument},
		{"other", errors.New("boom"), errs.InternalOnlyLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, toAppError(tt.err).Code)
		})
	}
}

func TestToBusNewAppointment(t *testing.T) {
	companyID := uuid.New()
	clientID := uuid.New()

	na, err := toBusNewAppointment(companyID, NewAppointment{
		ClientID:       clientID.String(),
		ProfessionalID: uuid.NewString(),
		ServiceID:      uuid.NewString(),
		StartsAt:       "2026-03-02T10:00:00Z",
		EndsAt:         "2026-03-02T11:00:00Z",
		Price:          "80",
	})
	require.NoError(t, err)

	assert.Equal(t, companyID, na.TenantID)
	assert.Equal(t, clientID, na.ClientID)
	assert.True(t, na.Price.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 10, na.StartsAt.Hour())
}

func TestToBusNewAppointment_BadFields(t *testing.T) {
	_, err := toBusNewAppointment(uuid.New(), NewAppointment{
		ClientID:       "nope",
		ProfessionalID: uuid.NewString(),
		ServiceID:      uuid.NewString(),
		StartsAt:       "tomorrow",
		EndsAt:         "2026-03-02T11:00:00Z",
	})
	require.Error(t, err)

	appErr := errs.GetError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errs.InvalidArgument, appErr.Code)
	assert.Contains(t, appErr.Message, "clientId")
	assert.Contains(t, appErr.Message, "startsAt")
}

func TestNewServiceValidate(t *testing.T) {
	assert.NoError(t, NewService{Name: "Corte", DurationMinutes: 30, Price: "45.00"}.Validate())
	assert.Error(t, NewService{Name: "Corte", Price: "45.00"}.Validate())
}

func TestListEncode(t *testing.T) {
	l := toList([]companydatabus.Invoice{{ID: uuid.New(), Amount: decimal.NewFromInt(99), Status: companydatabus.InvoicePending}}, toAppInvoice)

	data, contentType, err := l.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(data), `"amount":"99.00"`)
	assert.Contains(t, string(data), `"status":"pending"`)
}
