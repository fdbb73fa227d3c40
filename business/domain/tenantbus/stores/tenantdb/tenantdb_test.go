package tenantdb_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "name", "email", "phone", "address", "plan", "status", "employee_count", "monthly_revenue",
	"trial_ends_at", "custom_url", "logo", "whatsapp", "next_payment_at", "overdue_days",
	"created_at", "updated_at",
}

func newStore(t *testing.T) (*tenantdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return tenantdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func TestCreate_DuplicateCustomURL(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec("INSERT INTO companies").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_companies_custom_url"})

	err := store.Create(context.Background(), tenantbus.Tenant{
		ID:        uuid.New(),
		Name:      name.MustParse("Salao da Ana"),
		Status:    status.Trial,
		CustomURL: slug.MustParseNull("salao-da-ana"),
	})

	assert.ErrorIs(t, err, tenantbus.ErrUniqueCustomURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec("INSERT INTO companies").WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), tenantbus.Tenant{
		ID:     uuid.New(),
		Name:   name.MustParse("Studio Zen"),
		Plan:   "basic",
		Status: status.Trial,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID(t *testing.T) {
	store, mock := newStore(t)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	rows := sqlmock.NewRows(columns).AddRow(
		id.String(), "Studio Zen", "contato@zen.com", "+5511987654321", nil, "premium", "active", 4, "150.50",
		nil, "studio-zen", nil, nil, now, 2,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM companies").WillReturnRows(rows)

	got, err := store.QueryByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Studio Zen", got.Name.String())
	require.NotNil(t, got.Email)
	assert.Equal(t, "contato@zen.com", got.Email.Address)
	assert.Equal(t, "premium", got.Plan)
	assert.Equal(t, status.Active, got.Status)
	assert.Equal(t, 4, got.EmployeeCount)
	assert.Equal(t, "150.5", got.MonthlyRevenue.String())
	assert.Nil(t, got.TrialEndsAt)
	require.NotNil(t, got.NextPaymentAt)
	assert.True(t, got.NextPaymentAt.Equal(now))
	assert.Equal(t, "studio-zen", got.CustomURL.String())
	assert.False(t, got.WhatsApp.Valid())
	assert.Equal(t, 2, got.OverdueDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID_NotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("SELECT (.+) FROM companies").WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT\s+count\(1\)\s+FROM\s+companies WHERE status = \$1`).
		WithArgs("trial").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	trial := status.Trial
	n, err := store.Count(context.Background(), tenantbus.QueryFilter{Status: &trial})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
