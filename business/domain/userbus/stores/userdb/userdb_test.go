package userdb_test

import (
	"context"
	"io"
	"net/mail"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "name", "email", "role", "password_hash", "avatar", "must_change_password",
	"company_id", "enabled", "created_at", "updated_at",
}

func newStore(t *testing.T) (*userdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return userdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func testUser() userbus.User {
	companyID := uuid.New()
	now := time.Now()

	return userbus.User{
		ID:           uuid.New(),
		Name:         name.MustParse("Ana Souza"),
		Email:        mail.Address{Address: "ana@example.com"},
		Role:         role.CompanyAdmin,
		PasswordHash: []byte("$2a$10$hash"),
		CompanyID:    &companyID,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreate_ConstraintErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate email", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}, userbus.ErrUniqueEmail},
		{"unknown company", &pgconn.PgError{Code: "23503", ConstraintName: "fk_users_company"}, userbus.ErrUnknownCompany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			mock.ExpectExec("INSERT INTO users").WillReturnError(tt.err)

			err := store.Create(context.Background(), testUser())
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdate(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectExec("UPDATE\\s+users").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Update(context.Background(), testUser()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByEmail(t *testing.T) {
	store, mock := newStore(t)

	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(columns).AddRow(
		id.String(), "Super Admin", "root@example.com", "super_admin", []byte("$2a$10$hash"), nil, true,
		nil, true, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("root@example.com").
		WillReturnRows(rows)

	usr, err := store.QueryByEmail(context.Background(), mail.Address{Address: "root@example.com"})
	require.NoError(t, err)

	assert.Equal(t, id, usr.ID)
	assert.Equal(t, role.SuperAdmin, usr.Role)
	assert.Nil(t, usr.CompanyID)
	assert.True(t, usr.MustChangePassword)
	assert.Equal(t, "", usr.Avatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByID_NotFound(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, userbus.ErrNotFound)
}
