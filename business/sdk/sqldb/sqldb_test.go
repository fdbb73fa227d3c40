package sqldb

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "unique",
			in:   &pgconn.PgError{Code: uniqueViolation, ConstraintName: "uq_users_email"},
			want: ErrDBDuplicatedEntry{Column: "uq_users_email"},
		},
		{
			name: "foreign key",
			in:   &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "fk_users_company"},
			want: ErrDBForeignKey{Constraint: "fk_users_company"},
		},
		{
			name: "undefined table",
			in:   &pgconn.PgError{Code: undefinedTable},
			want: ErrUndefinedTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapError(tt.in))
		})
	}
}

func TestMapError_PassesThroughUnknown(t *testing.T) {
	err := errors.New("connection reset")
	assert.Same(t, err, mapError(err))
}

func TestQueryString(t *testing.T) {
	data := struct {
		Name string `db:"name"`
		Hash []byte `db:"password_hash"`
		Days int    `db:"overdue_days"`
	}{
		Name: "Barber Shop",
		Hash: []byte("secret-hash"),
		Days: 3,
	}

	const q = `
	UPDATE companies
	SET name = :name, password_hash = :password_hash, overdue_days = :overdue_days`

	got := queryString(q, data)

	assert.Equal(t, "UPDATE companies SET name = 'Barber Shop', password_hash = '<11 bytes>', overdue_days = 3", got)
}
