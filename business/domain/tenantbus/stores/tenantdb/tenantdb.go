// Package tenantdb contains tenant related CRUD functionality.
package tenantdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const uniqueCustomURL = "uq_companies_custom_url"

const selectColumns = `
	SELECT
		id, name, email, phone, address, plan, status, employee_count, monthly_revenue,
		trial_ends_at, custom_url, logo, whatsapp, next_payment_at, overdue_days,
		created_at, updated_at
	FROM
		companies`

// Store manages the set of APIs for tenant database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db sqlx.ExtContext) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new tenant into the database.
func (s *Store) Create(ctx context.Context, t tenantbus.Tenant) error {
	const q = `
	INSERT INTO companies
		(id, name, email, phone, address, plan, status, employee_count, monthly_revenue,
		trial_ends_at, custom_url, logo, whatsapp, next_payment_at, overdue_days,
		created_at, updated_at)
	VALUES
		(:id, :name, :email, :phone, :address, :plan, :status, :employee_count, :monthly_revenue,
		:trial_ends_at, :custom_url, :logo, :whatsapp, :next_payment_at, :overdue_days,
		:created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBTenant(t)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapDuplicate(err))
	}

	return nil
}

// Update replaces a tenant document in the database.
func (s *Store) Update(ctx context.Context, t tenantbus.Tenant) error {
	const q = `
	UPDATE
		companies
	SET
		name = :name,
		email = :email,
		phone = :phone,
		address = :address,
		plan = :plan,
		status = :status,
		employee_count = :employee_count,
		monthly_revenue = :monthly_revenue,
		trial_ends_at = :trial_ends_at,
		custom_url = :custom_url,
		logo = :logo,
		whatsapp = :whatsapp,
		next_payment_at = :next_payment_at,
		overdue_days = :overdue_days,
		updated_at = :updated_at
	WHERE
		id = :id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBTenant(t)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapDuplicate(err))
	}

	return nil
}

// Query retrieves a list of existing tenants from the database.
func (s *Store) Query(ctx context.Context, filter tenantbus.QueryFilter, orderBy order.By, page page.Page) ([]tenantbus.Tenant, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectColumns)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbTenants []tenantDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbTenants); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusTenants(dbTenants)
}

// Count returns the total number of tenants in the DB.
func (s *Store) Count(ctx context.Context, filter tenantbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		companies`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified tenant from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	data := struct {
		ID string `db:"id"`
	}{
		ID: tenantID.String(),
	}

	q := selectColumns + `
	WHERE
		id = :id`

	return s.queryOne(ctx, q, data)
}

// QueryByCustomURL gets the tenant that owns the public url handle.
func (s *Store) QueryByCustomURL(ctx context.Context, customURL slug.Slug) (tenantbus.Tenant, error) {
	data := struct {
		CustomURL string `db:"custom_url"`
	}{
		CustomURL: customURL.String(),
	}

	q := selectColumns + `
	WHERE
		custom_url = :custom_url`

	return s.queryOne(ctx, q, data)
}

func (s *Store) queryOne(ctx context.Context, q string, data any) (tenantbus.Tenant, error) {
	var dbT tenantDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbT); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return tenantbus.Tenant{}, fmt.Errorf("db: %w", tenantbus.ErrNotFound)
		}
		return tenantbus.Tenant{}, fmt.Errorf("db: %w", err)
	}

	return toBusTenant(dbT)
}

func mapDuplicate(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	if errors.As(err, &dupErr) {
		switch dupErr.Column {
		case uniqueCustomURL, "custom_url":
			return tenantbus.ErrUniqueCustomURL
		}
	}

	return err
}
