// Package companydatadb contains the CRUD functionality for the records a
// company owns.
package companydatadb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for company data database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companydatabus.Storer, error) {
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

// CreateService inserts a service.
func (s *Store) CreateService(ctx context.Context, svc companydatabus.Service) error {
	const q = `
	INSERT INTO services
		(id, company_id, name, description, duration_minutes, price, active, created_at)
	VALUES
		(:id, :company_id, :name, :description, :duration_minutes, :price, :active, :created_at)`

	return s.exec(ctx, q, toDBService(svc))
}

// CreateProfessional inserts a professional.
func (s *Store) CreateProfessional(ctx context.Context, p companydatabus.Professional) error {
	const q = `
	INSERT INTO professionals
		(id, company_id, user_id, name, email, phone, specialty, active, created_at)
	VALUES
		(:id, :company_id, :user_id, :name, :email, :phone, :specialty, :active, :created_at)`

	return s.exec(ctx, q, toDBProfessional(p))
}

// CreateAppointment inserts an appointment.
func (s *Store) CreateAppointment(ctx context.Context, a companydatabus.Appointment) error {
	const q = `
	INSERT INTO appointments
		(id, company_id, client_id, professional_id, service_id, starts_at, ends_at, status, price, notes, created_at)
	VALUES
		(:id, :company_id, :client_id, :professional_id, :service_id, :starts_at, :ends_at, :status, :price, :notes, :created_at)`

	return s.exec(ctx, q, toDBAppointment(a))
}

// CreateClient inserts a client.
func (s *Store) CreateClient(ctx context.Context, c companydatabus.Client) error {
	const q = `
	INSERT INTO clients
		(id, company_id, name, email, phone, notes, created_at)
	VALUES
		(:id, :company_id, :name, :email, :phone, :notes, :created_at)`

	return s.exec(ctx, q, toDBClient(c))
}

// CreateExpense inserts an expense.
func (s *Store) CreateExpense(ctx context.Context, e companydatabus.Expense) error {
	const q = `
	INSERT INTO expenses
		(id, company_id, description, category, amount, spent_at, created_at)
	VALUES
		(:id, :company_id, :description, :category, :amount, :spent_at, :created_at)`

	return s.exec(ctx, q, toDBExpense(e))
}

// CreateInvoice inserts an invoice.
func (s *Store) CreateInvoice(ctx context.Context, i companydatabus.Invoice) error {
	const q = `
	INSERT INTO invoices
		(id, company_id, amount, status, due_at, paid_at, created_at)
	VALUES
		(:id, :company_id, :amount, :status, :due_at, :paid_at, :created_at)`

	return s.exec(ctx, q, toDBInvoice(i))
}

// =============================================================================

// ListServicesForTenant retrieves the services owned by a company.
func (s *Store) ListServicesForTenant(ctx context.Context, tenantID uuid.UUID) ([]companydatabus.Service, error) {
	const q = `
	SELECT
		id, company_id, name, description, duration_minutes, price, active, created_at
	FROM
		services
	WHERE
		company_id = :company_id
	ORDER BY
		name`

	var dbs []serviceDB
	if err := list(ctx, s, q, tenantID, &dbs); err != nil {
		return nil, err
	}

	return toBusSlice(dbs, toBusService)
}

// ListProfessionalsForTenant retrieves the professionals owned by a company.
func (s *Store) ListProfessionalsForTenant(ctx context.Context, tenantID uuid.UUID) ([]companydatabus.Professional, error) {
	const q = `
	SELECT
		id, company_id, user_id, name, email, phone, specialty, active, created_at
	FROM
		professionals
	WHERE
		company_id = :company_id
	ORDER BY
		name`

	var dbs []professionalDB
	if err := list(ctx, s, q, tenantID, &dbs); err != nil {
		return nil, err
	}

	return toBusSlice(dbs, toBusProfessional)
}

// ListAppointmentsForTenant retrieves the appointments owned by a company.
func (s *Store) ListAppointmentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]companydatabus.Appointment, error) {
	const q = `
	SELECT
		id, company_id, client_id, professional_id, service_id, starts_at, ends_at, status, price, notes, created_at
	FROM
		appointments
	WHERE
		company_id = :company_id
	ORDER BY
		starts_at`

	var dbs []appointmentDB
	if err := list(ctx, s, q, tenantID, &dbs); err != nil {
		return nil, err
	}

	return toBusSlice(dbs, toBusAppointment)
}

// ListClientsForTenant retrieves the clients owned by a company.
func (s *Store) ListClientsForTenant(ctx context.Context, tenantID uuid.UUID) ([]companydatabus.Client, error) {
	const q = `
	SELECT
		id, company_id, name, email, phone, notes, created_at
	FROM
		clients
	WHERE
		company_id = :company_id
	ORDER BY
		name`

	var dbs []clientDB
	if err := list(ctx, s, q, tenantID, &dbs); err != nil {
		return nil, err
	}

	return toBusSlice(dbs, toBusClient)
}

// ListExpensesForTenant retrieves the expenses owned by a company.
func (s *Store) ListExpensesForTenant(ctx context.Context, tenantID uuid.UUID) ([]companydatabus.Expense, error) {
	const q = `
	SELECT
		id, company_id, description, category, amount, spent_at, created_at
	FROM
		expenses
	WHERE
		company_id = :company_id
	ORDER BY
		spent_at DESC`

	var dbs []expenseDB
	if err := list(ctx, s, q, tenantID, &dbs); err != nil {
		return nil, err
	}

	return toBusSlice(dbs, toBusExpense)
}

// ListInvoicesForTenant retrieves the invoices owned by a company.
func (s *Store) ListInvoicesForTenant(ctx context.Context, tenantID uuid.UUID) ([]companydatabus.Invoice, error) {
	const q = `
	SELECT
		id, company_id, amount, status, due_at, paid_at, created_at
	FROM
		invoices
	WHERE
		company_id = :company_id
	ORDER BY
		due_at DESC`

	var dbs []invoiceDB
	if err := list(ctx, s, q, tenantID, &dbs); err != nil {
		return nil, err
	}

	return toBusSlice(dbs, toBusInvoice)
}

// QueryProfessionalByUserID gets the professional profile linked to a user.
func (s *Store) QueryProfessionalByUserID(ctx context.Context, userID uuid.UUID) (companydatabus.Professional, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		id, company_id, user_id, name, email, phone, specialty, active, created_at
	FROM
		professionals
	WHERE
		user_id = :user_id`

	var db professionalDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &db); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companydatabus.Professional{}, fmt.Errorf("db: %w", companydatabus.ErrNotFound)
		}
		return companydatabus.Professional{}, fmt.Errorf("db: %w", err)
	}

	return toBusProfessional(db)
}

// QueryServiceByID gets a service owned by the company.
func (s *Store) QueryServiceByID(ctx context.Context, tenantID uuid.UUID, serviceID uuid.UUID) (companydatabus.Service, error) {
	const q = `
	SELECT
		id, company_id, name, description, duration_minutes, price, active, created_at
	FROM
		services
	WHERE
		id = :id AND company_id = :company_id`

	var db serviceDB
	if err := queryOwned(ctx, s, q, tenantID, serviceID, &db); err != nil {
		return companydatabus.Service{}, err
	}

	return toBusService(db)
}

// QueryProfessionalByID gets a professional owned by the company.
func (s *Store) QueryProfessionalByID(ctx context.Context, tenantID uuid.UUID, professionalID uuid.UUID) (companydatabus.Professional, error) {
	const q = `
	SELECT
		id, company_id, user_id, name, email, phone, specialty, active, created_at
	FROM
		professionals
	WHERE
		id = :id AND company_id = :company_id`

	var db professionalDB
	if err := queryOwned(ctx, s, q, tenantID, professionalID, &db); err != nil {
		return companydatabus.Professional{}, err
	}

	return toBusProfessional(db)
}

// QueryClientByID gets a client owned by the company.
func (s *Store) QueryClientByID(ctx context.Context, tenantID uuid.UUID, clientID uuid.UUID) (companydatabus.Client, error) {
	const q = `
	SELECT
		id, company_id, name, email, phone, notes, created_at
	FROM
		clients
	WHERE
		id = :id AND company_id = :company_id`

	var db clientDB
	if err := queryOwned(ctx, s, q, tenantID, clientID, &db); err != nil {
		return companydatabus.Client{}, err
	}

	return toBusClient(db)
}

// =============================================================================

func (s *Store) exec(ctx context.Context, q string, data any) error {
	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		var fkErr sqldb.ErrDBForeignKey
		if errors.As(err, &fkErr) {
			if strings.HasSuffix(fkErr.Constraint, "_company") {
				return fmt.Errorf("namedexeccontext: %w", companydatabus.ErrUnknownTenant)
			}
			return fmt.Errorf("namedexeccontext: %s: %w", fkErr.Constraint, companydatabus.ErrUnknownRelated)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

func list[T any](ctx context.Context, s *Store, q string, tenantID uuid.UUID, dest *[]T) error {
	data := struct {
		CompanyID string `db:"company_id"`
	}{
		CompanyID: tenantID.String(),
	}

	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, dest); err != nil {
		return fmt.Errorf("namedqueryslice: %w", err)
	}

	return nil
}

func queryOwned[T any](ctx context.Context, s *Store, q string, tenantID uuid.UUID, id uuid.UUID, dest *T) error {
	data := struct {
		ID        string `db:"id"`
		CompanyID string `db:"company_id"`
	}{
		ID:        id.String(),
		CompanyID: tenantID.String(),
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, dest); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return fmt.Errorf("db: %w", companydatabus.ErrNotFound)
		}
		return fmt.Errorf("db: %w", err)
	}

	return nil
}
