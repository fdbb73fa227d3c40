// Package companydatabus provides business access to the records every
// company owns: services, professionals, appointments, clients, expenses and
// invoices. Each record references its company and each relation is read
// through its own query.
package companydatabus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jcpaschoal/agenda/foundation/otel"
	"github.com/shopspring/decimal"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound       = errors.New("record not found")
	ErrUnknownTenant  = errors.New("tenant does not exist")
	ErrUnknownRelated = errors.New("referenced record does not exist")
)

// TenantLookup reports whether a tenant exists.
type TenantLookup interface {
	Exists(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)

	CreateService(ctx context.Context, s Service) error
	CreateProfessional(ctx context.Context, p Professional) error
	CreateAppointment(ctx context.Context, a Appointment) error
	CreateClient(ctx context.Context, c Client) error
	CreateExpense(ctx context.Context, e Expense) error
	CreateInvoice(ctx context.Context, i Invoice) error

	ListServicesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Service, error)
	ListProfessionalsForTenant(ctx context.Context, tenantID uuid.UUID) ([]Professional, error)
	ListAppointmentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]Appointment, error)
	ListClientsForTenant(ctx context.Context, tenantID uuid.UUID) ([]Client, error)
	ListExpensesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Expense, error)
	ListInvoicesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)

	QueryServiceByID(ctx context.Context, tenantID uuid.UUID, serviceID uuid.UUID) (Service, error)
	QueryProfessionalByID(ctx context.Context, tenantID uuid.UUID, professionalID uuid.UUID) (Professional, error)
	QueryClientByID(ctx context.Context, tenantID uuid.UUID, clientID uuid.UUID) (Client, error)
	QueryProfessionalByUserID(ctx context.Context, userID uuid.UUID) (Professional, error)
}

// Core manages the set of APIs for company data access.
type Core struct {
	log     *logger.Logger
	tenants TenantLookup
	storer  Storer
}

// NewCore constructs a core for company data api access.
func NewCore(log *logger.Logger, tenants TenantLookup, storer Storer) *Core {
	return &Core{
		log:     log,
		tenants: tenants,
		storer:  storer,
	}
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(c.log, c.tenants, storer), nil
}

// =============================================================================

// CreateService adds a service to a tenant catalog.
func (c *Core) CreateService(ctx context.Context, ns NewService) (Service, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.createService")
	defer span.End()

	if err := c.requireTenant(ctx, ns.TenantID); err != nil {
		return Service{}, err
	}

	if ns.Name == "" {
		return Service{}, validation.NewFieldError("name", validation.ErrRequired)
	}

	if ns.DurationMinutes <= 0 {
		return Service{}, validation.NewFieldError("durationMinutes", validation.ErrInvalid)
	}

	if ns.Price.IsNegative() {
		return Service{}, validation.NewFieldError("price", validation.ErrInvalid)
	}

	s := Service{
		ID:              uuid.New(),
		TenantID:        ns.TenantID,
		Name:            ns.Name,
		Description:     ns.Description,
		DurationMinutes: ns.DurationMinutes,
		Price:           ns.Price,
		Active:          true,
		CreatedAt:       time.Now(),
	}

	if err := c.storer.CreateService(ctx, s); err != nil {
		return Service{}, fmt.Errorf("createservice: %w", err)
	}

	return s, nil
}

// CreateProfessional adds a professional to a tenant.
func (c *Core) CreateProfessional(ctx context.Context, np NewProfessional) (Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.createProfessional")
	defer span.End()

	if err := c.requireTenant(ctx, np.TenantID); err != nil {
		return Professional{}, err
	}

	if np.Name == "" {
		return Professional{}, validation.NewFieldError("name", validation.ErrRequired)
	}

	p := Professional{
		ID:        uuid.New(),
		TenantID:  np.TenantID,
		UserID:    np.UserID,
		Name:      np.Name,
		Email:     np.Email,
		Phone:     np.Phone,
		Specialty: np.Specialty,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := c.storer.CreateProfessional(ctx, p); err != nil {
		return Professional{}, fmt.Errorf("createprofessional: %w", err)
	}

	return p, nil
}

// CreateAppointment books an appointment for a tenant.
func (c *Core) CreateAppointment(ctx context.Context, na NewAppointment) (Appointment, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.createAppointment")
	defer span.End()

	if err := c.requireTenant(ctx, na.TenantID); err != nil {
		return Appointment{}, err
	}

	if na.StartsAt.IsZero() {
		return Appointment{}, validation.NewFieldError("startsAt", validation.ErrRequired)
	}

	if !na.EndsAt.After(na.StartsAt) {
		return Appointment{}, validation.NewFieldError("endsAt", errors.New("must be after startsAt"))
	}

	if err := c.requireOwned(ctx, na); err != nil {
		return Appointment{}, err
	}

	a := Appointment{
		ID:             uuid.New(),
		TenantID:       na.TenantID,
		ClientID:       na.ClientID,
		ProfessionalID: na.ProfessionalID,
		ServiceID:      na.ServiceID,
		StartsAt:       na.StartsAt,
		EndsAt:         na.EndsAt,
		Status:         AppointmentScheduled,
		Price:          na.Price,
		Notes:          na.Notes,
		CreatedAt:      time.Now(),
	}

	if err := c.storer.CreateAppointment(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("createappointment: %w", err)
	}

	return a, nil
}

// CreateClient registers a client for a tenant.
func (c *Core) CreateClient(ctx context.Context, nc NewClient) (Client, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.createClient")
	defer span.End()

	if err := c.requireTenant(ctx, nc.TenantID); err != nil {
		return Client{}, err
	}

	if nc.Name == "" {
		return Client{}, validation.NewFieldError("name", validation.ErrRequired)
	}

	cl := Client{
		ID:        uuid.New(),
		TenantID:  nc.TenantID,
		Name:      nc.Name,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Notes:     nc.Notes,
		CreatedAt: time.Now(),
	}

	if err := c.storer.CreateClient(ctx, cl); err != nil {
		return Client{}, fmt.Errorf("createclient: %w", err)
	}

	return cl, nil
}

// CreateExpense records an expense for a tenant.
func (c *Core) CreateExpense(ctx context.Context, ne NewExpense) (Expense, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.createExpense")
	defer span.End()

	if err := c.requireTenant(ctx, ne.TenantID); err != nil {
		return Expense{}, err
	}

	if ne.Description == "" {
		return Expense{}, validation.NewFieldError("description", validation.ErrRequired)
	}

	if !ne.Amount.GreaterThan(decimal.Zero) {
		return Expense{}, validation.NewFieldError("amount", validation.ErrInvalid)
	}

	spentAt := ne.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	e := Expense{
		ID:          uuid.New(),
		TenantID:    ne.TenantID,
		Description: ne.Description,
		Category:    ne.Category,
		Amount:      ne.Amount,
		SpentAt:     spentAt,
		CreatedAt:   time.Now(),
	}

	if err := c.storer.CreateExpense(ctx, e); err != nil {
		return Expense{}, fmt.Errorf("createexpense: %w", err)
	}

	return e, nil
}

// CreateInvoice issues an invoice to a tenant.
func (c *Core) CreateInvoice(ctx context.Context, ni NewInvoice) (Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.createInvoice")
	defer span.End()

	if err := c.requireTenant(ctx, ni.TenantID); err != nil {
		return Invoice{}, err
	}

	if !ni.Amount.GreaterThan(decimal.Zero) {
		return Invoice{}, validation.NewFieldError("amount", validation.ErrInvalid)
	}

	if ni.DueAt.IsZero() {
		return Invoice{}, validation.NewFieldError("dueAt", validation.ErrRequired)
	}

	i := Invoice{
		ID:        uuid.New(),
		TenantID:  ni.TenantID,
		Amount:    ni.Amount,
		Status:    InvoicePending,
		DueAt:     ni.DueAt,
		CreatedAt: time.Now(),
	}

	if err := c.storer.CreateInvoice(ctx, i); err != nil {
		return Invoice{}, fmt.Errorf("createinvoice: %w", err)
	}

	return i, nil
}

// =============================================================================

// ListServicesForTenant returns the services owned by the tenant.
func (c *Core) ListServicesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Service, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.listServicesForTenant")
	defer span.End()

	items, err := c.storer.ListServicesForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list: tenantID[%s]: %w", tenantID, err)
	}

	return items, nil
}

// ListProfessionalsForTenant returns the professionals owned by the tenant.
func (c *Core) ListProfessionalsForTenant(ctx context.Context, tenantID uuid.UUID) ([]Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.listProfessionalsForTenant")
	defer span.End()

	items, err := c.storer.ListProfessionalsForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list: tenantID[%s]: %w", tenantID, err)
	}

	return items, nil
}

// ListAppointmentsForTenant returns the appointments owned by the tenant.
func (c *Core) ListAppointmentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]Appointment, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.listAppointmentsForTenant")
	defer span.End()

	items, err := c.storer.ListAppointmentsForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list: tenantID[%s]: %w", tenantID, err)
	}

	return items, nil
}

// ListClientsForTenant returns the clients owned by the tenant.
func (c *Core) ListClientsForTenant(ctx context.Context, tenantID uuid.UUID) ([]Client, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.listClientsForTenant")
	defer span.End()

	items, err := c.storer.ListClientsForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list: tenantID[%s]: %w", tenantID, err)
	}

	return items, nil
}

// ListExpensesForTenant returns the expenses owned by the tenant.
func (c *Core) ListExpensesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Expense, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.listExpensesForTenant")
	defer span.End()

	items, err := c.storer.ListExpensesForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list: tenantID[%s]: %w", tenantID, err)
	}

	return items, nil
}

// ListInvoicesForTenant returns the invoices owned by the tenant.
func (c *Core) ListInvoicesForTenant(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.listInvoicesForTenant")
	defer span.End()

	items, err := c.storer.ListInvoicesForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list: tenantID[%s]: %w", tenantID, err)
	}

	return items, nil
}

// QueryProfessionalByUserID returns the professional profile linked to a
// user login.
func (c *Core) QueryProfessionalByUserID(ctx context.Context, userID uuid.UUID) (Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.companydatabus.queryProfessionalByUserID")
	defer span.End()

	p, err := c.storer.QueryProfessionalByUserID(ctx, userID)
	if err != nil {
		return Professional{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return p, nil
}

// =============================================================================

func (c *Core) requireTenant(ctx context.Context, tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return validation.NewFieldError("tenantId", ErrUnknownTenant)
	}

	ok, err := c.tenants.Exists(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("tenant lookup: %w", err)
	}

	if !ok {
		return fmt.Errorf("tenantID[%s]: %w", tenantID, ErrUnknownTenant)
	}

	return nil
}

// requireOwned rejects an appointment that references a client, professional
// or service belonging to another tenant.
func (c *Core) requireOwned(ctx context.Context, na NewAppointment) error {
	if _, err := c.storer.QueryClientByID(ctx, na.TenantID, na.ClientID); err != nil {
		return relatedError("clientId", err)
	}

	if _, err := c.storer.QueryProfessionalByID(ctx, na.TenantID, na.ProfessionalID); err != nil {
		return relatedError("professionalId", err)
	}

	if _, err := c.storer.QueryServiceByID(ctx, na.TenantID, na.ServiceID); err != nil {
		return relatedError("serviceId", err)
	}

	return nil
}

func relatedError(field string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return validation.NewFieldError(field, ErrUnknownRelated)
	}

	return fmt.Errorf("query %s: %w", field, err)
}
