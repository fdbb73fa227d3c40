// Package tenantbus provides business access to the company accounts that own
// every other piece of tenant data.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jcpaschoal/agenda/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound        = errors.New("tenant not found")
	ErrUniqueCustomURL = errors.New("custom url is not unique")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Tenant, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryByCustomURL(ctx context.Context, customURL slug.Slug) (Tenant, error)
}

// Reloader is implemented by storers that keep a local copy of tenants and
// can drop it in favour of the authoritative record.
type Reloader interface {
	Reload(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
}

// Core manages the set of APIs for tenant access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new tenant to the system.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	nme, err := name.Parse(nt.Name)
	if err != nil {
		return Tenant{}, validation.NewFieldError("name", err)
	}

	email, err := parseEmail(nt.Email)
	if err != nil {
		return Tenant{}, validation.NewFieldError("email", err)
	}

	now := time.Now()

	t := Tenant{
		ID:             uuid.New(),
		Name:           nme,
		Email:          email,
		Phone:          nt.Phone,
		Address:        nt.Address,
		Plan:           nt.Plan,
		Status:         nt.Status,
		EmployeeCount:  nt.EmployeeCount,
		MonthlyRevenue: nt.MonthlyRevenue,
		TrialEndsAt:    nt.TrialEndsAt,
		CustomURL:      nt.CustomURL,
		Logo:           nt.Logo,
		WhatsApp:       nt.WhatsApp,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if t.Plan == "" {
		t.Plan = DefaultPlan
	}

	if t.Status.IsZero() {
		t.Status = status.Default
	}

	if t.EmployeeCount <= 0 {
		t.EmployeeCount = DefaultEmployeeCount
	}

	if err := c.storer.Create(ctx, t); err != nil {
		if errors.Is(err, ErrUniqueCustomURL) {
			return Tenant{}, validation.NewFieldError("customUrl", err)
		}
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// Update modifies data about a tenant.
func (c *Core) Update(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ut.Name != nil {
		nme, err := name.Parse(*ut.Name)
		if err != nil {
			return Tenant{}, validation.NewFieldError("name", err)
		}
		t.Name = nme
	}

	if ut.Email != nil {
		email, err := parseEmail(*ut.Email)
		if err != nil {
			return Tenant{}, validation.NewFieldError("email", err)
		}
		t.Email = email
	}

	if ut.Phone != nil {
		t.Phone = *ut.Phone
	}

	if ut.Address != nil {
		t.Address = *ut.Address
	}

	if ut.Plan != nil {
		t.Plan = *ut.Plan
	}

	if ut.Status != nil {
		t.Status = *ut.Status
	}

	if ut.EmployeeCount != nil {
		t.EmployeeCount = *ut.EmployeeCount
	}

	if ut.MonthlyRevenue != nil {
		t.MonthlyRevenue = *ut.MonthlyRevenue
	}

	if ut.TrialEndsAt != nil {
		t.TrialEndsAt = ut.TrialEndsAt
	}

	if ut.CustomURL != nil {
		t.CustomURL = *ut.CustomURL
	}

	if ut.Logo != nil {
		t.Logo = *ut.Logo
	}

	if ut.WhatsApp != nil {
		t.WhatsApp = *ut.WhatsApp
	}

	if ut.NextPaymentAt != nil {
		t.NextPaymentAt = ut.NextPaymentAt
	}

	if ut.OverdueDays != nil {
		t.OverdueDays = *ut.OverdueDays
	}

	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		if errors.Is(err, ErrUniqueCustomURL) {
			return Tenant{}, validation.NewFieldError("customUrl", err)
		}
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// Query retrieves a list of existing tenants.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.query")
	defer span.End()

	tenants, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return tenants, nil
}

// Count returns the total number of tenants.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	tenant, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// QueryByCustomURL finds the tenant that owns the public booking page handle.
func (c *Core) QueryByCustomURL(ctx context.Context, customURL slug.Slug) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByCustomURL")
	defer span.End()

	tenant, err := c.storer.QueryByCustomURL(ctx, customURL)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: customURL[%s]: %w", customURL, err)
	}

	return tenant, nil
}

// Exists reports whether a tenant with the specified ID is on record.
func (c *Core) Exists(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	if _, err := c.QueryByID(ctx, tenantID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// InitializeCompanyData repairs a principal whose tenant could not be
// resolved. Any local copy is dropped and the tenant is read again from the
// authoritative store. ErrNotFound means the tenant really is missing.
func (c *Core) InitializeCompanyData(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.initializeCompanyData")
	defer span.End()

	c.log.Warn(ctx, "tenantbus: re-initializing company data", "tenant_id", tenantID)

	var (
		tenant Tenant
		err    error
	)

	switch r := c.storer.(type) {
	case Reloader:
		tenant, err = r.Reload(ctx, tenantID)
	default:
		tenant, err = c.storer.QueryByID(ctx, tenantID)
	}

	if err != nil {
		return Tenant{}, fmt.Errorf("initialize: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// =============================================================================

func parseEmail(value string) (*mail.Address, error) {
	if value == "" {
		return nil, nil
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return nil, fmt.Errorf("malformed email %q", value)
	}

	return addr, nil
}
