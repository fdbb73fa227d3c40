package tenantbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/shopspring/decimal"
)

// Set of defaults applied to a new tenant.
const (
	DefaultPlan          = "basic"
	DefaultEmployeeCount = 1
)

// DefaultTrialPeriod is how long a self service signup stays in trial.
const DefaultTrialPeriod = 14 * 24 * time.Hour

// Tenant represents a company account, the unit of data isolation.
type Tenant struct {
	ID             uuid.UUID
	Name           name.Name
	Email          *mail.Address
	Phone          phone.Null
	Address        string
	Plan           string
	Status         status.Status
	EmployeeCount  int
	MonthlyRevenue decimal.Decimal
	TrialEndsAt    *time.Time
	CustomURL      slug.Null
	Logo           string
	WhatsApp       phone.Null
	NextPaymentAt  *time.Time
	OverdueDays    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTenant contains information needed to create a new tenant. Zero values
// of the optional fields fall back to the tenant defaults.
type NewTenant struct {
	Name           string
	Email          string
	Phone          phone.Null
	Address        string
	Plan           string
	Status         status.Status
	EmployeeCount  int
	MonthlyRevenue decimal.Decimal
	TrialEndsAt    *time.Time
	CustomURL      slug.Null
	Logo           string
	WhatsApp       phone.Null
}

// UpdateTenant contains information needed to update a tenant.
type UpdateTenant struct {
	Name           *string
	Email          *string
	Phone          *phone.Null
	Address        *string
	Plan           *string
	Status         *status.Status
	EmployeeCount  *int
	MonthlyRevenue *decimal.Decimal
	TrialEndsAt    *time.Time
	CustomURL      *slug.Null
	Logo           *string
	WhatsApp       *phone.Null
	NextPaymentAt  *time.Time
	OverdueDays    *int
}
