package companydatabus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/shopspring/decimal"
)

// Service is something a company sells, such as a haircut.
type Service struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           decimal.Decimal
	Active          bool
	CreatedAt       time.Time
}

// NewService contains information needed to create a service.
type NewService struct {
	TenantID        uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           decimal.Decimal
}

// Professional is a person who attends appointments. UserID links the
// profile to a login when the professional has one.
type Professional struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Email     string
	Phone     phone.Null
	Specialty string
	Active    bool
	CreatedAt time.Time
}

// NewProfessional contains information needed to create a professional.
type NewProfessional struct {
	TenantID  uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Email     string
	Phone     phone.Null
	Specialty string
}

// Set of appointment states.
const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked slot between a client and a professional.
type Appointment struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	StartsAt       time.Time
	EndsAt         time.Time
	Status         string
	Price          decimal.Decimal
	Notes          string
	CreatedAt      time.Time
}

// NewAppointment contains information needed to book an appointment.
type NewAppointment struct {
	TenantID       uuid.UUID
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	StartsAt       time.Time
	EndsAt         time.Time
	Price          decimal.Decimal
	Notes          string
}

// Client is a customer of a company.
type Client struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	Phone     phone.Null
	Notes     string
	CreatedAt time.Time
}

// NewClient contains information needed to register a client.
type NewClient struct {
	TenantID uuid.UUID
	Name     string
	Email    string
	Phone    phone.Null
	Notes    string
}

// Expense is money a company spent.
type Expense struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Description string
	Category    string
	Amount      decimal.Decimal
	SpentAt     time.Time
	CreatedAt   time.Time
}

// NewExpense contains information needed to record an expense.
type NewExpense struct {
	TenantID    uuid.UUID
	Description string
	Category    string
	Amount      decimal.Decimal
	SpentAt     time.Time
}

// Set of invoice states.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Invoice is a subscription charge issued to a company.
type Invoice struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Amount    decimal.Decimal
	Status    string
	DueAt     time.Time
	PaidAt    *time.Time
	CreatedAt time.Time
}

// NewInvoice contains information needed to issue an invoice.
type NewInvoice struct {
	TenantID uuid.UUID
	Amount   decimal.Decimal
	DueAt    time.Time
}
