package companydatadb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/shopspring/decimal"
)

type serviceDB struct {
	ID              uuid.UUID       `db:"id"`
	CompanyID       uuid.UUID       `db:"company_id"`
	Name            string          `db:"name"`
	Description     sql.NullString  `db:"description"`
	DurationMinutes int             `db:"duration_minutes"`
	Price           decimal.Decimal `db:"price"`
	Active          bool            `db:"active"`
	CreatedAt       time.Time       `db:"created_at"`
}

func toDBService(bus companydatabus.Service) serviceDB {
	return serviceDB{
		ID:              bus.ID,
		CompanyID:       bus.TenantID,
		Name:            bus.Name,
		Description:     nullString(bus.Description),
		DurationMinutes: bus.DurationMinutes,
		Price:           bus.Price,
		Active:          bus.Active,
		CreatedAt:       bus.CreatedAt.UTC(),
	}
}

func toBusService(db serviceDB) (companydatabus.Service, error) {
	return companydatabus.Service{
		ID:              db.ID,
		TenantID:        db.CompanyID,
		Name:            db.Name,
		Description:     db.Description.String,
		DurationMinutes: db.DurationMinutes,
		Price:           db.Price,
		Active:          db.Active,
		CreatedAt:       db.CreatedAt.In(time.Local),
	}, nil
}

// =============================================================================

type professionalDB struct {
	ID        uuid.UUID      `db:"id"`
	CompanyID uuid.UUID      `db:"company_id"`
	UserID    uuid.NullUUID  `db:"user_id"`
	Name      string         `db:"name"`
	Email     sql.NullString `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Specialty sql.NullString `db:"specialty"`
	Active    bool           `db:"active"`
	CreatedAt time.Time      `db:"created_at"`
}

func toDBProfessional(bus companydatabus.Professional) professionalDB {
	db := professionalDB{
		ID:        bus.ID,
		CompanyID: bus.TenantID,
		Name:      bus.Name,
		Email:     nullString(bus.Email),
		Phone:     phone.ToSQLNullString(bus.Phone),
		Specialty: nullString(bus.Specialty),
		Active:    bus.Active,
		CreatedAt: bus.CreatedAt.UTC(),
	}

	if bus.UserID != nil {
		db.UserID = uuid.NullUUID{UUID: *bus.UserID, Valid: true}
	}

	return db
}

func toBusProfessional(db professionalDB) (companydatabus.Professional, error) {
	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return companydatabus.Professional{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := companydatabus.Professional{
		ID:        db.ID,
		TenantID:  db.CompanyID,
		Name:      db.Name,
		Email:     db.Email.String,
		Phone:     phn,
		Specialty: db.Specialty.String,
		Active:    db.Active,
		CreatedAt: db.CreatedAt.In(time.Local),
	}

	if db.UserID.Valid {
		id := db.UserID.UUID
		bus.UserID = &id
	}

	return bus, nil
}

// =============================================================================

type appointmentDB struct {
	ID             uuid.UUID       `db:"id"`
	CompanyID      uuid.UUID       `db:"company_id"`
	ClientID       uuid.UUID       `db:"client_id"`
	ProfessionalID uuid.UUID       `db:"professional_id"`
	ServiceID      uuid.UUID       `db:"service_id"`
	StartsAt       time.Time       `db:"starts_at"`
	EndsAt         time.Time       `db:"ends_at"`
	Status         string          `db:"status"`
	Price          decimal.Decimal `db:"price"`
	Notes          sql.NullString  `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
}

func toDBAppointment(bus companydatabus.Appointment) appointmentDB {
	return appointmentDB{
		ID:             bus.ID,
		CompanyID:      bus.TenantID,
		ClientID:       bus.ClientID,
		ProfessionalID: bus.ProfessionalID,
		ServiceID:      bus.ServiceID,
		StartsAt:       bus.StartsAt.UTC(),
		EndsAt:         bus.EndsAt.UTC(),
		Status:         bus.Status,
		Price:          bus.Price,
		Notes:          nullString(bus.Notes),
		CreatedAt:      bus.CreatedAt.UTC(),
	}
}

func toBusAppointment(db appointmentDB) (companydatabus.Appointment, error) {
	return companydatabus.Appointment{
		ID:             db.ID,
		TenantID:       db.CompanyID,
		ClientID:       db.ClientID,
		ProfessionalID: db.ProfessionalID,
		ServiceID:      db.ServiceID,
		StartsAt:       db.StartsAt.In(time.Local),
		EndsAt:         db.EndsAt.In(time.Local),
		Status:         db.Status,
		Price:          db.Price,
		Notes:          db.Notes.String,
		CreatedAt:      db.CreatedAt.In(time.Local),
	}, nil
}

// =============================================================================

type clientDB struct {
	ID        uuid.UUID      `db:"id"`
	CompanyID uuid.UUID      `db:"company_id"`
	Name      string         `db:"name"`
	Email     sql.NullString `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Notes     sql.NullString `db:"notes"`
	CreatedAt time.Time      `db:"created_at"`
}

func toDBClient(bus companydatabus.Client) clientDB {
	return clientDB{
		ID:        bus.ID,
		CompanyID: bus.TenantID,
		Name:      bus.Name,
		Email:     nullString(bus.Email),
		Phone:     phone.ToSQLNullString(bus.Phone),
		Notes:     nullString(bus.Notes),
		CreatedAt: bus.CreatedAt.UTC(),
	}
}

func toBusClient(db clientDB) (companydatabus.Client, error) {
	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return companydatabus.Client{}, fmt.Errorf("parse phone: %w", err)
	}

	return companydatabus.Client{
		ID:        db.ID,
		TenantID:  db.CompanyID,
		Name:      db.Name,
		Email:     db.Email.String,
		Phone:     phn,
		Notes:     db.Notes.String,
		CreatedAt: db.CreatedAt.In(time.Local),
	}, nil
}

// =============================================================================

type expenseDB struct {
	ID          uuid.UUID       `db:"id"`
	CompanyID   uuid.UUID       `db:"company_id"`
	Description string          `db:"description"`
	Category    sql.NullString  `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	SpentAt     time.Time       `db:"spent_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

func toDBExpense(bus companydatabus.Expense) expenseDB {
	return expenseDB{
		ID:          bus.ID,
		CompanyID:   bus.TenantID,
		Description: bus.Description,
		Category:    nullString(bus.Category),
		Amount:      bus.Amount,
		SpentAt:     bus.SpentAt.UTC(),
		CreatedAt:   bus.CreatedAt.UTC(),
	}
}

func toBusExpense(db expenseDB) (companydatabus.Expense, error) {
	return companydatabus.Expense{
		ID:          db.ID,
		TenantID:    db.CompanyID,
		Description: db.Description,
		Category:    db.Category.String,
		Amount:      db.Amount,
		SpentAt:     db.SpentAt.In(time.Local),
		CreatedAt:   db.CreatedAt.In(time.Local),
	}, nil
}

// =============================================================================

type invoiceDB struct {
	ID        uuid.UUID       `db:"id"`
	CompanyID uuid.UUID       `db:"company_id"`
	Amount    decimal.Decimal `db:"amount"`
	Status    string          `db:"status"`
	DueAt     time.Time       `db:"due_at"`
	PaidAt    sql.NullTime    `db:"paid_at"`
	CreatedAt time.Time       `db:"created_at"`
}

func toDBInvoice(bus companydatabus.Invoice) invoiceDB {
	db := invoiceDB{
		ID:        bus.ID,
		CompanyID: bus.TenantID,
		Amount:    bus.Amount,
		Status:    bus.Status,
		DueAt:     bus.DueAt.UTC(),
		CreatedAt: bus.CreatedAt.UTC(),
	}

	if bus.PaidAt != nil {
		db.PaidAt = sql.NullTime{Time: bus.PaidAt.UTC(), Valid: true}
	}

	return db
}

func toBusInvoice(db invoiceDB) (companydatabus.Invoice, error) {
	bus := companydatabus.Invoice{
		ID:        db.ID,
		TenantID:  db.CompanyID,
		Amount:    db.Amount,
		Status:    db.Status,
		DueAt:     db.DueAt.In(time.Local),
		CreatedAt: db.CreatedAt.In(time.Local),
	}

	if db.PaidAt.Valid {
		t := db.PaidAt.Time.In(time.Local)
		bus.PaidAt = &t
	}

	return bus, nil
}

// =============================================================================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toBusSlice[DB any, BUS any](dbs []DB, conv func(DB) (BUS, error)) ([]BUS, error) {
	bus := make([]BUS, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = conv(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
