package tenantdb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/shopspring/decimal"
)

// tenantDB represents a row of the companies table.
type tenantDB struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Email          sql.NullString  `db:"email"`
	Phone          sql.NullString  `db:"phone"`
	Address        sql.NullString  `db:"address"`
	Plan           string          `db:"plan"`
	Status         string          `db:"status"`
	EmployeeCount  int             `db:"employee_count"`
	MonthlyRevenue decimal.Decimal `db:"monthly_revenue"`
	TrialEndsAt    sql.NullTime    `db:"trial_ends_at"`
	CustomURL      sql.NullString  `db:"custom_url"`
	Logo           sql.NullString  `db:"logo"`
	WhatsApp       sql.NullString  `db:"whatsapp"`
	NextPaymentAt  sql.NullTime    `db:"next_payment_at"`
	OverdueDays    int             `db:"overdue_days"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) tenantDB {
	db := tenantDB{
		ID:             bus.ID,
		Name:           bus.Name.String(),
		Phone:          phone.ToSQLNullString(bus.Phone),
		Address:        toNullString(bus.Address),
		Plan:           bus.Plan,
		Status:         bus.Status.String(),
		EmployeeCount:  bus.EmployeeCount,
		MonthlyRevenue: bus.MonthlyRevenue,
		TrialEndsAt:    toNullTime(bus.TrialEndsAt),
		CustomURL:      slug.ToSQLNullString(bus.CustomURL),
		Logo:           toNullString(bus.Logo),
		WhatsApp:       phone.ToSQLNullString(bus.WhatsApp),
		NextPaymentAt:  toNullTime(bus.NextPaymentAt),
		OverdueDays:    bus.OverdueDays,
		CreatedAt:      bus.CreatedAt.UTC(),
		UpdatedAt:      bus.UpdatedAt.UTC(),
	}

	if bus.Email != nil {
		db.Email = sql.NullString{String: bus.Email.Address, Valid: true}
	}

	return db
}

func toBusTenant(db tenantDB) (tenantbus.Tenant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	sts, err := status.Parse(db.Status)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse status: %w", err)
	}

	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse phone: %w", err)
	}

	wpp, err := phone.ParseNull(db.WhatsApp.String)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse whatsapp: %w", err)
	}

	customURL, err := slug.ParseNull(db.CustomURL.String)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse custom url: %w", err)
	}

	bus := tenantbus.Tenant{
		ID:             db.ID,
		Name:           nme,
		Phone:          phn,
		Address:        db.Address.String,
		Plan:           db.Plan,
		Status:         sts,
		EmployeeCount:  db.EmployeeCount,
		MonthlyRevenue: db.MonthlyRevenue,
		TrialEndsAt:    fromNullTime(db.TrialEndsAt),
		CustomURL:      customURL,
		Logo:           db.Logo.String,
		WhatsApp:       wpp,
		NextPaymentAt:  fromNullTime(db.NextPaymentAt),
		OverdueDays:    db.OverdueDays,
		CreatedAt:      db.CreatedAt.In(time.Local),
		UpdatedAt:      db.UpdatedAt.In(time.Local),
	}

	if db.Email.Valid {
		bus.Email = &mail.Address{Address: db.Email.String}
	}

	return bus, nil
}

func toBusTenants(dbs []tenantDB) ([]tenantbus.Tenant, error) {
	bus := make([]tenantbus.Tenant, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusTenant(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

// =============================================================================

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}

	t := nt.Time.In(time.Local)
	return &t
}
