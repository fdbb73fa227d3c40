package companyapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/shopspring/decimal"
)

// Company represents a company account as seen by administrators.
type Company struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Plan           string `json:"plan"`
	Status         string `json:"status"`
	EmployeeCount  int    `json:"employeeCount"`
	MonthlyRevenue string `json:"monthlyRevenue"`
	TrialEndsAt    string `json:"trialEndsAt,omitempty"`
	CustomURL      string `json:"customUrl,omitempty"`
	Logo           string `json:"logo,omitempty"`
	WhatsApp       string `json:"whatsapp,omitempty"`
	NextPaymentAt  string `json:"nextPaymentAt,omitempty"`
	OverdueDays    int    `json:"overdueDays"`
	DateCreated    string `json:"dateCreated"`
	DateUpdated    string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Company) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCompany(bus tenantbus.Tenant) Company {
	var email string
	if bus.Email != nil {
		email = bus.Email.Address
	}

	return Company{
		ID:             bus.ID.String(),
		Name:           bus.Name.String(),
		Email:          email,
		Phone:          bus.Phone.String(),
		Address:        bus.Address,
		Plan:           bus.Plan,
		Status:         bus.Status.String(),
		EmployeeCount:  bus.EmployeeCount,
		MonthlyRevenue: bus.MonthlyRevenue.StringFixed(2),
		TrialEndsAt:    formatTime(bus.TrialEndsAt),
		CustomURL:      bus.CustomURL.String(),
		Logo:           bus.Logo,
		WhatsApp:       bus.WhatsApp.String(),
		NextPaymentAt:  formatTime(bus.NextPaymentAt),
		OverdueDays:    bus.OverdueDays,
		DateCreated:    bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:    bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCompanies(tenants []tenantbus.Tenant) []Company {
	app := make([]Company, len(tenants))
	for i, t := range tenants {
		app[i] = toAppCompany(t)
	}
	return app
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

type createdCompany struct {
	Company
}

// HTTPStatus implements the web package httpStatus interface.
func (createdCompany) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================

// CurrentCompany is returned for the caller's own company. When the company
// could not be resolved Company is nil and Notice tells the user why.
type CurrentCompany struct {
	Company *Company `json:"company"`
	Notice  string   `json:"notice,omitempty"`
}

// Encode implements the web.Encoder interface.
func (c CurrentCompany) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

// =============================================================================

// PublicCompany is what the public booking page may show about a company.
type PublicCompany struct {
	Name         string `json:"name"`
	CustomURL    string `json:"customUrl"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Logo         string `json:"logo,omitempty"`
	WhatsAppLink string `json:"whatsappLink,omitempty"`
}

// Encode implements the web.Encoder interface.
func (c PublicCompany) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toPublicCompany(bus tenantbus.Tenant) PublicCompany {
	return PublicCompany{
		Name:         bus.Name.String(),
		CustomURL:    bus.CustomURL.String(),
		Phone:        bus.Phone.String(),
		Address:      bus.Address,
		Logo:         bus.Logo,
		WhatsAppLink: bus.WhatsApp.WhatsAppLink(),
	}
}

// =============================================================================

// NewCompany defines the data needed to add a new company.
type NewCompany struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Plan           string `json:"plan"`
	Status         string `json:"status"`
	EmployeeCount  int    `json:"employeeCount" validate:"gte=0"`
	MonthlyRevenue string `json:"monthlyRevenue"`
	TrialEndsAt    string `json:"trialEndsAt"`
	CustomURL      string `json:"customUrl"`
	Logo           string `json:"logo"`
	WhatsApp       string `json:"whatsapp"`
}

// Decode implements the web.Decoder interface.
func (app *NewCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app NewCompany) (tenantbus.NewTenant, error) {
	var fieldErrors errs.FieldErrors

	phn, err := phone.ParseNull(app.Phone)
	if err != nil {
		fieldErrors.Add("phone", err)
	}

	whatsApp, err := phone.ParseNull(app.WhatsApp)
	if err != nil {
		fieldErrors.Add("whatsapp", err)
	}

	sts, err := status.Parse(app.Status)
	if err != nil {
		fieldErrors.Add("status", err)
	}

	customURL, err := slug.ParseNull(app.CustomURL)
	if err != nil {
		fieldErrors.Add("customUrl", err)
	}

	var revenue decimal.Decimal
	if app.MonthlyRevenue != "" {
		revenue, err = decimal.NewFromString(app.MonthlyRevenue)
		if err != nil {
			fieldErrors.Add("monthlyRevenue", err)
		}
	}

	trialEndsAt, err := parseTime(app.TrialEndsAt)
	if err != nil {
		fieldErrors.Add("trialEndsAt", err)
	}

	if fieldErrors != nil {
		return tenantbus.NewTenant{}, fieldErrors.ToError()
	}

	return tenantbus.NewTenant{
		Name:           app.Name,
		Email:          app.Email,
		Phone:          phn,
		Address:        app.Address,
		Plan:           app.Plan,
		Status:         sts,
		EmployeeCount:  app.EmployeeCount,
		MonthlyRevenue: revenue,
		TrialEndsAt:    trialEndsAt,
		CustomURL:      customURL,
		Logo:           app.Logo,
		WhatsApp:       whatsApp,
	}, nil
}

// =============================================================================

// UpdateCompany defines the data needed to update a company. Absent fields
// are left untouched.
type UpdateCompany struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Plan           *string `json:"plan"`
	Status         *string `json:"status"`
	EmployeeCount  *int    `json:"employeeCount" validate:"omitempty,gte=0"`
	MonthlyRevenue *string `json:"monthlyRevenue"`
	TrialEndsAt    *string `json:"trialEndsAt"`
	CustomURL      *string `json:"customUrl"`
	Logo           *string `json:"logo"`
	WhatsApp       *string `json:"whatsapp"`
	NextPaymentAt  *string `json:"nextPaymentAt"`
	OverdueDays    *int    `json:"overdueDays" validate:"omitempty,gte=0"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCompany(app UpdateCompany) (tenantbus.UpdateTenant, error) {
	var fieldErrors errs.FieldErrors

	ut := tenantbus.UpdateTenant{
		Name:          app.Name,
		Email:         app.Email,
		Address:       app.Address,
		Plan:          app.Plan,
		EmployeeCount: app.EmployeeCount,
		Logo:          app.Logo,
		OverdueDays:   app.OverdueDays,
	}

	if app.Phone != nil {
		phn, err := phone.ParseNull(*app.Phone)
		if err != nil {
			fieldErrors.Add("phone", err)
		}
		ut.Phone = &phn
	}

	if app.WhatsApp != nil {
		whatsApp, err := phone.ParseNull(*app.WhatsApp)
		if err != nil {
			fieldErrors.Add("whatsapp", err)
		}
		ut.WhatsApp = &whatsApp
	}

	if app.Status != nil {
		sts, err := status.Parse(*app.Status)
		if err != nil {
			fieldErrors.Add("status", err)
		}
		ut.Status = &sts
	}

	if app.CustomURL != nil {
		customURL, err := slug.ParseNull(*app.CustomURL)
		if err != nil {
			fieldErrors.Add("customUrl", err)
		}
		ut.CustomURL = &customURL
	}

	if app.MonthlyRevenue != nil {
		revenue, err := decimal.NewFromString(*app.MonthlyRevenue)
		if err != nil {
			fieldErrors.Add("monthlyRevenue", err)
		}
		ut.MonthlyRevenue = &revenue
	}

	if app.TrialEndsAt != nil {
		t, err := parseTime(*app.TrialEndsAt)
		if err != nil {
			fieldErrors.Add("trialEndsAt", err)
		}
		ut.TrialEndsAt = t
	}

	if app.NextPaymentAt != nil {
		t, err := parseTime(*app.NextPaymentAt)
		if err != nil {
			fieldErrors.Add("nextPaymentAt", err)
		}
		ut.NextPaymentAt = t
	}

	if fieldErrors != nil {
		return tenantbus.UpdateTenant{}, fieldErrors.ToError()
	}

	return ut, nil
}

func parseTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
