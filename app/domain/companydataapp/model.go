package companydataapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/shopspring/decimal"
)

// List wraps every row a company owns for one relation.
type List[T any] struct {
	Items []T `json:"items"`
}

// Encode implements the web.Encoder interface.
func (l List[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

func toList[B any, A any](bus []B, fn func(B) A) List[A] {
	items := make([]A, len(bus))
	for i, b := range bus {
		items[i] = fn(b)
	}
	return List[A]{Items: items}
}

// created marks a value as a newly created resource.
type created[T interface{ Encode() ([]byte, string, error) }] struct {
	value T
}

// Encode implements the web.Encoder interface.
func (c created[T]) Encode() ([]byte, string, error) {
	return c.value.Encode()
}

// HTTPStatus implements the web package httpStatus interface.
func (created[T]) HTTPStatus() int {
	return http.StatusCreated
}

func encodeJSON(v any) ([]byte, string, error) {
	data, err := json.Marshal(v)
	return data, "application/json", err
}

func validate(v any) error {
	if err := errs.Check(v); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func parseDecimal(field string, value string, fieldErrors *errs.FieldErrors) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		fieldErrors.Add(field, err)
	}
	return d
}

func parseTime(field string, value string, fieldErrors *errs.FieldErrors) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		fieldErrors.Add(field, err)
	}
	return t
}

func parseID(field string, value string, fieldErrors *errs.FieldErrors) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		fieldErrors.Add(field, err)
	}
	return id
}

// =============================================================================

// Service represents a service a company sells.
type Service struct {
	ID              string `json:"id"`
	CompanyID       string `json:"companyId"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           string `json:"price"`
	Active          bool   `json:"active"`
	DateCreated     string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (s Service) Encode() ([]byte, string, error) {
	return encodeJSON(s)
}

func toAppService(bus companydatabus.Service) Service {
	return Service{
		ID:              bus.ID.String(),
		CompanyID:       bus.TenantID.String(),
		Name:            bus.Name,
		Description:     bus.Description,
		DurationMinutes: bus.DurationMinutes,
		Price:           bus.Price.StringFixed(2),
		Active:          bus.Active,
		DateCreated:     bus.CreatedAt.Format(time.RFC3339),
	}
}

// NewService defines the data needed to add a service.
type NewService struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
	Price           string `json:"price" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewService) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewService) Validate() error {
	return validate(app)
}

func toBusNewService(companyID uuid.UUID, app NewService) (companydatabus.NewService, error) {
	var fieldErrors errs.FieldErrors

	price := parseDecimal("price", app.Price, &fieldErrors)

	if fieldErrors != nil {
		return companydatabus.NewService{}, fieldErrors.ToError()
	}

	return companydatabus.NewService{
		TenantID:        companyID,
		Name:            app.Name,
		Description:     app.Description,
		DurationMinutes: app.DurationMinutes,
		Price:           price,
	}, nil
}

// =============================================================================

// Professional represents a person who attends appointments.
type Professional struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	UserID      string `json:"userId,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (p Professional) Encode() ([]byte, string, error) {
	return encodeJSON(p)
}

func toAppProfessional(bus companydatabus.Professional) Professional {
	var userID string
	if bus.UserID != nil {
		userID = bus.UserID.String()
	}

	return Professional{
		ID:          bus.ID.String(),
		CompanyID:   bus.TenantID.String(),
		UserID:      userID,
		Name:        bus.Name,
		Email:       bus.Email,
		Phone:       bus.Phone.String(),
		Specialty:   bus.Specialty,
		Active:      bus.Active,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// NewProfessional defines the data needed to add a professional.
type NewProfessional struct {
	UserID    string `json:"userId" validate:"omitempty,uuid"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

// Decode implements the web.Decoder interface.
func (app *NewProfessional) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewProfessional) Validate() error {
	return validate(app)
}

func toBusNewProfessional(companyID uuid.UUID, app NewProfessional) (companydatabus.NewProfessional, error) {
	var fieldErrors errs.FieldErrors

	var userID *uuid.UUID
	if app.UserID != "" {
		id := parseID("userId", app.UserID, &fieldErrors)
		userID = &id
	}

	phn, err := phone.ParseNull(app.Phone)
	if err != nil {
		fieldErrors.Add("phone", err)
	}

	if fieldErrors != nil {
		return companydatabus.NewProfessional{}, fieldErrors.ToError()
	}

	return companydatabus.NewProfessional{
		TenantID:  companyID,
		UserID:    userID,
		Name:      app.Name,
		Email:     app.Email,
		Phone:     phn,
		Specialty: app.Specialty,
	}, nil
}

// =============================================================================

// Appointment represents a booked slot.
type Appointment struct {
	ID             string `json:"id"`
	CompanyID      string `json:"companyId"`
	ClientID       string `json:"clientId"`
	ProfessionalID string `json:"professionalId"`
	ServiceID      string `json:"serviceId"`
	StartsAt       string `json:"startsAt"`
	EndsAt         string `json:"endsAt"`
	Status         string `json:"status"`
	Price          string `json:"price"`
	Notes          string `json:"notes,omitempty"`
	DateCreated    string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (a Appointment) Encode() ([]byte, string, error) {
	return encodeJSON(a)
}

func toAppAppointment(bus companydatabus.Appointment) Appointment {
	return Appointment{
		ID:             bus.ID.String(),
		CompanyID:      bus.TenantID.String(),
		ClientID:       bus.ClientID.String(),
		ProfessionalID: bus.ProfessionalID.String(),
		ServiceID:      bus.ServiceID.String(),
		StartsAt:       bus.StartsAt.Format(time.RFC3339),
		EndsAt:         bus.EndsAt.Format(time.RFC3339),
		Status:         bus.Status,
		Price:          bus.Price.StringFixed(2),
		Notes:          bus.Notes,
		DateCreated:    bus.CreatedAt.Format(time.RFC3339),
	}
}

// NewAppointment defines the data needed to book an appointment.
type NewAppointment struct {
	ClientID       string `json:"clientId" validate:"required,uuid"`
	ProfessionalID string `json:"professionalId" validate:"required,uuid"`
	ServiceID      string `json:"serviceId" validate:"required,uuid"`
	StartsAt       string `json:"startsAt" validate:"required"`
	EndsAt         string `json:"endsAt" validate:"required"`
	Price          string `json:"price"`
	Notes          string `json:"notes"`
}

// Decode implements the web.Decoder interface.
func (app *NewAppointment) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewAppointment) Validate() error {
	return validate(app)
}

func toBusNewAppointment(companyID uuid.UUID, app NewAppointment) (companydatabus.NewAppointment, error) {
	var fieldErrors errs.FieldErrors

	na := companydatabus.NewAppointment{
		TenantID:       companyID,
		ClientID:       parseID("clientId", app.ClientID, &fieldErrors),
		ProfessionalID: parseID("professionalId", app.ProfessionalID, &fieldErrors),
		ServiceID:      parseID("serviceId", app.ServiceID, &fieldErrors),
		StartsAt:       parseTime("startsAt", app.StartsAt, &fieldErrors),
		EndsAt:         parseTime("endsAt", app.EndsAt, &fieldErrors),
		Price:          parseDecimal("price", app.Price, &fieldErrors),
		Notes:          app.Notes,
	}

	if fieldErrors != nil {
		return companydatabus.NewAppointment{}, fieldErrors.ToError()
	}

	return na, nil
}

// =============================================================================

// Client represents a customer of the company.
type Client struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Notes       string `json:"notes,omitempty"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (c Client) Encode() ([]byte, string, error) {
	return encodeJSON(c)
}

func toAppClient(bus companydatabus.Client) Client {
	return Client{
		ID:          bus.ID.String(),
		CompanyID:   bus.TenantID.String(),
		Name:        bus.Name,
		Email:       bus.Email,
		Phone:       bus.Phone.String(),
		Notes:       bus.Notes,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// NewClient defines the data needed to register a client.
type NewClient struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// Decode implements the web.Decoder interface.
func (app *NewClient) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewClient) Validate() error {
	return validate(app)
}

func toBusNewClient(companyID uuid.UUID, app NewClient) (companydatabus.NewClient, error) {
	phn, err := phone.ParseNull(app.Phone)
	if err != nil {
		return companydatabus.NewClient{}, errs.NewFieldErrors("phone", err)
	}

	return companydatabus.NewClient{
		TenantID: companyID,
		Name:     app.Name,
		Email:    app.Email,
		Phone:    phn,
		Notes:    app.Notes,
	}, nil
}

// =============================================================================

// Expense represents money the company spent.
type Expense struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Amount      string `json:"amount"`
	SpentAt     string `json:"spentAt"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (e Expense) Encode() ([]byte, string, error) {
	return encodeJSON(e)
}

func toAppExpense(bus companydatabus.Expense) Expense {
	return Expense{
		ID:          bus.ID.String(),
		CompanyID:   bus.TenantID.String(),
		Description: bus.Description,
		Category:    bus.Category,
		Amount:      bus.Amount.StringFixed(2),
		SpentAt:     bus.SpentAt.Format(time.RFC3339),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// NewExpense defines the data needed to record an expense.
type NewExpense struct {
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
	Amount      string `json:"amount" validate:"required"`
	SpentAt     string `json:"spentAt" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewExpense) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewExpense) Validate() error {
	return validate(app)
}

func toBusNewExpense(companyID uuid.UUID, app NewExpense) (companydatabus.NewExpense, error) {
	var fieldErrors errs.FieldErrors

	ne := companydatabus.NewExpense{
		TenantID:    companyID,
		Description: app.Description,
		Category:    app.Category,
		Amount:      parseDecimal("amount", app.Amount, &fieldErrors),
		SpentAt:     parseTime("spentAt", app.SpentAt, &fieldErrors),
	}

	if fieldErrors != nil {
		return companydatabus.NewExpense{}, fieldErrors.ToError()
	}

	return ne, nil
}

// =============================================================================

// Invoice represents a subscription charge issued to the company.
type Invoice struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	DueAt       string `json:"dueAt"`
	PaidAt      string `json:"paidAt,omitempty"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (i Invoice) Encode() ([]byte, string, error) {
	return encodeJSON(i)
}

func toAppInvoice(bus companydatabus.Invoice) Invoice {
	var paidAt string
	if bus.PaidAt != nil {
		paidAt = bus.PaidAt.Format(time.RFC3339)
	}

	return Invoice{
		ID:          bus.ID.String(),
		CompanyID:   bus.TenantID.String(),
		Amount:      bus.Amount.StringFixed(2),
		Status:      bus.Status,
		DueAt:       bus.DueAt.Format(time.RFC3339),
		PaidAt:      paidAt,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}
}

// NewInvoice defines the data needed to issue an invoice.
type NewInvoice struct {
	Amount string `json:"amount" validate:"required"`
	DueAt  string `json:"dueAt" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewInvoice) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewInvoice) Validate() error {
	return validate(app)
}

func toBusNewInvoice(companyID uuid.UUID, app NewInvoice) (companydatabus.NewInvoice, error) {
	var fieldErrors errs.FieldErrors

	ni := companydatabus.NewInvoice{
		TenantID: companyID,
		Amount:   parseDecimal("amount", app.Amount, &fieldErrors),
		DueAt:    parseTime("dueAt", app.DueAt, &fieldErrors),
	}

	if fieldErrors != nil {
		return companydatabus.NewInvoice{}, fieldErrors.ToError()
	}

	return ni, nil
}
