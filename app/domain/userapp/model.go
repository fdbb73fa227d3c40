package userapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/types/role"
)

// User represents information about an individual user.
type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Avatar             string `json:"avatar,omitempty"`
	MustChangePassword bool   `json:"mustChangePassword"`
	CompanyID          string `json:"companyId,omitempty"`
	Enabled            bool   `json:"enabled"`
	DateCreated        string `json:"dateCreated"`
	DateUpdated        string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (u User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(u)
	return data, "application/json", err
}

func toAppUser(bus userbus.User) User {
	var companyID string
	if bus.CompanyID != nil {
		companyID = bus.CompanyID.String()
	}

	return User{
		ID:                 bus.ID.String(),
		Name:               bus.Name.String(),
		Email:              bus.Email.Address,
		Role:               bus.Role.String(),
		Avatar:             bus.Avatar,
		MustChangePassword: bus.MustChangePassword,
		CompanyID:          companyID,
		Enabled:            bus.Enabled,
		DateCreated:        bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:        bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsers(users []userbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = toAppUser(usr)
	}
	return app
}

// createdUser is returned with a 201 status.
type createdUser struct {
	User
}

// HTTPStatus implements the web package httpStatus interface.
func (createdUser) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================

// NewUser defines the data needed to add a new user.
type NewUser struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Role               string `json:"role"`
	Password           string `json:"password" validate:"required"`
	PasswordConfirm    string `json:"passwordConfirm" validate:"eqfield=Password"`
	Avatar             string `json:"avatar"`
	MustChangePassword bool   `json:"mustChangePassword"`
	CompanyID          string `json:"companyId" validate:"omitempty,uuid"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewUser(app NewUser) (userbus.NewUser, error) {
	r, err := role.Parse(app.Role)
	if err != nil {
		return userbus.NewUser{}, errs.NewFieldErrors("role", err)
	}

	var companyID *uuid.UUID
	if app.CompanyID != "" {
		id, err := uuid.Parse(app.CompanyID)
		if err != nil {
			return userbus.NewUser{}, errs.NewFieldErrors("companyId", err)
		}
		companyID = &id
	}

	bus := userbus.NewUser{
		Name:               app.Name,
		Email:              app.Email,
		Role:               r,
		Password:           app.Password,
		Avatar:             app.Avatar,
		MustChangePassword: app.MustChangePassword,
		CompanyID:          companyID,
	}

	return bus, nil
}

// =============================================================================

// UpdateUserRole defines the data needed to update a user role.
type UpdateUserRole struct {
	Role string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUserRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUserRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUserRole(app UpdateUserRole) (userbus.UpdateUser, error) {
	r, err := role.Parse(app.Role)
	if err != nil {
		return userbus.UpdateUser{}, errs.NewFieldErrors("role", err)
	}

	return userbus.UpdateUser{Role: &r}, nil
}

// =============================================================================

// UpdateUser defines the data a user can change about themselves.
type UpdateUser struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Avatar          *string `json:"avatar"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUser(app UpdateUser) userbus.UpdateUser {
	return userbus.UpdateUser{
		Name:     app.Name,
		Email:    app.Email,
		Avatar:   app.Avatar,
		Password: app.Password,
	}
}

// =============================================================================

// Professional is the professional profile linked to a user.
type Professional struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Active    bool   `json:"active"`
}

// Encode implements the web.Encoder interface.
func (p Professional) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppProfessional(bus companydatabus.Professional) Professional {
	var userID string
	if bus.UserID != nil {
		userID = bus.UserID.String()
	}

	return Professional{
		ID:        bus.ID.String(),
		CompanyID: bus.TenantID.String(),
		UserID:    userID,
		Name:      bus.Name,
		Email:     bus.Email,
		Phone:     bus.Phone.String(),
		Specialty: bus.Specialty,
		Active:    bus.Active,
	}
}
