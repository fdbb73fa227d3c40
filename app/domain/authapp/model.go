package authapp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
)

// Token is returned after a successful login or signup.
type Token struct {
	Token              string `json:"token"`
	UserID             string `json:"userId"`
	CompanyID          string `json:"companyId,omitempty"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
	status             int
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface.
func (t Token) HTTPStatus() int {
	if t.status == 0 {
		return http.StatusOK
	}
	return t.status
}

// Login holds the credentials of a login attempt.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// Signup holds what a company needs to open an account. The admin user
// becomes the first company admin.
type Signup struct {
	CompanyName     string `json:"companyName" validate:"required"`
	CompanyEmail    string `json:"companyEmail" validate:"omitempty,email"`
	CompanyPhone    string `json:"companyPhone"`
	CustomURL       string `json:"customUrl"`
	AdminName       string `json:"adminName" validate:"required"`
	AdminEmail      string `json:"adminEmail" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *Signup) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Signup) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
