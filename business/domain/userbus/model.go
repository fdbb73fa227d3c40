package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/role"
)

// User represents a login principal. CompanyID is nil for super admins.
type User struct {
	ID                 uuid.UUID
	Name               name.Name
	Email              mail.Address
	Role               role.Role
	PasswordHash       []byte
	Avatar             string
	MustChangePassword bool
	CompanyID          *uuid.UUID
	Enabled            bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser contains information needed to create a new user. Name, email and
// password are validated by the create pipeline.
type NewUser struct {
	Name               string
	Email              string
	Role               role.Role
	Password           string
	Avatar             string
	MustChangePassword bool
	CompanyID          *uuid.UUID
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name               *string
	Email              *string
	Role               *role.Role
	Password           *string
	Avatar             *string
	MustChangePassword *bool
	Enabled            *bool
}
