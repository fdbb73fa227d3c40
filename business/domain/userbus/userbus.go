// Package userbus provides business access to user domain.
package userbus

import (
	"bytes"
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
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jcpaschoal/agenda/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("user not found")
	ErrUniqueEmail           = errors.New("email is not unique")
	ErrUnknownCompany        = errors.New("company does not exist")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, usr User) error
	Update(ctx context.Context, usr User) error
	Delete(ctx context.Context, usr User) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, userID uuid.UUID) (User, error)
	QueryByEmail(ctx context.Context, email mail.Address) (User, error)
}

// Option configures a Core.
type Option func(*Core)

// WithCreateSteps replaces the pipeline run before a user is inserted.
func WithCreateSteps(steps ...Step) Option {
	return func(c *Core) {
		c.createSteps = steps
	}
}

// WithUpdateSteps replaces the pipeline run before a user is updated.
func WithUpdateSteps(steps ...Step) Option {
	return func(c *Core) {
		c.updateSteps = steps
	}
}

// Core manages the set of APIs for user access.
type Core struct {
	log         *logger.Logger
	storer      Storer
	createSteps []Step
	updateSteps []Step
}

// NewCore constructs a core for user api access.
func NewCore(log *logger.Logger, storer Storer, options ...Option) *Core {
	c := Core{
		log:         log,
		storer:      storer,
		createSteps: DefaultCreateSteps(),
		updateSteps: DefaultUpdateSteps(),
	}

	for _, option := range options {
		option(&c)
	}

	return &c
}

// NewWithTx constructs a new Core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(c.log, storer, WithCreateSteps(c.createSteps...), WithUpdateSteps(c.updateSteps...)), nil
}

// Create adds a new user to the system.
func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.create")
	defer span.End()

	now := time.Now()

	usrRole := nu.Role
	if usrRole.IsZero() {
		usrRole = role.Default
	}

	w := Write{
		User: User{
			ID:                 uuid.New(),
			Role:               usrRole,
			Avatar:             nu.Avatar,
			MustChangePassword: nu.MustChangePassword,
			CompanyID:          nu.CompanyID,
			Enabled:            true,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		Name:     &nu.Name,
		Email:    &nu.Email,
		Password: &nu.Password,
	}

	if err := runSteps(ctx, c.createSteps, &w); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	if err := c.storer.Create(ctx, w.User); err != nil {
		return User{}, fmt.Errorf("create: %w", mapStoreError(err))
	}

	return w.User, nil
}

// Update modifies information about a user.
func (c *Core) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.update")
	defer span.End()

	prev := usr

	w := Write{
		Previous: &prev,
		User:     usr,
		Name:     uu.Name,
		Email:    uu.Email,
		Password: uu.Password,
	}

	if uu.Role != nil {
		w.User.Role = *uu.Role
	}

	if uu.Avatar != nil {
		w.User.Avatar = *uu.Avatar
	}

	if uu.MustChangePassword != nil {
		w.User.MustChangePassword = *uu.MustChangePassword
	}

	if uu.Enabled != nil {
		w.User.Enabled = *uu.Enabled
	}

	if err := runSteps(ctx, c.updateSteps, &w); err != nil {
		return User{}, fmt.Errorf("update: %w", err)
	}

	if uu.MustChangePassword == nil && !bytes.Equal(prev.PasswordHash, w.User.PasswordHash) {
		w.User.MustChangePassword = false
	}

	w.User.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, w.User); err != nil {
		return User{}, fmt.Errorf("update: %w", mapStoreError(err))
	}

	return w.User, nil
}

// Delete removes the specified user.
func (c *Core) Delete(ctx context.Context, usr User) error {
	ctx, span := otel.AddSpan(ctx, "business.userbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, usr); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing users.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.query")
	defer span.End()

	users, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return users, nil
}

// Count returns the total number of users.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the user by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByID")
	defer span.End()

	user, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return user, nil
}

// QueryByEmail finds the user by a specified user email.
func (c *Core) QueryByEmail(ctx context.Context, email mail.Address) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByEmail")
	defer span.End()

	user, err := c.storer.QueryByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email.Address, err)
	}

	return user, nil
}

// Authenticate finds a user by their email and verifies their password. On
// success it returns a User representing this user.
func (c *Core) Authenticate(ctx context.Context, email mail.Address, password string) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.authenticate")
	defer span.End()

	usr, err := c.QueryByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email.Address, err)
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)); err != nil {
		return User{}, fmt.Errorf("comparehashandpassword: %w", ErrAuthenticationFailure)
	}

	return usr, nil
}

// =============================================================================

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, ErrUniqueEmail):
		return validation.NewFieldError("email", err)
	case errors.Is(err, ErrUnknownCompany):
		return validation.NewFieldError("companyId", err)
	}

	return err
}
