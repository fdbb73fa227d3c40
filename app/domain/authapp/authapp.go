// Package authapp maintains the app layer api for login and signup.
package authapp

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
)

type app struct {
	auth      *auth.Auth
	userBus   *userbus.Core
	tenantBus *tenantbus.Core
}

func newApp(auth *auth.Auth, userBus *userbus.Core, tenantBus *tenantbus.Core) *app {
	return &app{
		auth:      auth,
		userBus:   userBus,
		tenantBus: tenantBus,
	}
}

// newWithTx constructs a new app value with the domain apis using a store
// transaction that was created via middleware.
func (a *app) newWithTx(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	userBus, err := a.userBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	tenantBus, err := a.tenantBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &app{
		auth:      a.auth,
		userBus:   userBus,
		tenantBus: tenantBus,
	}, nil
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.NewFieldErrors("email", err)
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserDisabled) {
			return errs.New(errs.PermissionDenied, err)
		}
		return errs.New(errs.Unauthenticated, errors.New("invalid email or password"))
	}

	return a.token(usr, http.StatusOK)
}

func (a *app) signup(ctx context.Context, r *http.Request) web.Encoder {
	var req Signup
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nt, err := toBusNewTenant(req)
	if err != nil {
		return errs.GetError(err)
	}

	a, err = a.newWithTx(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	tnt, err := a.tenantBus.Create(ctx, nt)
	if err != nil {
		if appErr, ok := errs.FromFieldError(err); ok {
			return appErr
		}
		return errs.Errorf(errs.InternalOnlyLog, "signup: create company: %s", err)
	}

	usr, err := a.userBus.Create(ctx, userbus.NewUser{
		Name:      req.AdminName,
		Email:     req.AdminEmail,
		Role:      role.CompanyAdmin,
		Password:  req.Password,
		CompanyID: &tnt.ID,
	})
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.NewFieldErrors("adminEmail", userbus.ErrUniqueEmail)
		}
		if appErr, ok := errs.FromFieldError(err); ok {
			return appErr
		}
		return errs.Errorf(errs.InternalOnlyLog, "signup: create admin: %s", err)
	}

	return a.token(usr, http.StatusCreated)
}

func (a *app) token(usr userbus.User, statusCode int) web.Encoder {
	tkn, err := a.auth.GenerateToken(usr)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	var companyID string
	if usr.CompanyID != nil {
		companyID = usr.CompanyID.String()
	}

	return Token{
		Token:              tkn,
		UserID:             usr.ID.String(),
		CompanyID:          companyID,
		Role:               usr.Role.String(),
		MustChangePassword: usr.MustChangePassword,
		status:             statusCode,
	}
}

func toBusNewTenant(req Signup) (tenantbus.NewTenant, error) {
	var fieldErrors errs.FieldErrors

	phn, err := phone.ParseNull(req.CompanyPhone)
	if err != nil {
		fieldErrors.Add("companyPhone", err)
	}

	customURL, err := slug.ParseNull(req.CustomURL)
	if err != nil {
		fieldErrors.Add("customUrl", err)
	}

	if fieldErrors != nil {
		return tenantbus.NewTenant{}, fieldErrors.ToError()
	}

	trialEnds := time.Now().Add(tenantbus.DefaultTrialPeriod)

	return tenantbus.NewTenant{
		Name:        req.CompanyName,
		Email:       req.CompanyEmail,
		Phone:       phn,
		Status:      status.Trial,
		TrialEndsAt: &trialEnds,
		CustomURL:   customURL,
		WhatsApp:    phn,
	}, nil
}
