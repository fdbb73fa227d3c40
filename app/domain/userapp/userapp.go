// Package userapp maintains the app layer api for the user domain.
package userapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/app/sdk/query"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
)

type app struct {
	userBus        *userbus.Core
	companyDataBus *companydatabus.Core
}

func newApp(userBus *userbus.Core, companyDataBus *companydatabus.Core) *app {
	return &app{
		userBus:        userBus,
		companyDataBus: companyDataBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(app)
	if err != nil {
		return toAppError(err)
	}

	// Company admins can only provision users inside their own company.
	if !isSuperAdmin(ctx) {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return errs.New(errs.PermissionDenied, err)
		}

		if nu.Role.Equal(role.SuperAdmin) {
			return errs.Errorf(errs.PermissionDenied, "only a super admin can create a super admin")
		}

		nu.CompanyID = &companyID
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		return toAppError(fmt.Errorf("create: %w", err))
	}

	return createdUser{User: toAppUser(usr)}
}

func (a *app) me(ctx context.Context, r *http.Request) web.Encoder {
	usr, err := a.currentUser(ctx)
	if err != nil {
		return toAppError(err)
	}

	return toAppUser(usr)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.currentUser(ctx)
	if err != nil {
		return toAppError(err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, toBusUpdateUser(app))
	if err != nil {
		return toAppError(fmt.Errorf("update: userID[%s]: %w", usr.ID, err))
	}

	return toAppUser(updUsr)
}

func (a *app) updateRole(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUserRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.scopedUser(ctx, r)
	if err != nil {
		return toAppError(err)
	}

	uu, err := toBusUpdateUserRole(app)
	if err != nil {
		return toAppError(err)
	}

	if uu.Role.Equal(role.SuperAdmin) && !isSuperAdmin(ctx) {
		return errs.Errorf(errs.PermissionDenied, "only a super admin can grant super admin")
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		return toAppError(fmt.Errorf("updaterole: userID[%s]: %w", usr.ID, err))
	}

	return toAppUser(updUsr)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	usr, err := a.scopedUser(ctx, r)
	if err != nil {
		return toAppError(err)
	}

	if callerID, _ := mid.GetUserID(ctx); callerID == usr.ID {
		return errs.Errorf(errs.FailedPrecondition, "a user cannot delete their own account")
	}

	if err := a.userBus.Delete(ctx, usr); err != nil {
		return toAppError(fmt.Errorf("delete: userID[%s]: %w", usr.ID, err))
	}

	return nil
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		return toAppError(err)
	}

	if !isSuperAdmin(ctx) {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil {
			return errs.New(errs.PermissionDenied, err)
		}
		filter.CompanyID = &companyID
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, err := a.scopedUser(ctx, r)
	if err != nil {
		return toAppError(err)
	}

	return toAppUser(usr)
}

func (a *app) professional(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return errs.NewFieldErrors("user_id", err)
	}

	prof, err := a.companyDataBus.QueryProfessionalByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, companydatabus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "professional: userID[%s]: %s", userID, err)
	}

	if !isSuperAdmin(ctx) {
		companyID, err := mid.GetCompanyID(ctx)
		if err != nil || companyID != prof.TenantID {
			return errs.New(errs.NotFound, companydatabus.ErrNotFound)
		}
	}

	return toAppProfessional(prof)
}

// =============================================================================

func (a *app) currentUser(ctx context.Context) (userbus.User, error) {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return userbus.User{}, errs.New(errs.Unauthenticated, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return userbus.User{}, fmt.Errorf("current user: %w", err)
	}

	return usr, nil
}

// scopedUser loads the user named in the path. Company admins only see users
// of their own company; anything else looks like a missing user.
func (a *app) scopedUser(ctx context.Context, r *http.Request) (userbus.User, error) {
	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return userbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return userbus.User{}, fmt.Errorf("query user: %w", err)
	}

	if isSuperAdmin(ctx) {
		return usr, nil
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil || usr.CompanyID == nil || *usr.CompanyID != companyID {
		return userbus.User{}, errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	return usr, nil
}

func isSuperAdmin(ctx context.Context) bool {
	return mid.GetClaims(ctx).Role == role.SuperAdmin.String()
}

func toAppError(err error) *errs.Error {
	if appErr := errs.GetError(err); appErr != nil {
		return appErr
	}

	if appErr, ok := errs.FromFieldError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, userbus.ErrNotFound):
		return errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	return errs.Errorf(errs.InternalOnlyLog, "%s", err)
}
