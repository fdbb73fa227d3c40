// Package companyapp maintains the app layer api for company accounts.
package companyapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/app/sdk/query"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/foundation/logger"
)

// NoticeCompanyUnavailable is shown when the caller's company could not be
// loaded even after re-initialization.
const NoticeCompanyUnavailable = "Company data is not available yet. Some features may be limited until it finishes loading."

type app struct {
	log       *logger.Logger
	tenantBus *tenantbus.Core
}

func newApp(log *logger.Logger, tenantBus *tenantbus.Core) *app {
	return &app{
		log:       log,
		tenantBus: tenantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nt, err := toBusNewCompany(app)
	if err != nil {
		return toAppError(err)
	}

	tnt, err := a.tenantBus.Create(ctx, nt)
	if err != nil {
		return toAppError(fmt.Errorf("create: %w", err))
	}

	return createdCompany{Company: toAppCompany(tnt)}
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCompany
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tnt, err := a.companyFromPath(ctx, r)
	if err != nil {
		return toAppError(err)
	}

	ut, err := toBusUpdateCompany(app)
	if err != nil {
		return toAppError(err)
	}

	updTnt, err := a.tenantBus.Update(ctx, tnt, ut)
	if err != nil {
		return toAppError(fmt.Errorf("update: companyID[%s]: %w", tnt.ID, err))
	}

	return toAppCompany(updTnt)
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, tenantbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	tnts, err := a.tenantBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.tenantBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppCompanies(tnts), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	tnt, err := a.companyFromPath(ctx, r)
	if err != nil {
		return toAppError(err)
	}

	return toAppCompany(tnt)
}

// current returns the caller's company. A company the caller references but
// that cannot be found is re-initialized once; if it is still missing the
// caller gets a notice instead of an error.
func (a *app) current(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	tnt, err := a.tenantBus.QueryByID(ctx, companyID)
	if err == nil {
		company := toAppCompany(tnt)
		return CurrentCompany{Company: &company}
	}

	if !errors.Is(err, tenantbus.ErrNotFound) {
		return errs.Errorf(errs.Internal, "current: companyID[%s]: %s", companyID, err)
	}

	tnt, err = a.tenantBus.InitializeCompanyData(ctx, companyID)
	if err != nil {
		a.log.Warn(ctx, "company data unavailable", "company_id", companyID, "ERROR", err)
		return CurrentCompany{Notice: NoticeCompanyUnavailable}
	}

	company := toAppCompany(tnt)
	return CurrentCompany{Company: &company}
}

func (a *app) public(ctx context.Context, r *http.Request) web.Encoder {
	customURL, err := slug.Parse(web.Param(r, "custom_url"))
	if err != nil {
		return errs.New(errs.NotFound, tenantbus.ErrNotFound)
	}

	tnt, err := a.tenantBus.QueryByCustomURL(ctx, customURL)
	if err != nil {
		return toAppError(err)
	}

	if !tnt.Status.CanOperate() {
		return errs.New(errs.NotFound, tenantbus.ErrNotFound)
	}

	return toPublicCompany(tnt)
}

// =============================================================================

func (a *app) companyFromPath(ctx context.Context, r *http.Request) (tenantbus.Tenant, error) {
	companyID, err := uuid.Parse(web.Param(r, "company_id"))
	if err != nil {
		return tenantbus.Tenant{}, errs.NewFieldErrors("company_id", err)
	}

	tnt, err := a.tenantBus.QueryByID(ctx, companyID)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("query company: %w", err)
	}

	return tnt, nil
}

func toAppError(err error) *errs.Error {
	if appErr := errs.GetError(err); appErr != nil {
		return appErr
	}

	if appErr, ok := errs.FromFieldError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, tenantbus.ErrNotFound):
		return errs.New(errs.NotFound, tenantbus.ErrNotFound)
	}

	return errs.Errorf(errs.InternalOnlyLog, "%s", err)
}
