// Package companydataapp maintains the app layer api for the records a
// company owns: services, professionals, appointments, clients, expenses and
// invoices. Every call is scoped to the caller's company.
package companydataapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
)

type app struct {
	companyDataBus *companydatabus.Core
}

func newApp(companyDataBus *companydatabus.Core) *app {
	return &app{
		companyDataBus: companyDataBus,
	}
}

func (a *app) createService(ctx context.Context, r *http.Request) web.Encoder {
	var app NewService
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	ns, err := toBusNewService(companyID, app)
	if err != nil {
		return toAppError(err)
	}

	svc, err := a.companyDataBus.CreateService(ctx, ns)
	if err != nil {
		return toAppError(fmt.Errorf("createservice: %w", err))
	}

	return created[Service]{toAppService(svc)}
}

func (a *app) listServices(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	svcs, err := a.companyDataBus.ListServicesForTenant(ctx, companyID)
	if err != nil {
		return toAppError(fmt.Errorf("listservices: %w", err))
	}

	return toList(svcs, toAppService)
}

func (a *app) createProfessional(ctx context.Context, r *http.Request) web.Encoder {
	var app NewProfessional
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	np, err := toBusNewProfessional(companyID, app)
	if err != nil {
		return toAppError(err)
	}

	prof, err := a.companyDataBus.CreateProfessional(ctx, np)
	if err != nil {
		return toAppError(fmt.Errorf("createprofessional: %w", err))
	}

	return created[Professional]{toAppProfessional(prof)}
}

func (a *app) listProfessionals(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	profs, err := a.companyDataBus.ListProfessionalsForTenant(ctx, companyID)
	if err != nil {
		return toAppError(fmt.Errorf("listprofessionals: %w", err))
	}

	return toList(profs, toAppProfessional)
}

func (a *app) createAppointment(ctx context.Context, r *http.Request) web.Encoder {
	var app NewAppointment
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	na, err := toBusNewAppointment(companyID, app)
	if err != nil {
		return toAppError(err)
	}

	apt, err := a.companyDataBus.CreateAppointment(ctx, na)
	if err != nil {
		return toAppError(fmt.Errorf("createappointment: %w", err))
	}

	return created[Appointment]{toAppAppointment(apt)}
}

func (a *app) listAppointments(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	apts, err := a.companyDataBus.ListAppointmentsForTenant(ctx, companyID)
	if err != nil {
		return toAppError(fmt.Errorf("listappointments: %w", err))
	}

	return toList(apts, toAppAppointment)
}

func (a *app) createClient(ctx context.Context, r *http.Request) web.Encoder {
	var app NewClient
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	nc, err := toBusNewClient(companyID, app)
	if err != nil {
		return toAppError(err)
	}

	clt, err := a.companyDataBus.CreateClient(ctx, nc)
	if err != nil {
		return toAppError(fmt.Errorf("createclient: %w", err))
	}

	return created[Client]{toAppClient(clt)}
}

func (a *app) listClients(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	clts, err := a.companyDataBus.ListClientsForTenant(ctx, companyID)
	if err != nil {
		return toAppError(fmt.Errorf("listclients: %w", err))
	}

	return toList(clts, toAppClient)
}

func (a *app) createExpense(ctx context.Context, r *http.Request) web.Encoder {
	var app NewExpense
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	ne, err := toBusNewExpense(companyID, app)
	if err != nil {
		return toAppError(err)
	}

	exp, err := a.companyDataBus.CreateExpense(ctx, ne)
	if err != nil {
		return toAppError(fmt.Errorf("createexpense: %w", err))
	}

	return created[Expense]{toAppExpense(exp)}
}

func (a *app) listExpenses(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	exps, err := a.companyDataBus.ListExpensesForTenant(ctx, companyID)
	if err != nil {
		return toAppError(fmt.Errorf("listexpenses: %w", err))
	}

	return toList(exps, toAppExpense)
}

func (a *app) createInvoice(ctx context.Context, r *http.Request) web.Encoder {
	var app NewInvoice
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	ni, err := toBusNewInvoice(companyID, app)
	if err != nil {
		return toAppError(err)
	}

	inv, err := a.companyDataBus.CreateInvoice(ctx, ni)
	if err != nil {
		return toAppError(fmt.Errorf("createinvoice: %w", err))
	}

	return created[Invoice]{toAppInvoice(inv)}
}

func (a *app) listInvoices(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.New(errs.FailedPrecondition, err)
	}

	invs, err := a.companyDataBus.ListInvoicesForTenant(ctx, companyID)
	if err != nil {
		return toAppError(fmt.Errorf("listinvoices: %w", err))
	}

	return toList(invs, toAppInvoice)
}

// =============================================================================

// toAppError maps a company data failure. A company that no longer exists is
// a precondition failure for the caller, not a validation error.
func toAppError(err error) *errs.Error {
	if appErr := errs.GetError(err); appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, companydatabus.ErrUnknownTenant):
		return errs.New(errs.FailedPrecondition, companydatabus.ErrUnknownTenant)
	case errors.Is(err, companydatabus.ErrUnknownRelated):
		if appErr, ok := errs.FromFieldError(err); ok {
			return appErr
		}
		return errs.New(errs.InvalidArgument, companydatabus.ErrUnknownRelated)
	case errors.Is(err, companydatabus.ErrNotFound):
		return errs.New(errs.NotFound, companydatabus.ErrNotFound)
	}

	if appErr, ok := errs.FromFieldError(err); ok {
		return appErr
	}

	return errs.Errorf(errs.InternalOnlyLog, "%s", err)
}
