package companydataapp

import (
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth           *auth.Auth
	CompanyDataBus *companydatabus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	company := mid.RequireCompany()
	admin := mid.Authorize(cfg.Auth, role.CompanyAdmin)
	member := mid.Authorize(cfg.Auth, role.CompanyAdmin, role.Professional)

	api := newApp(cfg.CompanyDataBus)

	app.HandlerFunc(http.MethodGet, version, "/services", api.listServices, authen, member, company)
	app.HandlerFunc(http.MethodPost, version, "/services", api.createService, authen, admin, company)

	app.HandlerFunc(http.MethodGet, version, "/professionals", api.listProfessionals, authen, member, company)
	app.HandlerFunc(http.MethodPost, version, "/professionals", api.createProfessional, authen, admin, company)

	app.HandlerFunc(http.MethodGet, version, "/appointments", api.listAppointments, authen, member, company)
	app.HandlerFunc(http.MethodPost, version, "/appointments", api.createAppointment, authen, member, company)

	app.HandlerFunc(http.MethodGet, version, "/clients", api.listClients, authen, member, company)
	app.HandlerFunc(http.MethodPost, version, "/clients", api.createClient, authen, member, company)

	app.HandlerFunc(http.MethodGet, version, "/expenses", api.listExpenses, authen, admin, company)
	app.HandlerFunc(http.MethodPost, version, "/expenses", api.createExpense, authen, admin, company)

	app.HandlerFunc(http.MethodGet, version, "/invoices", api.listInvoices, authen, admin, company)
	app.HandlerFunc(http.MethodPost, version, "/invoices", api.createInvoice, authen, admin, company)
}
