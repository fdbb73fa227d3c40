package companyapp

import (
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *logger.Logger
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	superAdmin := mid.Authorize(cfg.Auth, role.SuperAdmin)
	member := mid.Authorize(cfg.Auth, role.CompanyAdmin, role.Professional)

	api := newApp(cfg.Log, cfg.TenantBus)

	app.HandlerFunc(http.MethodGet, version, "/companies", api.query, authen, superAdmin)
	app.HandlerFunc(http.MethodPost, version, "/companies", api.create, authen, superAdmin)
	app.HandlerFunc(http.MethodGet, version, "/companies/{company_id}", api.queryByID, authen, superAdmin)
	app.HandlerFunc(http.MethodPut, version, "/companies/{company_id}", api.update, authen, superAdmin)
	app.HandlerFunc(http.MethodGet, version, "/company", api.current, authen, member, mid.RequireCompany())
	app.HandlerFunc(http.MethodGet, version, "/public/companies/{custom_url}", api.public)
}
