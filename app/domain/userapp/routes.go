package userapp

import (
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth           *auth.Auth
	UserBus        *userbus.Core
	CompanyDataBus *companydatabus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	admins := mid.Authorize(cfg.Auth, role.SuperAdmin, role.CompanyAdmin)
	anyone := mid.Authorize(cfg.Auth, role.SuperAdmin, role.CompanyAdmin, role.Professional)

	api := newApp(cfg.UserBus, cfg.CompanyDataBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, admins)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, admins)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}/professional", api.professional, authen, anyone)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, admins)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}/role", api.updateRole, authen, admins)
	app.HandlerFunc(http.MethodDelete, version, "/users/{user_id}", api.delete, authen, admins)
	app.HandlerFunc(http.MethodGet, version, "/me", api.me, authen, anyone)
	app.HandlerFunc(http.MethodPut, version, "/me", api.update, authen, anyone)
}
