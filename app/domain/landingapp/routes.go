package landingapp

import (
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/landingbus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	LandingBus *landingbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	superAdmin := mid.Authorize(cfg.Auth, role.SuperAdmin)

	api := newApp(cfg.LandingBus)

	app.HandlerFunc(http.MethodGet, version, "/landing", api.query)
	app.HandlerFunc(http.MethodPut, version, "/landing", api.update, authen, superAdmin)
	app.HandlerFunc(http.MethodPut, version, "/landing/{section}", api.updateSection, authen, superAdmin)
}
