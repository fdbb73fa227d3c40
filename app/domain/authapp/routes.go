package authapp

import (
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *logger.Logger
	Auth      *auth.Auth
	DB        sqldb.Beginner
	UserBus   *userbus.Core
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.Auth, cfg.UserBus, cfg.TenantBus)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodPost, version, "/auth/signup", api.signup, transaction)
}
