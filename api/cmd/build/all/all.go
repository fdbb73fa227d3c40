// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/agenda/app/domain/authapp"
	"github.com/jcpaschoal/agenda/app/domain/companyapp"
	"github.com/jcpaschoal/agenda/app/domain/companydataapp"
	"github.com/jcpaschoal/agenda/app/domain/landingapp"
	"github.com/jcpaschoal/agenda/app/domain/userapp"
	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/mux"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus"
	"github.com/jcpaschoal/agenda/business/domain/companydatabus/stores/companydatadb"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus/stores/tenantcache"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/domain/userbus/stores/usercache"
	"github.com/jcpaschoal/agenda/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {

	// Construct the business domain packages we need here so we are using the
	// sames instances for the different set of domain apis.
	tenantBus := tenantbus.NewCore(cfg.Log, tenantcache.NewStore(cfg.Log, tenantdb.NewStore(cfg.Log, cfg.DB), cfg.CacheConfig.TenantTTL))
	userBus := userbus.NewCore(cfg.Log, usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), cfg.CacheConfig.UserTTL))
	companyDataBus := companydatabus.NewCore(cfg.Log, tenantBus, companydatadb.NewStore(cfg.Log, cfg.DB))

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
		ActiveKID: cfg.AuthConfig.ActiveKID,
		TokenTTL:  cfg.AuthConfig.TokenTTL,
	})

	authapp.Routes(app, authapp.Config{
		Log:       cfg.Log,
		Auth:      authClient,
		DB:        sqldb.NewBeginner(cfg.DB),
		UserBus:   userBus,
		TenantBus: tenantBus,
	})

	userapp.Routes(app, userapp.Config{
		Auth:           authClient,
		UserBus:        userBus,
		CompanyDataBus: companyDataBus,
	})

	companyapp.Routes(app, companyapp.Config{
		Log:       cfg.Log,
		Auth:      authClient,
		TenantBus: tenantBus,
	})

	companydataapp.Routes(app, companydataapp.Config{
		Auth:           authClient,
		CompanyDataBus: companyDataBus,
	})

	landingapp.Routes(app, landingapp.Config{
		Auth:       authClient,
		LandingBus: cfg.BusConfig.LandingBus,
	})
}
