// Package landingapp maintains the app layer api for the landing page
// configuration.
package landingapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/landingbus"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/section"
)

type app struct {
	landingBus *landingbus.Core
}

func newApp(landingBus *landingbus.Core) *app {
	return &app{
		landingBus: landingBus,
	}
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	return toAppLanding(a.landingBus.LoadAll(ctx))
}

// update replaces the whole configuration. Storage failures are not reported,
// so the response is read back from the store.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateLanding
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	sections, err := toBusSections(app)
	if err != nil {
		return errs.GetError(err)
	}

	a.landingBus.SaveAll(ctx, sections)

	return toAppLanding(a.landingBus.LoadAll(ctx))
}

func (a *app) updateSection(ctx context.Context, r *http.Request) web.Encoder {
	key, err := section.Parse(web.Param(r, "section"))
	if err != nil {
		return errs.NewFieldErrors("section", err)
	}

	var app UpdateSection
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	a.landingBus.SaveOne(ctx, key, app.Data)

	return toAppLanding(a.landingBus.LoadAll(ctx))
}
