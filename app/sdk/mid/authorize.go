package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
)

// Authorize validates that the authenticated user holds one of the roles.
// It must run after Authenticate.
func Authorize(ath *auth.Auth, roles ...role.Role) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)
			if claims.Subject == "" {
				return errs.Errorf(errs.Unauthenticated, "you are not authorized for that action, no claims")
			}

			if err := ath.Authorize(ctx, claims, roles...); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// RequireCompany rejects callers that are not scoped to a company.
func RequireCompany() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			if _, err := GetCompanyID(ctx); err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
