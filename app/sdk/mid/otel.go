package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Otel starts a span for the handler execution.
func Otel() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx, span := otel.AddSpan(ctx, "app.handler",
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.Pattern),
			)
			defer span.End()

			return next(ctx, r)
		}

		return h
	}

	return m
}
