package mid

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/jcpaschoal/agenda/app/sdk/metrics"
	"github.com/jcpaschoal/agenda/business/sdk/web"
)

// Metrics updates program counters.
func Metrics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)

			metrics.AddRequests(ctx)
			metrics.AddGoroutines(ctx)

			code := http.StatusOK
			if err := checkIsError(resp); err != nil {
				metrics.AddErrors(ctx)
				code = statusOf(err)
			}

			since := time.Since(web.GetValues(ctx).Now)
			metrics.ObserveLatency(ctx, strconv.Itoa(code), since.Seconds())

			return resp
		}

		return h
	}

	return m
}
