package landingapp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/landingbus"
	"github.com/jcpaschoal/agenda/business/domain/landingbus/stores/landingmem"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *app {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return newApp(landingbus.NewCore(log, landingmem.NewStore()))
}

func TestQuery_Empty(t *testing.T) {
	api := newTestApp()

	resp := api.query(context.Background(), httptest.NewRequest(http.MethodGet, "/v1/landing", nil))

	landing, ok := resp.(Landing)
	require.True(t, ok, "unexpected response %T", resp)
	assert.Empty(t, landing)
}

func TestUpdateThenSection(t *testing.T) {
	api := newTestApp()
	ctx := context.Background()

	body := `{"heroSection":{"title":"Agenda"},"footerSection":{"text":"2026"}}`
	resp := api.update(ctx, httptest.NewRequest(http.MethodPut, "/v1/landing", strings.NewReader(body)))

	landing, ok := resp.(Landing)
	require.True(t, ok, "unexpected response %T", resp)
	assert.JSONEq(t, `{"title":"Agenda"}`, string(landing["heroSection"]))

	r := httptest.NewRequest(http.MethodPut, "/v1/landing/heroSection", strings.NewReader(`{"title":"New"}`))
	r.SetPathValue("section", "heroSection")

	resp = api.updateSection(ctx, r)

	landing, ok = resp.(Landing)
	require.True(t, ok, "unexpected response %T", resp)
	assert.JSONEq(t, `{"title":"New"}`, string(landing["heroSection"]))
	assert.JSONEq(t, `{"text":"2026"}`, string(landing["footerSection"]))
}

func TestUpdate_UnknownSection(t *testing.T) {
	api := newTestApp()

	body := `{"bogusSection":{}}`
	resp := api.update(context.Background(), httptest.NewRequest(http.MethodPut, "/v1/landing", strings.NewReader(body)))

	appErr, ok := resp.(*errs.Error)
	require.True(t, ok, "unexpected response %T", resp)
	assert.Equal(t, errs.InvalidArgument, appErr.Code)
}

func TestUpdateSection_InvalidJSON(t *testing.T) {
	api := newTestApp()

	r := httptest.NewRequest(http.MethodPut, "/v1/landing/ctaSection", strings.NewReader(`{not json`))
	r.SetPathValue("section", "ctaSection")

	resp := api.updateSection(context.Background(), r)

	appErr, ok := resp.(*errs.Error)
	require.True(t, ok, "unexpected response %T", resp)
	assert.Equal(t, errs.InvalidArgument, appErr.Code)
}
