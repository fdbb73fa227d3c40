package mid_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/foundation/keystore"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okResp struct{}

func (okResp) Encode() ([]byte, string, error) {
	return []byte(`{}`), "application/json", nil
}

func okHandler(ctx context.Context, r *http.Request) web.Encoder {
	return okResp{}
}

func newLog() *logger.Logger {
	return logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
}

func newAuth(t *testing.T) *auth.Auth {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ks := keystore.New()
	require.NoError(t, ks.Add("kid", pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(pk),
	})))

	return auth.New(auth.Config{
		Log:       newLog(),
		KeyLookup: ks,
		Issuer:    "agenda",
		ActiveKID: "kid",
	})
}

func requestWithToken(t *testing.T, a *auth.Auth, usr userbus.User) *http.Request {
	t.Helper()

	token, err := a.GenerateToken(usr)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/v1/company", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func chain(h web.HandlerFunc, mw ...web.MidFunc) web.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func codeOf(t *testing.T, resp web.Encoder) errs.ErrCode {
	t.Helper()

	err, ok := resp.(error)
	require.True(t, ok, "expected an error response, got %T", resp)

	appErr := errs.GetError(err)
	require.NotNil(t, appErr)
	return appErr.Code
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	h := chain(okHandler, mid.Authenticate(newAuth(t)))

	resp := h(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, errs.Unauthenticated, codeOf(t, resp))
}

func TestAuthenticate_SetsContext(t *testing.T) {
	a := newAuth(t)
	companyID := uuid.New()
	usr := userbus.User{ID: uuid.New(), Role: role.CompanyAdmin, CompanyID: &companyID}

	var gotUser, gotCompany uuid.UUID
	h := chain(func(ctx context.Context, r *http.Request) web.Encoder {
		gotUser, _ = mid.GetUserID(ctx)
		gotCompany, _ = mid.GetCompanyID(ctx)
		return okResp{}
	}, mid.Authenticate(a))

	resp := h(context.Background(), requestWithToken(t, a, usr))
	assert.IsType(t, okResp{}, resp)
	assert.Equal(t, usr.ID, gotUser)
	assert.Equal(t, companyID, gotCompany)
}

func TestAuthorize(t *testing.T) {
	a := newAuth(t)
	usr := userbus.User{ID: uuid.New(), Role: role.Professional}

	allowed := chain(okHandler, mid.Authenticate(a), mid.Authorize(a, role.Professional, role.CompanyAdmin))
	assert.IsType(t, okResp{}, allowed(context.Background(), requestWithToken(t, a, usr)))

	denied := chain(okHandler, mid.Authenticate(a), mid.Authorize(a, role.SuperAdmin))
	assert.Equal(t, errs.PermissionDenied, codeOf(t, denied(context.Background(), requestWithToken(t, a, usr))))
}

func TestAuthorize_WithoutClaims(t *testing.T) {
	h := chain(okHandler, mid.Authorize(newAuth(t), role.SuperAdmin))

	resp := h(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, errs.Unauthenticated, codeOf(t, resp))
}

func TestRequireCompany(t *testing.T) {
	a := newAuth(t)
	h := chain(okHandler, mid.Authenticate(a), mid.RequireCompany())

	superAdmin := userbus.User{ID: uuid.New(), Role: role.SuperAdmin}
	assert.Equal(t, errs.FailedPrecondition, codeOf(t, h(context.Background(), requestWithToken(t, a, superAdmin))))

	companyID := uuid.New()
	admin := userbus.User{ID: uuid.New(), Role: role.CompanyAdmin, CompanyID: &companyID}
	assert.IsType(t, okResp{}, h(context.Background(), requestWithToken(t, a, admin)))
}

func TestErrors_MasksUnknownErrors(t *testing.T) {
	h := chain(func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.New(errs.Internal, errors.New("pq: connection refused"))
	}, mid.Errors(newLog()))

	resp := h(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, errs.Internal, codeOf(t, resp))

	h = chain(func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Errorf(errs.InternalOnlyLog, "secret detail")
	}, mid.Errors(newLog()))

	resp = h(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	appErr := errs.GetError(resp.(error))
	assert.Equal(t, errs.Internal, appErr.Code)
	assert.NotContains(t, appErr.Message, "secret")
}

func TestPanics(t *testing.T) {
	h := chain(func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	}, mid.Errors(newLog()), mid.Panics())

	var resp web.Encoder
	require.NotPanics(t, func() {
		resp = h(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, errs.Internal, codeOf(t, resp))
}

func TestBeginCommitRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	bgn := sqldb.NewBeginner(sqlx.NewDb(db, "pgx"))

	t.Run("commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		h := chain(func(ctx context.Context, r *http.Request) web.Encoder {
			_, err := mid.GetTran(ctx)
			require.NoError(t, err)
			return okResp{}
		}, mid.BeginCommitRollback(newLog(), bgn))

		assert.IsType(t, okResp{}, h(context.Background(), httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		h := chain(func(ctx context.Context, r *http.Request) web.Encoder {
			return errs.Errorf(errs.InvalidArgument, "bad")
		}, mid.BeginCommitRollback(newLog(), bgn))

		assert.Equal(t, errs.InvalidArgument, codeOf(t, h(context.Background(), httptest.NewRequest(http.MethodPost, "/", nil))))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
