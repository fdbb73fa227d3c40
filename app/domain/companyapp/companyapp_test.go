package companyapp

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/app/sdk/auth"
	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/app/sdk/mid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/web"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/phone"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/jcpaschoal/agenda/foundation/keystore"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]tenantbus.Tenant
}

func newMemStore(tenants ...tenantbus.Tenant) *memStore {
	s := memStore{tenants: make(map[uuid.UUID]tenantbus.Tenant)}
	for _, t := range tenants {
		s.tenants[t.ID] = t
	}
	return &s
}

func (s *memStore) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *memStore) Create(ctx context.Context, t tenantbus.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
	return nil
}

func (s *memStore) Update(ctx context.Context, t tenantbus.Tenant) error {
	return s.Create(ctx, t)
}

func (s *memStore) Query(ctx context.Context, filter tenantbus.QueryFilter, orderBy order.By, page page.Page) ([]tenantbus.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []tenantbus.Tenant
	for _, t := range s.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (s *memStore) Count(ctx context.Context, filter tenantbus.QueryFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tenants), nil
}

func (s *memStore) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func (s *memStore) QueryByCustomURL(ctx context.Context, customURL slug.Slug) (tenantbus.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tenants {
		if t.CustomURL.String() == customURL.String() {
			return t, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

// lateStore only finds a tenant once it has been reloaded.
type lateStore struct {
	*memStore
	pending tenantbus.Tenant
}

func (s *lateStore) Reload(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	if s.pending.ID != tenantID {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	s.memStore.Create(ctx, s.pending)
	return s.pending, nil
}

// =============================================================================

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

func tenant(sts status.Status) tenantbus.Tenant {
	return tenantbus.Tenant{
		ID:        uuid.New(),
		Name:      name.MustParse("Studio Zen"),
		Plan:      "basic",
		Status:    sts,
		CustomURL: slug.MustParseNull("studio-zen"),
		WhatsApp:  phone.MustParseNull("+5511987654321"),
	}
}

func callCurrent(t *testing.T, storer tenantbus.Storer, companyID uuid.UUID) web.Encoder {
	t.Helper()

	ath := newAuth(t)

	token, err := ath.GenerateToken(userbus.User{
		ID:        uuid.New(),
		Email:     mail.Address{Address: "ana@zen.com"},
		Role:      role.CompanyAdmin,
		CompanyID: &companyID,
		Enabled:   true,
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/v1/company", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	api := newApp(newLog(), tenantbus.NewCore(newLog(), storer))
	h := mid.Authenticate(ath)(api.current)

	return h(context.Background(), r)
}

func TestCurrent(t *testing.T) {
	tnt := tenant(status.Active)

	resp := callCurrent(t, newMemStore(tnt), tnt.ID)

	cur, ok := resp.(CurrentCompany)
	require.True(t, ok, "unexpected response %T", resp)
	require.NotNil(t, cur.Company)
	assert.Equal(t, tnt.ID.String(), cur.Company.ID)
	assert.Empty(t, cur.Notice)
}

func TestCurrent_MissingCompanyGivesNotice(t *testing.T) {
	resp := callCurrent(t, newMemStore(), uuid.New())

	cur, ok := resp.(CurrentCompany)
	require.True(t, ok, "unexpected response %T", resp)
	assert.Nil(t, cur.Company)
	assert.Equal(t, NoticeCompanyUnavailable, cur.Notice)
}

func TestCurrent_ReinitializesCompany(t *testing.T) {
	tnt := tenant(status.Trial)
	storer := &lateStore{memStore: newMemStore(), pending: tnt}

	resp := callCurrent(t, storer, tnt.ID)

	cur, ok := resp.(CurrentCompany)
	require.True(t, ok, "unexpected response %T", resp)
	require.NotNil(t, cur.Company)
	assert.Equal(t, tnt.ID.String(), cur.Company.ID)
	assert.Empty(t, cur.Notice)
}

func TestPublic(t *testing.T) {
	tnt := tenant(status.Active)
	api := newApp(newLog(), tenantbus.NewCore(newLog(), newMemStore(tnt)))

	r := httptest.NewRequest(http.MethodGet, "/v1/public/companies/studio-zen", nil)
	r.SetPathValue("custom_url", "studio-zen")

	resp := api.public(context.Background(), r)

	pub, ok := resp.(PublicCompany)
	require.True(t, ok, "unexpected response %T", resp)
	assert.Equal(t, "Studio Zen", pub.Name)
	assert.Equal(t, "https://wa.me/5511987654321", pub.WhatsAppLink)
}

func TestPublic_SuspendedIsHidden(t *testing.T) {
	tnt := tenant(status.Suspended)
	api := newApp(newLog(), tenantbus.NewCore(newLog(), newMemStore(tnt)))

	r := httptest.NewRequest(http.MethodGet, "/v1/public/companies/studio-zen", nil)
	r.SetPathValue("custom_url", "studio-zen")

	resp := api.public(context.Background(), r)

	appErr, ok := resp.(*errs.Error)
	require.True(t, ok, "unexpected response %T", resp)
	assert.Equal(t, errs.NotFound, appErr.Code)
}

func TestToBusUpdateCompany(t *testing.T) {
	sts := "active"
	revenue := "99.90"
	bad := "not a phone"

	ut, err := toBusUpdateCompany(UpdateCompany{Status: &sts, MonthlyRevenue: &revenue})
	require.NoError(t, err)
	require.NotNil(t, ut.Status)
	assert.Equal(t, status.Active, *ut.Status)
	assert.Equal(t, "99.9", ut.MonthlyRevenue.String())
	assert.Nil(t, ut.Name)

	_, err = toBusUpdateCompany(UpdateCompany{Phone: &bad})
	require.Error(t, err)
	assert.Equal(t, errs.InvalidArgument, errs.GetError(err).Code)
}
