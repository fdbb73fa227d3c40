package tenantbus_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]tenantbus.Tenant
	reloads int
}

func newMemStore() *memStore {
	return &memStore{tenants: make(map[uuid.UUID]tenantbus.Tenant)}
}

func (m *memStore) NewWithTx(sqldb.CommitRollbacker) (tenantbus.Storer, error) { return m, nil }

func (m *memStore) Create(_ context.Context, t tenantbus.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.CustomURL.Valid() {
		for _, other := range m.tenants {
			if other.CustomURL.Equal(t.CustomURL) {
				return tenantbus.ErrUniqueCustomURL
			}
		}
	}

	m.tenants[t.ID] = t
	return nil
}

func (m *memStore) Update(_ context.Context, t tenantbus.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tenants[t.ID] = t
	return nil
}

func (m *memStore) Query(context.Context, tenantbus.QueryFilter, order.By, page.Page) ([]tenantbus.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]tenantbus.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) Count(context.Context, tenantbus.QueryFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.tenants), nil
}

func (m *memStore) QueryByID(_ context.Context, id uuid.UUID) (tenantbus.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tenants[id]
	if !ok {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func (m *memStore) QueryByCustomURL(_ context.Context, s slug.Slug) (tenantbus.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tenants {
		if t.CustomURL.Valid() && t.CustomURL.String() == s.String() {
			return t, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

type reloadingStore struct {
	*memStore
}

func (r reloadingStore) Reload(ctx context.Context, id uuid.UUID) (tenantbus.Tenant, error) {
	r.reloads++
	return r.QueryByID(ctx, id)
}

func newCore(storer tenantbus.Storer) *tenantbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return tenantbus.NewCore(log, storer)
}

// =============================================================================

func TestCreate_AppliesDefaults(t *testing.T) {
	core := newCore(newMemStore())

	tnt, err := core.Create(context.Background(), tenantbus.NewTenant{Name: "Barbearia Central"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tnt.ID)
	assert.Equal(t, "basic", tnt.Plan)
	assert.Equal(t, status.Trial, tnt.Status)
	assert.Equal(t, 1, tnt.EmployeeCount)
	assert.True(t, tnt.MonthlyRevenue.Equal(decimal.Zero))
	assert.Equal(t, 0, tnt.OverdueDays)
	assert.Nil(t, tnt.Email)
	assert.False(t, tnt.CustomURL.Valid())
}

func TestCreate_ValidationErrors(t *testing.T) {
	core := newCore(newMemStore())

	tests := []struct {
		name  string
		nt    tenantbus.NewTenant
		field string
	}{
		{"missing name", tenantbus.NewTenant{Name: "  "}, "name"},
		{"malformed email", tenantbus.NewTenant{Name: "Studio", Email: "not-an-email"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Create(context.Background(), tt.nt)
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalid)

			field, ok := validation.Field(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestCreate_NameErrorsKeepCause(t *testing.T) {
	core := newCore(newMemStore())

	_, err := core.Create(context.Background(), tenantbus.NewTenant{Name: strings.Repeat("a", 121)})
	assert.EqualError(t, err, "name: exceeds 120 characters")

	_, err = core.Create(context.Background(), tenantbus.NewTenant{Name: ""})
	assert.ErrorIs(t, err, name.ErrEmpty)
}

func TestCreate_DuplicateCustomURL(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	first, err := core.Create(ctx, tenantbus.NewTenant{
		Name:      "Salao da Ana",
		Email:     "ana@example.com",
		CustomURL: slug.MustParseNull("x-salon"),
	})
	require.NoError(t, err)

	_, err = core.Create(ctx, tenantbus.NewTenant{
		Name:      "Outro Salao",
		CustomURL: slug.MustParseNull("x-salon"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tenantbus.ErrUniqueCustomURL))

	field, ok := validation.Field(err)
	require.True(t, ok)
	assert.Equal(t, "customUrl", field)

	got, err := core.QueryByCustomURL(ctx, slug.MustParse("x-salon"))
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestUpdate_BillingFields(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	tnt, err := core.Create(ctx, tenantbus.NewTenant{Name: "Clinica Sorriso"})
	require.NoError(t, err)

	suspended := status.Suspended
	overdue := 12
	revenue := decimal.RequireFromString("1999.90")

	upd, err := core.Update(ctx, tnt, tenantbus.UpdateTenant{
		Status:         &suspended,
		OverdueDays:    &overdue,
		MonthlyRevenue: &revenue,
	})
	require.NoError(t, err)

	got, err := core.QueryByID(ctx, tnt.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, got)
	assert.Equal(t, status.Suspended, got.Status)
	assert.Equal(t, 12, got.OverdueDays)
	assert.Equal(t, "1999.9", got.MonthlyRevenue.String())
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	core := newCore(newMemStore())

	tnt, err := core.Create(ctx, tenantbus.NewTenant{Name: "Pet Shop"})
	require.NoError(t, err)

	ok, err := core.Exists(ctx, tnt.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = core.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitializeCompanyData(t *testing.T) {
	ctx := context.Background()
	store := reloadingStore{newMemStore()}
	core := newCore(store)

	tnt, err := core.Create(ctx, tenantbus.NewTenant{Name: "Estetica Bella"})
	require.NoError(t, err)

	got, err := core.InitializeCompanyData(ctx, tnt.ID)
	require.NoError(t, err)
	assert.Equal(t, tnt.ID, got.ID)
	assert.Equal(t, 1, store.reloads)

	_, err = core.InitializeCompanyData(ctx, uuid.New())
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)
}
