package tenantcache_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus/stores/tenantcache"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	tenants map[uuid.UUID]tenantbus.Tenant
	reads   int
}

func (c *countingStore) NewWithTx(sqldb.CommitRollbacker) (tenantbus.Storer, error) { return c, nil }

func (c *countingStore) Create(_ context.Context, t tenantbus.Tenant) error {
	c.tenants[t.ID] = t
	return nil
}

func (c *countingStore) Update(_ context.Context, t tenantbus.Tenant) error {
	c.tenants[t.ID] = t
	return nil
}

func (c *countingStore) Query(context.Context, tenantbus.QueryFilter, order.By, page.Page) ([]tenantbus.Tenant, error) {
	return nil, nil
}

func (c *countingStore) Count(context.Context, tenantbus.QueryFilter) (int, error) {
	return len(c.tenants), nil
}

func (c *countingStore) QueryByID(_ context.Context, id uuid.UUID) (tenantbus.Tenant, error) {
	c.reads++
	t, ok := c.tenants[id]
	if !ok {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func (c *countingStore) QueryByCustomURL(_ context.Context, s slug.Slug) (tenantbus.Tenant, error) {
	c.reads++
	for _, t := range c.tenants {
		if t.CustomURL.String() == s.String() {
			return t, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

func newStore() (*tenantcache.Store, *countingStore) {
	db := &countingStore{tenants: make(map[uuid.UUID]tenantbus.Tenant)}
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return tenantcache.NewStore(log, db, time.Minute), db
}

func TestQueryByID_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	store, db := newStore()

	tnt := tenantbus.Tenant{ID: uuid.New(), Name: name.MustParse("Studio"), CustomURL: slug.MustParseNull("studio")}
	require.NoError(t, store.Create(ctx, tnt))

	_, err := store.QueryByID(ctx, tnt.ID)
	require.NoError(t, err)
	_, err = store.QueryByCustomURL(ctx, slug.MustParse("studio"))
	require.NoError(t, err)

	assert.Equal(t, 0, db.reads)
}

func TestUpdate_DropsOldCustomURL(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	tnt := tenantbus.Tenant{ID: uuid.New(), Name: name.MustParse("Studio"), CustomURL: slug.MustParseNull("old-handle")}
	require.NoError(t, store.Create(ctx, tnt))

	tnt.CustomURL = slug.MustParseNull("new-handle")
	require.NoError(t, store.Update(ctx, tnt))

	_, err := store.QueryByCustomURL(ctx, slug.MustParse("old-handle"))
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)

	got, err := store.QueryByCustomURL(ctx, slug.MustParse("new-handle"))
	require.NoError(t, err)
	assert.Equal(t, tnt.ID, got.ID)
}

func TestReload_ReadsThrough(t *testing.T) {
	ctx := context.Background()
	store, db := newStore()

	tnt := tenantbus.Tenant{ID: uuid.New(), Name: name.MustParse("Studio")}
	require.NoError(t, store.Create(ctx, tnt))

	renamed := tnt
	renamed.Name = name.MustParse("Studio Renamed")
	db.tenants[tnt.ID] = renamed

	got, err := store.Reload(ctx, tnt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio Renamed", got.Name.String())
	assert.Equal(t, 1, db.reads)

	got, err = store.QueryByID(ctx, tnt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio Renamed", got.Name.String())
	assert.Equal(t, 1, db.reads)
}

func TestNewWithTx_RolledBackCreateNotCached(t *testing.T) {
	ctx := context.Background()
	store, db := newStore()

	txStore, err := store.NewWithTx(nil)
	require.NoError(t, err)

	tnt := tenantbus.Tenant{ID: uuid.New(), Name: name.MustParse("Phantom"), CustomURL: slug.MustParseNull("phantom")}
	require.NoError(t, txStore.Create(ctx, tnt))

	// Rollback.
	delete(db.tenants, tnt.ID)

	_, err = store.QueryByCustomURL(ctx, slug.MustParse("phantom"))
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)

	_, err = store.QueryByID(ctx, tnt.ID)
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)
}

func TestNewWithTx_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	store, db := newStore()

	tnt := tenantbus.Tenant{ID: uuid.New(), Name: name.MustParse("Studio")}
	require.NoError(t, store.Create(ctx, tnt))

	txStore, err := store.NewWithTx(nil)
	require.NoError(t, err)

	renamed := tnt
	renamed.Name = name.MustParse("Studio Renamed")
	require.NoError(t, txStore.Update(ctx, renamed))

	got, err := store.QueryByID(ctx, tnt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio Renamed", got.Name.String())
	assert.Equal(t, 1, db.reads)
}
