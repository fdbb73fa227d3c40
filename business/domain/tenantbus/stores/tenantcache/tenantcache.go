// Package tenantcache contains tenant related CRUD functionality with caching.
package tenantcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
	"github.com/jcpaschoal/agenda/business/sdk/page"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for tenant data and caching.
type Store struct {
	log    *logger.Logger
	storer tenantbus.Storer
	cache  *sturdyc.Client[tenantbus.Tenant]
	inTx   bool
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer tenantbus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[tenantbus.Tenant](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
// The returned store never populates the shared cache since the
// transaction may still roll back. Writes only invalidate entries.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	storer, err := s.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Store{
		log:    s.log,
		storer: storer,
		cache:  s.cache,
		inTx:   true,
	}, nil
}

// Create inserts a new tenant into the database.
func (s *Store) Create(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.storer.Create(ctx, t); err != nil {
		return err
	}

	s.writeCache(t)

	return nil
}

// Update replaces a tenant document in the database. The previous custom url
// entry is dropped because the handle may have changed.
func (s *Store) Update(ctx context.Context, t tenantbus.Tenant) error {
	if prev, ok := s.readCache(idKey(t.ID)); ok {
		s.deleteCache(prev)
	}

	if err := s.storer.Update(ctx, t); err != nil {
		return err
	}

	s.writeCache(t)

	return nil
}

// Query retrieves a list of existing tenants from the database.
func (s *Store) Query(ctx context.Context, filter tenantbus.QueryFilter, orderBy order.By, page page.Page) ([]tenantbus.Tenant, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of tenants in the DB.
func (s *Store) Count(ctx context.Context, filter tenantbus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified tenant from the cache or the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	if t, ok := s.readCache(idKey(tenantID)); ok {
		return t, nil
	}

	t, err := s.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return tenantbus.Tenant{}, err
	}

	s.writeCache(t)

	return t, nil
}

// QueryByCustomURL gets the tenant owning the url handle from the cache or
// the database.
func (s *Store) QueryByCustomURL(ctx context.Context, customURL slug.Slug) (tenantbus.Tenant, error) {
	if t, ok := s.readCache(customURLKey(customURL.String())); ok {
		return t, nil
	}

	t, err := s.storer.QueryByCustomURL(ctx, customURL)
	if err != nil {
		return tenantbus.Tenant{}, err
	}

	s.writeCache(t)

	return t, nil
}

// Reload drops any cached copy of the tenant and reads it from the database.
func (s *Store) Reload(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	if prev, ok := s.readCache(idKey(tenantID)); ok {
		s.deleteCache(prev)
	}

	t, err := s.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return tenantbus.Tenant{}, err
	}

	s.writeCache(t)
	s.log.Info(ctx, "tenantcache: reloaded", "tenant_id", tenantID)

	return t, nil
}

// =============================================================================

func idKey(id uuid.UUID) string {
	return "id:" + id.String()
}

func customURLKey(customURL string) string {
	return "url:" + customURL
}

func (s *Store) readCache(key string) (tenantbus.Tenant, bool) {
	return s.cache.Get(key)
}

func (s *Store) writeCache(t tenantbus.Tenant) {
	if s.inTx {
		return
	}

	s.cache.Set(idKey(t.ID), t)

	if t.CustomURL.Valid() {
		s.cache.Set(customURLKey(t.CustomURL.String()), t)
	}
}

func (s *Store) deleteCache(t tenantbus.Tenant) {
	s.cache.Delete(idKey(t.ID))

	if t.CustomURL.Valid() {
		s.cache.Delete(customURLKey(t.CustomURL.String()))
	}
}
