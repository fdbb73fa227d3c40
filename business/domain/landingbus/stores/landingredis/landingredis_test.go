package landingredis_test

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jcpaschoal/agenda/business/domain/landingbus"
	"github.com/jcpaschoal/agenda/business/domain/landingbus/stores/landingredis"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *landingredis.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return mr, landingredis.NewStore(log, client, "agenda:")
}

func TestGet_Miss(t *testing.T) {
	_, store := setupTestRedis(t)

	_, err := store.Get(context.Background(), landingbus.ConfigKey)
	assert.ErrorIs(t, err, landingbus.ErrNotFound)
}

func TestSetGetDelete(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, landingbus.ConfigKey, []byte(`{"heroSection":{}}`)))

	raw, err := mr.Get("agenda:" + landingbus.ConfigKey)
	require.NoError(t, err)
	assert.Equal(t, `{"heroSection":{}}`, raw)

	got, err := store.Get(ctx, landingbus.ConfigKey)
	require.NoError(t, err)
	assert.Equal(t, `{"heroSection":{}}`, string(got))

	require.NoError(t, store.Delete(ctx, landingbus.ConfigKey))
	assert.False(t, mr.Exists("agenda:"+landingbus.ConfigKey))
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := landingredis.Open(context.Background(), landingredis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()

	_, err = landingredis.Open(context.Background(), landingredis.Config{Addr: mr.Addr()})
	assert.Error(t, err)
}

func TestCoreOverRedis(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	core := landingbus.NewCore(log, store)

	assert.Empty(t, core.LoadAll(ctx))

	core.SaveAll(ctx, landingbus.Sections{})
	assert.Empty(t, core.LoadAll(ctx))
}
