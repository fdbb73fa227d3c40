// Package landingbus persists the landing page configuration as a single
// serialized document in a key-value store.
package landingbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jcpaschoal/agenda/business/types/section"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jcpaschoal/agenda/foundation/otel"
)

// Keys used in the key-value store.
const (
	ConfigKey = "landingPageConfigurations"
	StateKey  = "landingPageState"
)

// ErrNotFound is returned by a KVStore when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KVStore interface declares the behavior this package needs from the
// underlying key-value store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Core manages the set of APIs for landing page configuration access.
//
// SaveOne is a read-modify-write with no locking. Two concurrent calls can
// read the same snapshot and the last one to write wins.
type Core struct {
	log *logger.Logger
	kv  KVStore
}

// NewCore constructs a core for landing page configuration access.
func NewCore(log *logger.Logger, kv KVStore) *Core {
	return &Core{
		log: log,
		kv:  kv,
	}
}

// SaveAll replaces the stored configuration with the specified sections.
// Failures are logged and the previous document is left in place.
func (c *Core) SaveAll(ctx context.Context, sections Sections) {
	ctx, span := otel.AddSpan(ctx, "business.landingbus.saveAll")
	defer span.End()

	if sections == nil {
		sections = Sections{}
	}

	data, err := json.Marshal(sections)
	if err != nil {
		c.log.Error(ctx, "landing: save all: marshal", "ERROR", err)
		return
	}

	if err := c.kv.Set(ctx, ConfigKey, data); err != nil {
		c.log.Error(ctx, "landing: save all: store", "ERROR", err)
		return
	}
}

// LoadAll returns the stored configuration. A missing or unreadable document
// yields an empty bag. Keys that are not known sections are dropped.
func (c *Core) LoadAll(ctx context.Context) Sections {
	ctx, span := otel.AddSpan(ctx, "business.landingbus.loadAll")
	defer span.End()

	data, err := c.kv.Get(ctx, ConfigKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.Error(ctx, "landing: load all: store", "ERROR", err)
		}
		return Sections{}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		c.log.Error(ctx, "landing: load all: unmarshal", "ERROR", err)
		return Sections{}
	}

	sections := make(Sections, len(raw))
	for k, v := range raw {
		key, err := section.Parse(k)
		if err != nil {
			c.log.Warn(ctx, "landing: load all: unknown section", "section", k)
			continue
		}
		sections[key] = v
	}

	return sections
}

// SaveOne replaces a single section and keeps the others.
func (c *Core) SaveOne(ctx context.Context, key section.Key, data json.RawMessage) {
	ctx, span := otel.AddSpan(ctx, "business.landingbus.saveOne")
	defer span.End()

	sections := c.LoadAll(ctx)
	sections[key] = data

	c.SaveAll(ctx, sections)
}

// Initialize runs the one-time startup work. In production the demo
// configuration is cleared the first time the service starts and the fact is
// recorded in the state document so later starts leave the store alone.
func (c *Core) Initialize(ctx context.Context, cfg InitConfig) error {
	ctx, span := otel.AddSpan(ctx, "business.landingbus.initialize")
	defer span.End()

	if !cfg.Production {
		return nil
	}

	st, err := c.loadState(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	if st.DemoCleared {
		return nil
	}

	if err := c.kv.Delete(ctx, ConfigKey); err != nil {
		return fmt.Errorf("clear demo config: %w", err)
	}

	st.DemoCleared = true

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := c.kv.Set(ctx, StateKey, data); err != nil {
		return fmt.Errorf("store state: %w", err)
	}

	c.log.Info(ctx, "landing: demo configuration cleared")

	return nil
}

func (c *Core) loadState(ctx context.Context) (state, error) {
	data, err := c.kv.Get(ctx, StateKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return state{}, nil
		}
		return state{}, err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		c.log.Warn(ctx, "landing: state unreadable, starting over", "ERROR", err)
		return state{}, nil
	}

	return st, nil
}
