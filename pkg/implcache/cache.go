// Package implcache caches loaded implementations by key. Loaded entries are
// served until purged, so the store purges a key whenever the implementation
// is saved or deleted.
package implcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// DefaultSize is used when a non-positive size is configured
const DefaultSize = 256

// ErrInvalid is returned for implementations whose body cannot be loaded
var ErrInvalid = errors.New("invalid implementation")

// Loaded is the cached form of an implementation
type Loaded struct {
	Key    string                     `json:"key"`
	Engine model.ImplementationEngine `json:"engine"`
	Type   string                     `json:"type"`
	Body   string                     `json:"body"`
	Digest string                     `json:"digest"`
}

// Cache is a fixed-size LRU of loaded implementations, safe for concurrent use
type Cache struct {
	lru *lru.Cache
}

func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating implementation cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// Load returns the cached entry for impl.ID, loading impl on a miss
func (c *Cache) Load(impl *model.Implementation) (*Loaded, error) {
	if v, ok := c.lru.Get(impl.ID); ok {
		return v.(*Loaded), nil
	}

	loaded, err := Parse(impl)
	if err != nil {
		return nil, err
	}
	c.lru.Add(impl.ID, loaded)
	return loaded, nil
}

// Get returns the cached entry for key, if any
func (c *Cache) Get(key string) (*Loaded, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Loaded), true
}

// Purge drops the entry for key. Purging an absent key does nothing.
func (c *Cache) Purge(key string) {
	if !c.lru.Contains(key) {
		return
	}
	c.lru.Remove(key)
	logger.Log.Debug("purged implementation", zap.String("implementation", key))
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Parse validates impl and returns its loaded form without caching it
func Parse(impl *model.Implementation) (*Loaded, error) {
	body := strings.TrimSpace(impl.Body)
	switch impl.Engine {
	case model.EngineJava:
		if body == "" || strings.ContainsAny(body, " \t\n") {
			return nil, fmt.Errorf("%w %q: invalid class name %q", ErrInvalid, impl.ID, body)
		}
	case model.EngineGroovy:
		if body == "" {
			return nil, fmt.Errorf("%w %q: empty script", ErrInvalid, impl.ID)
		}
	default:
		return nil, fmt.Errorf("%w %q: unknown engine %q", ErrInvalid, impl.ID, impl.Engine)
	}

	sum := sha256.Sum256([]byte(body))
	return &Loaded{
		Key:    impl.ID,
		Engine: impl.Engine,
		Type:   impl.Type,
		Body:   body,
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}
