package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordhound/config"
)

// A small global cache for objects that are expensive to build and shared
// across the process, such as loaded word lists. Keys are opaque strings;
// the loader runs at most once per key.

type cache struct {
	sync.Mutex
	objects map[string]interface{}
}

type loadFunc func(cfg *config.Config, key string) (interface{}, error)

var globalObjectCache *cache

func (c *cache) load(cfg *config.Config, key string, loader loadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loader(cfg, key)
	if err != nil {
		return err
	}
	c.objects[key] = obj
	return nil
}

func (c *cache) get(cfg *config.Config, key string, loader loadFunc) (interface{}, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	if err := c.load(cfg, key, loader); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

func Load(cfg *config.Config, key string, loader loadFunc) (interface{}, error) {
	if globalObjectCache == nil {
		globalObjectCache = &cache{objects: make(map[string]interface{})}
	}
	return globalObjectCache.get(cfg, key, loader)
}
