package cache

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rs/zerolog/log"
)

// Open builds the cache selected by CACHE_BACKEND ("memory" or "redis").
func Open(cfg map[string]string) (Cache, error) {
	switch backend := config.GetString(cfg, "CACHE_BACKEND", "memory"); backend {
	case "memory":
		ttl := config.GetDuration(cfg, "CACHE_TTL", DefaultTTL)
		log.Info().Dur("ttl", ttl).Msg("Using in-process query cache")
		return NewLocal(config.GetInt(cfg, "CACHE_SIZE", 256), ttl), nil
	case "redis":
		opts, err := redis.ParseURL(config.GetString(cfg, "REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		log.Info().Str("addr", opts.Addr).Msg("Using redis query cache")
		return NewRedis(opts), nil
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q", backend)
	}
}
