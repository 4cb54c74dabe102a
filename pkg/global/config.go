package global

import (
	"fmt"
	"time"
)

const (
	CatalogGenerated = "generated"
	CatalogSeeded    = "seeded"
	CatalogMongo     = "mongo"
)

// Config is the server configuration read from the environment (and .env when present).
type Config struct {
	Port string
	Env  string

	CatalogSource string
	CatalogSize   int
	CatalogSeed   uint64

	MongoURI      string
	MongoDatabase string
	MongoSeed     bool

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	CartTTL       time.Duration
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:          GetEnvOrDefault("PORT", "4567"),
		Env:           GetEnvOrDefault("ENV", "development"),
		CatalogSource: GetEnvOrDefault("CATALOG_SOURCE", CatalogGenerated),
		CatalogSize:   GetEnvIntOrDefault("CATALOG_SIZE", 50),
		CatalogSeed:   uint64(GetEnvIntOrDefault("CATALOG_SEED", 42)),
		MongoURI:      GetEnvOrDefault("MONGODB_URI", ""),
		MongoDatabase: GetEnvOrDefault("MONGODB_DATABASE", "bookshelf"),
		MongoSeed:     GetEnvBoolOrDefault("MONGODB_SEED", true),
		RedisAddress:  GetEnvOrDefault("REDIS_ADDRESS", ""),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvIntOrDefault("REDIS_DB", 0),
		CartTTL:       GetEnvDurationOrDefault("CART_TTL", time.Hour),
	}

	switch cfg.CatalogSource {
	case CatalogGenerated, CatalogSeeded:
	case CatalogMongo:
		if cfg.MongoURI == "" {
			return cfg, fmt.Errorf("CATALOG_SOURCE=mongo requires MONGODB_URI")
		}
	default:
		return cfg, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	if cfg.CatalogSize < 4 {
		return cfg, fmt.Errorf("CATALOG_SIZE must be at least 4, got %d", cfg.CatalogSize)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
