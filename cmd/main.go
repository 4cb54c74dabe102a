package main

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/joho/godotenv"

	"bookshelf.dev/storefront/internal/router"
	"bookshelf.dev/storefront/pkg/ai"
	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/global"
	"bookshelf.dev/storefront/pkg/mongo"
	"bookshelf.dev/storefront/pkg/redis"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using the process environment: %v", err)
	}

	cfg, err := global.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := global.GetDefaultTimer()
	source, catalogBackend, err := openCatalog(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("Failed to open catalog: %v", err)
	}
	sessions, cartBackend := openCartSessions(ctx, cfg)
	cancel()

	ai.InitializeAIService()

	engine := router.NewEngine(cfg, router.Deps{
		Catalog:        catalog.NewService(source),
		Sessions:       sessions,
		CatalogBackend: catalogBackend,
		CartBackend:    cartBackend,
	})

	log.Printf("Server is running on port %s", cfg.Port)

	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func openCatalog(ctx context.Context, cfg global.Config) (catalog.Source, router.Backend, error) {
	switch cfg.CatalogSource {
	case global.CatalogSeeded:
		log.Printf("Serving seeded catalog (%d books, seed %d)", cfg.CatalogSize, cfg.CatalogSeed)
		return catalog.NewSeededSource(cfg.CatalogSize, cfg.CatalogSeed), router.Backend{Name: cfg.CatalogSource}, nil

	case global.CatalogMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, router.Backend{}, err
		}
		db := client.Database(cfg.MongoDatabase)

		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			log.Printf("Warning: failed to create indexes: %v", err)
		}

		store := mongo.NewBookStore(db)
		if cfg.MongoSeed {
			r := rand.New(rand.NewPCG(cfg.CatalogSeed, cfg.CatalogSeed))
			featured := make([]string, 0, len(catalog.SeedBooks()))
			for _, book := range catalog.SeedBooks() {
				featured = append(featured, book.ID)
			}

			seeded, err := store.SeedIfEmpty(ctx, catalog.GenerateBooks(cfg.CatalogSize, r), featured, catalog.DefaultCategories())
			if err != nil {
				return nil, router.Backend{}, err
			}
			if seeded {
				log.Printf("Seeded %d books into %s.%s", cfg.CatalogSize, cfg.MongoDatabase, mongo.BooksCollection)
			}
		}

		log.Printf("Serving catalog from MongoDB database %s", cfg.MongoDatabase)
		return store, router.Backend{
			Name: cfg.CatalogSource,
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}, nil

	default:
		log.Printf("Serving generated catalog (%d books, regenerated per request)", cfg.CatalogSize)
		return catalog.NewGeneratedSource(cfg.CatalogSize), router.Backend{Name: cfg.CatalogSource}, nil
	}
}

// openCartSessions falls back to in-memory sessions when Redis is not configured or not reachable.
func openCartSessions(ctx context.Context, cfg global.Config) (cart.Sessions, router.Backend) {
	if cfg.RedisAddress == "" {
		log.Println("REDIS_ADDRESS not set, keeping cart sessions in memory")
		return cart.NewMemorySessions(), router.Backend{Name: "memory"}
	}

	client := redis.NewClient(cfg)
	if err := redis.Ping(ctx, client); err != nil {
		log.Printf("Warning: Redis at %s is not reachable, keeping cart sessions in memory: %v", cfg.RedisAddress, err)
		client.Close()
		return cart.NewMemorySessions(), router.Backend{Name: "memory"}
	}

	log.Printf("Cart sessions stored in Redis at %s (ttl %s)", cfg.RedisAddress, cfg.CartTTL)
	return redis.NewSessions(client, cfg.CartTTL), router.Backend{
		Name: "redis",
		Ping: func(ctx context.Context) error { return redis.Ping(ctx, client) },
	}
}
