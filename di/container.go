// Package di wires the cart service from a config.Config.
package di

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"marketcart/cartlock"
	"marketcart/catalog"
	"marketcart/config"
	"marketcart/handlers"
	"marketcart/middleware"
	"marketcart/repository"
	"marketcart/routers"
	"marketcart/services"
	"marketcart/shipping"
	"marketcart/usecases"
)

type Container struct {
	Config   config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	UseCases *usecases.UseCases
	Router   *gin.Engine

	// Set only with the memory storage driver.
	MemoryCatalog  *catalog.MemoryCatalog
	MemoryProfiles *shipping.MemoryProfiles

	productView usecases.ProductCatalog
	cache       *catalog.Cache
	closers     []func() error
}

// Build connects the configured stores and assembles the HTTP router.
func Build(ctx context.Context, cfg config.Config, tokens middleware.TokenVerifier, log logrus.FieldLogger) (*Container, error) {
	c := &Container{Config: cfg}

	if cfg.Storage.Driver == "mysql" {
		db, err := config.SetupMySQLConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.closers = append(c.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}
	if cfg.UsesRedis() {
		rdb, err := config.SetupRedisConnection(ctx, cfg.Redis)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Redis = rdb
		c.closers = append(c.closers, rdb.Close)
	}

	deps, err := c.deps(cfg, log)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.UseCases = usecases.New(deps)

	var invalidator handlers.ProductInvalidator
	if c.cache != nil {
		invalidator = c.cache
	}
	router, err := routers.SetupRouters(
		handlers.NewCartHandler(c.UseCases, log),
		handlers.NewProductHandler(c.productView, invalidator, log),
		tokens,
		log,
	)
	if err != nil {
		_ = c.Close()
		return nil, errors.Wrap(err, "setup routers")
	}
	c.Router = router
	return c, nil
}

func (c *Container) deps(cfg config.Config, log logrus.FieldLogger) (usecases.Deps, error) {
	var (
		cartRepo services.CartRepository
		itemRepo services.CartItemRepository
		products usecases.ProductCatalog
		profiles usecases.ShippingProfiles
	)

	if c.DB != nil {
		cartRepo = repository.NewGormCartRepository(c.DB)
		itemRepo = repository.NewGormCartItemRepository(c.DB)
		profiles = shipping.NewGormProfiles(c.DB)
		products = catalog.NewGormCatalog(c.DB)
	} else {
		cartRepo = repository.NewMemoryCartRepository()
		itemRepo = repository.NewMemoryCartItemRepository()
		c.MemoryCatalog = catalog.NewMemoryCatalog()
		c.MemoryProfiles = shipping.NewMemoryProfiles()
		if cfg.Storage.SeedFile != "" {
			if err := LoadSeed(cfg.Storage.SeedFile, c.MemoryCatalog, c.MemoryProfiles); err != nil {
				return usecases.Deps{}, err
			}
		}
		products = c.MemoryCatalog
		profiles = c.MemoryProfiles
	}

	// Stock and availability checks read the live catalog. Only the product
	// view goes through the redis cache.
	c.productView = products
	if c.Redis != nil {
		c.cache = catalog.NewCache(c.Redis, products, cfg.Redis.ProductTTL, log)
		c.productView = c.cache
	}

	return usecases.Deps{
		Carts:    services.NewCartService(cartRepo, itemRepo, log),
		Items:    services.NewCartItemService(itemRepo, log),
		Catalog:  products,
		Profiles: profiles,
		Locker:   c.locker(cfg.Cart),
		Log:      log,
	}, nil
}

func (c *Container) locker(cfg config.CartConfig) cartlock.Locker {
	switch cfg.Lock {
	case "redis":
		if c.Redis != nil {
			return cartlock.NewRedis(c.Redis, cfg.LockTTL)
		}
		return cartlock.NewLocal()
	case "local":
		return cartlock.NewLocal()
	default:
		return cartlock.Noop{}
	}
}

func (c *Container) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
