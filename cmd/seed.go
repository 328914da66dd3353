package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	cartRepository "github.com/lumiere-atelier/storefront/internal/cart/repository"
	"github.com/lumiere-atelier/storefront/internal/common"
	"github.com/lumiere-atelier/storefront/internal/config"
	commonErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/infra"
	"github.com/lumiere-atelier/storefront/internal/log"
	orderRepository "github.com/lumiere-atelier/storefront/internal/order/repository"
	"github.com/lumiere-atelier/storefront/internal/otel"
	productRepository "github.com/lumiere-atelier/storefront/internal/product/repository"
	productService "github.com/lumiere-atelier/storefront/internal/product/service"
	userRepository "github.com/lumiere-atelier/storefront/internal/user/repository"
)

// RunSeed prepares an empty database: indexes plus the launch catalog. Safe
// to run repeatedly.
func RunSeed(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunSeed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppCatalogSeed).
		Str(log.KeyTag, "main RunSeed").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, common.AppStorefront)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "creating indexes").Logger()
	logger.Info().Msg("creating indexes")
	if err := ensureIndexes(c, db); err != nil {
		err = fmt.Errorf("failed creating indexes with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("created indexes")

	logger = logger.With().Str(log.KeyProcess, "seeding catalog").Logger()
	logger.Info().Msg("seeding catalog")
	products := productService.NewProductService(productRepository.NewMongoProductRepository(db))
	c = logger.WithContext(c)
	if err := products.SeedCatalog(c); err != nil {
		err = fmt.Errorf("failed seeding catalog with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("seeded catalog")
}

func ensureIndexes(c context.Context, db *mongo.Database) error {
	if err := cartRepository.EnsureIndexes(c, db); err != nil {
		return err
	}
	if err := userRepository.EnsureIndexes(c, db); err != nil {
		return err
	}
	return orderRepository.EnsureIndexes(c, db)
}
