package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumiere-atelier/storefront/internal/log"
	commonOtel "github.com/lumiere-atelier/storefront/internal/otel"
	"github.com/lumiere-atelier/storefront/internal/product/otel"
	"github.com/lumiere-atelier/storefront/internal/product/repository"
	"github.com/lumiere-atelier/storefront/product/pkg/response"
)

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return ProductService{repo: repo}
}

func (s ProductService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products, err := s.repo.FindAll(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return response.FromProducts(products), nil
}

// SeedCatalog inserts the launch collection once; an already-populated
// catalog is left untouched.
func (s ProductService) SeedCatalog(c context.Context) error {
	c, span := otel.Tracer.Start(c, "ProductService SeedCatalog")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService SeedCatalog").
		Str(log.KeyProcess, "seeding catalog").
		Logger()

	count, err := s.repo.Count(c)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if count > 0 {
		logger.Info().Msgf("catalog already has %d products, skipping seed", count)
		return nil
	}

	logger.Info().Msg("seeding catalog")
	if err := s.repo.InsertMany(c, repository.InitialCatalog()); err != nil {
		err = fmt.Errorf("failed seeding catalog with error=%w", err)
		commonOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("seeded catalog")

	return nil
}
