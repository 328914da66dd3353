package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartController "github.com/lumiere-atelier/storefront/internal/cart/controller"
	cartRepository "github.com/lumiere-atelier/storefront/internal/cart/repository"
	cartService "github.com/lumiere-atelier/storefront/internal/cart/service"
	"github.com/lumiere-atelier/storefront/internal/common"
	"github.com/lumiere-atelier/storefront/internal/config"
	commonErrors "github.com/lumiere-atelier/storefront/internal/errors"
	"github.com/lumiere-atelier/storefront/internal/infra"
	"github.com/lumiere-atelier/storefront/internal/log"
	"github.com/lumiere-atelier/storefront/internal/middleware"
	notificationController "github.com/lumiere-atelier/storefront/internal/notification/controller"
	"github.com/lumiere-atelier/storefront/internal/notification/mailer"
	notificationService "github.com/lumiere-atelier/storefront/internal/notification/service"
	orderController "github.com/lumiere-atelier/storefront/internal/order/controller"
	orderRepository "github.com/lumiere-atelier/storefront/internal/order/repository"
	orderService "github.com/lumiere-atelier/storefront/internal/order/service"
	"github.com/lumiere-atelier/storefront/internal/otel"
	productController "github.com/lumiere-atelier/storefront/internal/product/controller"
	productRepository "github.com/lumiere-atelier/storefront/internal/product/repository"
	productService "github.com/lumiere-atelier/storefront/internal/product/service"
	"github.com/lumiere-atelier/storefront/internal/session"
	userController "github.com/lumiere-atelier/storefront/internal/user/controller"
	userRepository "github.com/lumiere-atelier/storefront/internal/user/repository"
	userService "github.com/lumiere-atelier/storefront/internal/user/service"
)

func RunStorefront(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunStorefront")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppStorefront).
		Str(log.KeyTag, "main RunStorefront").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, common.AppStorefront)
	logger = logger.With().Any(log.KeyConfig, cfg).Logger()
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, common.AppStorefront, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		err = otel.ShutdownOtel(c, otelShutdowns)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

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

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "shutting down cache").Logger()
		logger.Info().Msg("shutting down cache")
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	accounts := userRepository.NewMongoAccountRepository(db)
	resolver := session.NewResolver(cfg.Application.SecretKey, accounts, cache)
	mail := mailer.NewSMTPMailer(cfg.Mailer)
	carts := cartService.NewCartService(cartRepository.NewMongoCartRepository(db))
	users := userService.NewUserService(accounts, resolver)
	products := productService.NewProductService(productRepository.NewMongoProductRepository(db))
	orders := orderService.NewOrderService(orderRepository.NewMongoOrderRepository(db), carts, mail)
	consultations := notificationService.NewConsultationService(mail, cfg.Mailer.AtelierEmail)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "seeding catalog").Logger()
	logger.Info().Msg("seeding catalog")
	c = logger.WithContext(c)
	if err := products.SeedCatalog(c); err != nil {
		err = fmt.Errorf("failed seeding catalog with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("seeded catalog")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(common.AppStorefront),
		middleware.Logging,
		middleware.RecoverPanic,
		middleware.Sessionize(resolver),
	)
	cartController.AttachCartController(router, &carts)
	userController.AttachUserController(router, users, carts)
	productController.AttachProductController(router, &products)
	orderController.AttachOrderController(router, &orders)
	notificationController.AttachConsultationController(router, &consultations)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger = logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())

			c = logger.WithContext(c)
			if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
				err = fmt.Errorf("failed shutting down otel with error=%w", err)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return
			}
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interuption signal shutting down")

	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("shutting down http server")
	err = httpServer.Shutdown(c)
	if err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
