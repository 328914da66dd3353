package infra

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"github.com/lumiere-atelier/storefront/internal/config"
	"github.com/lumiere-atelier/storefront/internal/log"
)

var (
	dbOnce sync.Once
	db     *mongo.Database
)

func NewDatabaseClient(c context.Context, dbConfig config.Database) *mongo.Database {
	dbOnce.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main NewDatabaseClient").
			Logger()

		logger = logger.With().Str(log.KeyProcess, "initializing mongo client").Logger()
		logger.Info().Msg("initializing mongo client")
		clientOpts := options.Client().
			ApplyURI(dbConfig.Uri).
			SetConnectTimeout(10 * time.Second).
			SetServerSelectionTimeout(5 * time.Second).
			SetMonitor(otelmongo.NewMonitor())
		client, err := mongo.Connect(c, clientOpts)
		if err != nil {
			err = fmt.Errorf("failed connecting to mongo with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("initialized mongo client")

		logger = logger.With().Str(log.KeyProcess, "ping db").Logger()
		logger.Info().Msg("ping db")
		err = client.Ping(c, nil)
		if err != nil {
			err = fmt.Errorf("failed ping db with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("successed ping db")

		db = client.Database(dbConfig.Name)
	})
	return db
}
