// Package wire provides dependency injection for the feira application.
// It creates process-scoped singletons with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	cliadapter "github.com/example/feira/internal/adapters/cli"
	"github.com/example/feira/internal/adapters/sqlite"
	"github.com/example/feira/internal/app"
	"github.com/example/feira/internal/config"
	"github.com/example/feira/internal/db"
	"github.com/example/feira/internal/logging"
	"github.com/example/feira/internal/ports/primary"
)

var (
	overrides config.Overrides

	cfg               *config.Config
	logger            *logrus.Logger
	closeLog          func() error
	database          *db.Database
	collectionService primary.CollectionService
	catalogService    primary.CatalogService
	once              sync.Once
)

// Configure records command-line overrides. It only has an effect before the
// first service is requested.
func Configure(o config.Overrides) {
	overrides = o
}

// Config returns the resolved configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the process logger.
func Logger() *logrus.Logger {
	once.Do(initServices)
	return logger
}

// Database returns the process database handle.
func Database() *db.Database {
	once.Do(initServices)
	return database
}

// CollectionService returns the singleton CollectionService instance.
func CollectionService() primary.CollectionService {
	once.Do(initServices)
	return collectionService
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error

	cfg, err = config.Load(overrides)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, closeLog, err = logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}

	ctx := context.Background()
	database = db.New(cfg.Database.Path, logger)
	if err := database.Open(ctx); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// First run: load the reference catalog. Failure leaves an empty catalog
	// but a usable store.
	if needs, err := db.NeedsSeed(ctx, database); err != nil {
		logger.WithError(err).Error("failed to check seed state")
	} else if needs {
		if err := db.SeedInitialData(ctx, database); err != nil {
			logger.WithError(err).Error("failed to seed initial data")
		}
	}

	// Create repository adapters (secondary ports) with the injected handle
	collectionRepo := sqlite.NewCollectionRepository(database, logger)
	productRepo := sqlite.NewProductRepository(database)
	producerRepo := sqlite.NewProducerRepository(database)

	// Create services (primary ports implementation)
	create := app.NewCreateCollectionUseCase(collectionRepo, productRepo, producerRepo, logger)
	collectionService = app.NewCollectionService(collectionRepo, create)
	catalogService = app.NewCatalogService(productRepo, producerRepo)
}

// Close releases the database handle and the log file, if they were opened.
func Close() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	if closeLog != nil {
		if cerr := closeLog(); err == nil {
			err = cerr
		}
	}
	return err
}

// CollectionAdapter returns a new CollectionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CollectionAdapter() *cliadapter.CollectionAdapter {
	return CollectionAdapterWithOutput(os.Stdout)
}

// CollectionAdapterWithOutput returns a new CollectionAdapter writing to the given output.
func CollectionAdapterWithOutput(out io.Writer) *cliadapter.CollectionAdapter {
	once.Do(initServices)
	return cliadapter.NewCollectionAdapter(collectionService, catalogService, out)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
func CatalogAdapter() *cliadapter.CatalogAdapter {
	return CatalogAdapterWithOutput(os.Stdout)
}

// CatalogAdapterWithOutput returns a new CatalogAdapter writing to the given output.
func CatalogAdapterWithOutput(out io.Writer) *cliadapter.CatalogAdapter {
	once.Do(initServices)
	return cliadapter.NewCatalogAdapter(catalogService, out)
}
