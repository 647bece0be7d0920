package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homebanking/corebank/infra"
	infra_lock "github.com/homebanking/corebank/infra/lock"
	infra_repository "github.com/homebanking/corebank/infra/repository"
	"github.com/homebanking/corebank/infra/repository/memory"
	"github.com/homebanking/corebank/pkg/app"
	"github.com/homebanking/corebank/pkg/config"
	"github.com/homebanking/corebank/pkg/domain/loan"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/utils"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies initializes all the application dependencies.
// Without a database URL the bank runs on an in-process store; without a
// Redis URL account locks are held in-process.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(cfg.Log)
	deps.Logger = logger

	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	deps.Close = closeAll
	defer func() {
		if err != nil {
			_ = closeAll()
		}
	}()

	ctx := context.Background()

	var closeDB func() error
	deps.Uow, closeDB, err = initUnitOfWork(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closeDB != nil {
		closers = append(closers, closeDB)
	}

	var closeRedis func() error
	deps.Locker, closeRedis, err = initLocker(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closeRedis != nil {
		closers = append(closers, closeRedis)
	}

	deps.Resolver = identity.NewStoreResolver(deps.Uow)
	cost := utils.DefaultCost
	if cfg.Bank != nil {
		cost = cfg.Bank.BcryptCost
	}
	deps.Hasher = utils.NewBcryptHasher(cost)
	return deps, nil
}

// NewApp initializes the dependencies, builds the managers and seeds the
// loan catalog when configured to.
func NewApp(ctx context.Context, cfg *config.App) (*app.App, error) {
	deps, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}
	a := app.New(deps, cfg)
	if cfg.Bank != nil && cfg.Bank.SeedCatalog {
		if _, err := a.LoanService.SeedProducts(ctx, loan.DefaultCatalog()); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to seed loan catalog: %w", err)
		}
	}
	return a, nil
}

func initUnitOfWork(
	ctx context.Context,
	cfg *config.App,
	logger *slog.Logger,
) (repository.UnitOfWork, func() error, error) {
	if cfg.DB == nil || cfg.DB.Url == "" {
		logger.Warn("DATABASE_URL is not set, using the in-memory store")
		return memory.NewUoW(memory.New()), nil, nil
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := infra_repository.Migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated")
	}
	return infra_repository.NewUoW(db), sqlDB.Close, nil
}

func initLocker(
	ctx context.Context,
	cfg *config.App,
	logger *slog.Logger,
) (lock.Locker, func() error, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("REDIS_URL is not set, account locks are held in-process")
		return infra_lock.NewKeyedMutex(), nil, nil
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = cfg.Redis.PoolSize
	opts.DialTimeout = cfg.Redis.DialTimeout
	opts.ReadTimeout = cfg.Redis.ReadTimeout
	opts.WriteTimeout = cfg.Redis.WriteTimeout
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	lockOpts := infra_lock.RedisOptions{}
	if cfg.Lock != nil {
		lockOpts = infra_lock.RedisOptions{
			Prefix:     cfg.Lock.KeyPrefix,
			Expiry:     cfg.Lock.Expiry,
			Tries:      cfg.Lock.Tries,
			RetryDelay: cfg.Lock.RetryDelay,
		}
	}
	logger.Info("Using Redis account locks", "prefix", lockOpts.Prefix)
	return infra_lock.NewRedisLocker(rdb, lockOpts, logger), rdb.Close, nil
}
