package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festivefusion/festival-api/internal/api"
	"github.com/festivefusion/festival-api/internal/config"
	"github.com/festivefusion/festival-api/internal/db"
	"github.com/festivefusion/festival-api/internal/logger"
	"github.com/festivefusion/festival-api/internal/repository/tokenstore"
	"github.com/festivefusion/festival-api/internal/service"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("invalid api.log_level -> %w", err)
	}

	err = config.Watch(configPath,
		func(c *config.AppConfig) {
			if err := logger.SetLevel(c.API.LogLevel); err != nil {
				zap.L().Warn("ignoring invalid log level", zap.String("level", c.API.LogLevel), zap.Error(err))
			}
		},
		func(err error) {
			zap.L().Warn("config reload failed", zap.Error(err))
		},
	)
	if err != nil {
		return fmt.Errorf("failed to watch config -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	daos, closeStore, err := openStore(ctx, conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	defer closeStore()

	tokens, closeTokens, err := openTokenStore(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize token store -> %w", err)
	}
	defer closeTokens()

	s := api.NewServer(conf, daos, tokens)
	srv := s.HTTPServer()

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr),
			zap.String("store", conf.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.API.ShutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

func openStore(ctx context.Context, conf *config.AppConfig) (api.DAOs, func(), error) {
	if conf.Store.Driver == config.StoreDriverMongo {
		client, database, err := db.OpenMongo(ctx, conf.Mongo)
		if err != nil {
			return api.DAOs{}, nil, err
		}

		return api.MongoDAOs(database), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				zap.L().Warn("failed to disconnect from mongo", zap.Error(err))
			}
		}, nil
	}

	var (
		postgresDB *gorm.DB
		err        error
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL, conf.Postgres)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return api.DAOs{}, nil, err
	}

	return api.PostgresDAOs(postgresDB), func() {
		if sqlDB, err := postgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

func openTokenStore(ctx context.Context, conf *config.RedisConfig) (service.TokenStore, func(), error) {
	if conf.Addr == "" {
		zap.L().Warn("redis.addr is empty, revoked tokens are kept in memory")
		return tokenstore.NewMemoryStore(), func() {}, nil
	}

	client, err := db.OpenRedis(ctx, conf)
	if err != nil {
		return nil, nil, err
	}

	return tokenstore.NewRedisStore(client), func() { _ = client.Close() }, nil
}
