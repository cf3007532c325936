// @title                       Marketplace API
// @version                     1.0
// @description                 Freelance marketplace: jobs, proposals and the sessions that guard them.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/gigboard/marketplace-api/internal/api"
	"github.com/gigboard/marketplace-api/internal/core/ports"
	"github.com/gigboard/marketplace-api/internal/core/service"
	"github.com/gigboard/marketplace-api/internal/infrastructure/db/memory"
	"github.com/gigboard/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/gigboard/marketplace-api/internal/infrastructure/db/redis"
	"github.com/gigboard/marketplace-api/internal/infrastructure/queue"
	"github.com/gigboard/marketplace-api/internal/infrastructure/token"
	"github.com/gigboard/marketplace-api/internal/pkg/config"
	"github.com/gigboard/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// stores groups the repositories behind the selected driver.
type stores struct {
	users     ports.UserRepository
	jobs      ports.JobRepository
	proposals ports.ProposalRepository
	refresh   ports.RefreshStore
	audit     ports.ProposalAuditRepository

	db    *mongodrv.Database
	rdb   *redis.Client
	close func(context.Context)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run serves until ctx is cancelled or the listener fails. Every resource it
// opened is released before it returns: HTTP server first, then the audit
// dispatcher, then the store.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "marketplace-api",
	})

	tokens, err := token.NewManager(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer st.close(context.Background())

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, st.audit, logger.Component("audit"))
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	e := api.NewRouter(api.Deps{
		Auth:          service.NewAuthService(st.users, tokens, st.refresh, service.NewBcryptHasher(cfg.BcryptCost), logger.Component("auth")),
		Jobs:          service.NewJobService(st.jobs, logger.Component("jobs")),
		Proposals:     service.NewProposalService(st.jobs, st.proposals, st.users, dispatcher, logger.Component("proposals")),
		Sessions:      service.NewSessionService(tokens, st.users, logger.Component("session")),
		DB:            st.db,
		Redis:         st.rdb,
		Logger:        logger.Component("http"),
		SecureCookies: cfg.Production(),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server listening")
		serveErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		mem := memory.NewStore()
		log.Warn().Msg("using the in-memory store; data is lost on restart")
		return &stores{
			users:     mem.Users,
			jobs:      mem.Jobs,
			proposals: mem.Proposals,
			refresh:   mem.Refresh,
			audit:     mem.Audit,
			close:     func(context.Context) {},
		}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "marketplace-api",
	})
	if err != nil {
		return nil, err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	users := mongo.NewUserRepository(db)
	jobs := mongo.NewJobRepository(db)
	proposals := mongo.NewProposalRepository(db)
	audit := mongo.NewAuditRepository(db)

	if err := mongo.EnsureIndexes(ctx, users, jobs, proposals, audit); err != nil {
		_ = rdb.Close()
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &stores{
		users:     users,
		jobs:      jobs,
		proposals: proposals,
		refresh:   redisstore.NewRefreshStore(rdb),
		audit:     audit,
		db:        db,
		rdb:       rdb,
		close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}
