// Package app wires configuration, storage, broadcast and the HTTP surface
// into a runnable process.
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/movearena/team-league/internal/config"
	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/notification"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/domain/standing"
	"github.com/movearena/team-league/internal/domain/storage"
	"github.com/movearena/team-league/internal/domain/team"
	natsbroadcast "github.com/movearena/team-league/internal/infrastructure/broadcast/nats"
	cacherepo "github.com/movearena/team-league/internal/infrastructure/repository/cache"
	"github.com/movearena/team-league/internal/infrastructure/repository/memory"
	"github.com/movearena/team-league/internal/infrastructure/repository/postgres"
	"github.com/movearena/team-league/internal/interfaces/httpapi"
	platformcache "github.com/movearena/team-league/internal/platform/cache"
	idgen "github.com/movearena/team-league/internal/platform/id"
	"github.com/movearena/team-league/internal/platform/logging"
	"github.com/movearena/team-league/internal/usecase"
)

const (
	dbMaxOpenConns    = 25
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
)

type repositories struct {
	seasons       season.Repository
	teams         team.Repository
	games         game.Repository
	liveGames     livegame.Repository
	snapshots     snapshot.Repository
	standings     standing.Repository
	members       member.Repository
	notifications notification.Repository
	tx            storage.TxRunner
	db            *sqlx.DB
}

// App holds the built process. The caller owns the lifecycle: it starts
// Server, runs Scheduler when present, and calls Close on the way out.
type App struct {
	Server    *http.Server
	Scheduler *usecase.SchedulerService

	logger *logging.Logger
	db     *sqlx.DB
	bus    *natsbroadcast.Publisher
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	cacheStore := platformcache.NewStore(cfg.CacheTTL)
	teamRepo := repos.teams
	memberRepo := repos.members
	if cfg.CacheEnabled {
		teamRepo = cacherepo.NewTeamRepository(teamRepo, cacheStore)
		memberRepo = cacherepo.NewMemberRepository(memberRepo, cacheStore)
	}

	var bus usecase.Bus = usecase.NewNoopBus()
	var publisher *natsbroadcast.Publisher
	if cfg.NATSEnabled {
		publisher, err = natsbroadcast.Connect(cfg.NATSURL, logger)
		if err != nil {
			closeDB(repos.db, logger)
			return nil, fmt.Errorf("connect broadcast bus: %w", err)
		}
		bus = publisher
	} else {
		logger.Info("nats disabled, broadcasts are dropped", "reason", "NATS_ENABLED=false")
	}

	fixtureSvc := usecase.NewFixtureService(
		repos.games,
		idgen.NewRandomGenerator(),
		usecase.KickoffSlot{Hour: cfg.KickoffHour, Minute: cfg.KickoffMinute},
		logger,
	)
	standingSvc := usecase.NewStandingService(repos.standings, repos.games, logger)
	snapshotSvc := usecase.NewSnapshotService(repos.snapshots, memberRepo, logger)
	broadcastSvc := usecase.NewBroadcastService(bus, teamRepo, memberRepo, repos.notifications, logger)
	evaluationSvc := usecase.NewEvaluationService(
		repos.games,
		repos.seasons,
		repos.liveGames,
		repos.snapshots,
		standingSvc,
		broadcastSvc,
		repos.tx,
		cfg.EvaluationWorkers,
		logger,
	)
	seasonSvc := usecase.NewSeasonService(
		repos.seasons,
		teamRepo,
		repos.games,
		repos.liveGames,
		repos.snapshots,
		repos.standings,
		fixtureSvc,
		standingSvc,
		repos.tx,
		cacheStore,
		logger,
	)
	liveScoreSvc := usecase.NewLiveScoreService(repos.games, repos.liveGames, logger)

	var schedulerSvc *usecase.SchedulerService
	if cfg.SchedulerEnabled {
		schedulerSvc = usecase.NewSchedulerService(
			repos.seasons,
			repos.games,
			repos.liveGames,
			snapshotSvc,
			evaluationSvc,
			clockwork.NewRealClock(),
			cfg.SchedulerTickInterval,
			logger,
		)
	} else {
		logger.Info("scheduler disabled, games only move via the internal API", "reason", "SCHEDULER_ENABLED=false")
	}

	handler := httpapi.NewHandler(
		seasonSvc,
		liveScoreSvc,
		evaluationSvc,
		repos.notifications,
		idgen.NewRandomGenerator(),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalToken)

	if cfg.HTTPAddr == "" {
		closeDB(repos.db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:    server,
		Scheduler: schedulerSvc,
		logger:    logger,
		db:        repos.db,
		bus:       publisher,
	}, nil
}

// Close releases the broadcast connection and the database pool. The HTTP
// server must already be shut down.
func (a *App) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	closeDB(a.db, a.logger)
}

func buildRepositories(cfg config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return repositories{
			seasons:       memory.NewSeasonRepository(),
			teams:         memory.NewTeamRepository(memory.SeedTeams()...),
			games:         memory.NewGameRepository(),
			liveGames:     memory.NewLiveGameRepository(),
			snapshots:     memory.NewSnapshotRepository(),
			standings:     memory.NewStandingRepository(),
			members:       memory.NewMemberRepository(memory.SeedMembers()...),
			notifications: memory.NewNotificationRepository(),
			tx:            storage.NopTxRunner{},
		}, nil
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			seasons:       postgres.NewSeasonRepository(db),
			teams:         postgres.NewTeamRepository(db),
			games:         postgres.NewGameRepository(db),
			liveGames:     postgres.NewLiveGameRepository(db),
			snapshots:     postgres.NewSnapshotRepository(db),
			standings:     postgres.NewStandingRepository(db),
			members:       postgres.NewMemberRepository(db),
			notifications: postgres.NewNotificationRepository(db),
			tx:            postgres.NewTxRunner(db),
			db:            db,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil && logger != nil {
		logger.Warn("close database pool failed", "error", err)
	}
}
