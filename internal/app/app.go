package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/goalpool/prediction-league/internal/config"
	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/domain/scoring"
	"github.com/goalpool/prediction-league/internal/domain/team"
	"github.com/goalpool/prediction-league/internal/domain/user"
	"github.com/goalpool/prediction-league/internal/infrastructure/account/passport"
	"github.com/goalpool/prediction-league/internal/infrastructure/jobqueue"
	"github.com/goalpool/prediction-league/internal/infrastructure/repository/memory"
	"github.com/goalpool/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/goalpool/prediction-league/internal/interfaces/httpapi"
	"github.com/goalpool/prediction-league/internal/platform/cache"
	"github.com/goalpool/prediction-league/internal/platform/logging"
	"github.com/goalpool/prediction-league/internal/platform/resilience"
	"github.com/goalpool/prediction-league/internal/usecase"
)

type repositories struct {
	teams       team.Repository
	matches     match.Repository
	teamPreds   prediction.TeamRepository
	matchPreds  prediction.MatchRepository
	multipliers multiplier.Repository
	scoring     scoring.Repository
	users       user.Repository
}

// NewHTTPServer assembles the full service: storage per APP_STORAGE_DRIVER,
// usecase services, passport auth, the optional QStash enqueuer and the HTTP
// router. The returned cleanup closes the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	deadlines := usecase.Deadlines{
		TeamPredictionCutoff: cfg.TeamPredictionCutoff,
		TP3Cutoff:            cfg.TP3Cutoff,
		DoubleUpCutoff:       cfg.DoubleUpCutoff,
		ReDoubleUpOpenAt:     cfg.ReDoubleUpOpenAt,
		MatchPredictionLead:  cfg.MatchPredictionLead,
	}

	eligibilitySvc := usecase.NewEligibilityService(repos.matches, repos.teamPreds, deadlines)
	scoringSvc := usecase.NewScoringService(
		repos.teams,
		repos.matches,
		repos.teamPreds,
		repos.matchPreds,
		repos.multipliers,
		repos.scoring,
		repos.users,
		store,
		logger,
	)

	var enqueuer usecase.RecalcEnqueuer
	if cfg.QStashEnabled {
		enqueuer = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	matchSvc := usecase.NewMatchService(repos.matches, scoringSvc, enqueuer, logger)
	predictionSvc := usecase.NewPredictionService(eligibilitySvc, repos.teams, repos.matches, repos.teamPreds, repos.matchPreds)
	multiplierSvc := usecase.NewMultiplierService(eligibilitySvc, repos.teams, repos.multipliers, scoringSvc, logger)
	teamSvc := usecase.NewTeamService(repos.teams, store)
	leaderboardSvc := usecase.NewLeaderboardService(repos.scoring, repos.users, store)

	passportClient := passport.NewClient(passport.ClientConfig{
		BaseURL:        cfg.PassportBaseURL,
		IntrospectPath: cfg.PassportIntrospectPath,
		Timeout:        cfg.PassportTimeout,
		CacheTTL:       cfg.PassportCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PassportCircuitEnabled,
			FailureThreshold: cfg.PassportCircuitFailureCount,
			OpenTimeout:      cfg.PassportCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PassportCircuitHalfOpenMaxReq,
		},
	}, logger)

	handler := httpapi.NewHandler(teamSvc, matchSvc, predictionSvc, multiplierSvc, scoringSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, passportClient, repos.users, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if cleanup != nil {
			_ = cleanup()
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		teams := memory.SeedTeams()
		return repositories{
			teams:       memory.NewTeamRepository(teams),
			matches:     memory.NewMatchRepository(memory.SeedMatches(teams)),
			teamPreds:   memory.NewTeamPredictionRepository(),
			matchPreds:  memory.NewMatchPredictionRepository(),
			multipliers: memory.NewMultiplierRepository(),
			scoring:     memory.NewScoringRepository(),
			users:       memory.NewUserRepository(),
		}, nil, nil

	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			teams:       postgres.NewTeamRepository(db),
			matches:     postgres.NewMatchRepository(db),
			teamPreds:   postgres.NewTeamPredictionRepository(db),
			matchPreds:  postgres.NewMatchPredictionRepository(db),
			multipliers: postgres.NewMultiplierRepository(db),
			scoring:     postgres.NewScoringRepository(db),
			users:       postgres.NewUserRepository(db),
		}, db.Close, nil

	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL cannot be empty when APP_STORAGE_DRIVER is %q", config.StoragePostgres)
	}

	db, err := otelsqlx.Connect("postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
