package app

import (
	"context"
	"time"

	"open-inn/internal/ai"
	"open-inn/internal/ai/gemini"
	"open-inn/internal/config"
	"open-inn/internal/database"
	dbpostgres "open-inn/internal/database/postgres"
	"open-inn/internal/database/schema"
	"open-inn/internal/infrastructure/cache"
	"open-inn/internal/pkg/jwt"
	"open-inn/internal/repository"
	"open-inn/internal/usecase"
	"open-inn/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    jwt.Service

	AuthUC        usecase.AuthUsecase
	ProfileUC     usecase.ProfileUsecase
	ProjectUC     usecase.ProjectUsecase
	MatchmakingUC usecase.MatchmakingUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := schema.Ensure(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)

	scorer := buildScorer(ctx, cfg.Gemini, logger)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		Hub:    hub,
		JWT:    jwtSvc,

		AuthUC:    usecase.NewAuthUsecase(userRepo, jwtSvc),
		ProfileUC: usecase.NewProfileUsecase(userRepo),
		ProjectUC: usecase.NewProjectUsecase(projectRepo),
		MatchmakingUC: usecase.NewMatchmakingUsecase(
			userRepo, projectRepo, matchRepo, scorer, redis, logger,
			usecase.MatchmakingConfig{
				ViabilityThreshold: cfg.Matchmaking.ViabilityThreshold,
				PersistThreshold:   cfg.Matchmaking.PersistThreshold,
			},
		),
	}
	return c, nil
}

// buildScorer returns the Gemini scorer when an API key is configured, and
// an always-failing scorer otherwise so generation runs purely on the
// rule-based fallback.
func buildScorer(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) ai.Scorer {
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, matchmaking will use rule-based scoring only")
		return ai.Unconfigured()
	}

	gen, err := gemini.NewGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		logger.Warn("gemini client init failed, matchmaking will use rule-based scoring only", zap.Error(err))
		return ai.Unconfigured()
	}
	return gemini.NewScorer(gen, logger, 0)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
