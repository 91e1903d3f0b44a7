package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hari7vansh/swipehire/internal/config"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
	redrepo "github.com/hari7vansh/swipehire/internal/repo/redis"
	authsvc "github.com/hari7vansh/swipehire/internal/services/auth"
	jobssvc "github.com/hari7vansh/swipehire/internal/services/jobs"
	matchessvc "github.com/hari7vansh/swipehire/internal/services/matches"
	messagessvc "github.com/hari7vansh/swipehire/internal/services/messages"
	profilessvc "github.com/hari7vansh/swipehire/internal/services/profiles"
	ratesvc "github.com/hari7vansh/swipehire/internal/services/rate"
	swipesvc "github.com/hari7vansh/swipehire/internal/services/swipes"
	userssvc "github.com/hari7vansh/swipehire/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres init: %w", err)
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	jobRepo := pgrepo.NewJobRepo(pool)
	applicationRepo := pgrepo.NewApplicationRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService, err := authsvc.NewService(authsvc.Dependencies{
		Sessions: sessionRepo,
		Tokens:   jwtManager,
	}, authsvc.Config{RefreshTTL: cfg.Auth.RefreshTTL})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	userService, err := userssvc.NewService(userssvc.Dependencies{
		Pool:     pool,
		Users:    userRepo,
		Profiles: profileRepo,
	})
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}

	profileService, err := profilessvc.NewService(profilessvc.Dependencies{
		Profiles: profileRepo,
	})
	if err != nil {
		return nil, fmt.Errorf("profile service: %w", err)
	}

	jobService, err := jobssvc.NewService(jobssvc.Dependencies{
		Jobs:         jobRepo,
		Applications: applicationRepo,
	}, jobssvc.Config{PageSize: cfg.Limits.JobsPageSize})
	if err != nil {
		return nil, fmt.Errorf("job service: %w", err)
	}

	rateLimiter, err := ratesvc.NewLimiter(rateRepo, ratesvc.Config{
		SwipesPerMinute:    cfg.Limits.SwipesPerMinute,
		SwipesPer10Seconds: cfg.Limits.SwipesPer10Seconds,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	swipeService, err := swipesvc.NewService(swipesvc.Dependencies{
		Pool:       pool,
		Jobs:       jobRepo,
		Candidates: profileRepo,
		Swipes:     swipeRepo,
		Matches:    matchRepo,
		Limiter:    rateLimiter,
	})
	if err != nil {
		return nil, fmt.Errorf("swipe service: %w", err)
	}

	matchService, err := matchessvc.NewService(matchessvc.Dependencies{
		Matches: matchRepo,
	}, matchessvc.Config{PageSize: cfg.Limits.MatchesPageSize})
	if err != nil {
		return nil, fmt.Errorf("match service: %w", err)
	}

	messageService, err := messagessvc.NewService(messagessvc.Dependencies{
		Matches:  matchRepo,
		Messages: messageRepo,
	}, messagessvc.Config{PageSize: cfg.Limits.MessagesPageSize})
	if err != nil {
		return nil, fmt.Errorf("message service: %w", err)
	}

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		UserService:    userService,
		ProfileService: profileService,
		JobService:     jobService,
		SwipeService:   swipeService,
		MatchService:   matchService,
		MessageService: messageService,
		Logger:         log,
		Config:         cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
