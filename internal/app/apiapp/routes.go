package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hari7vansh/swipehire/internal/config"
	authsvc "github.com/hari7vansh/swipehire/internal/services/auth"
	jobssvc "github.com/hari7vansh/swipehire/internal/services/jobs"
	matchessvc "github.com/hari7vansh/swipehire/internal/services/matches"
	messagessvc "github.com/hari7vansh/swipehire/internal/services/messages"
	profilessvc "github.com/hari7vansh/swipehire/internal/services/profiles"
	swipesvc "github.com/hari7vansh/swipehire/internal/services/swipes"
	userssvc "github.com/hari7vansh/swipehire/internal/services/users"
	"github.com/hari7vansh/swipehire/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	UserService    *userssvc.Service
	ProfileService *profilessvc.Service
	JobService     *jobssvc.Service
	SwipeService   *swipesvc.Service
	MatchService   *matchessvc.Service
	MessageService *messagessvc.Service
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.UserService, deps.AuthService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	jobsHandler := handlers.NewJobsHandler(deps.JobService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	messagesHandler := handlers.NewMessagesHandler(deps.MessageService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	actorMW := ActorMiddleware(deps.ProfileService, deps.Logger)

	r.Get("/healthz", healthHandler.Handle)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.With(authMW).Get("/me", authHandler.Me)

	r.Route("/profile", func(r chi.Router) {
		r.Use(authMW, actorMW)
		r.Get("/", profileHandler.Get)
		r.Put("/", profileHandler.Update)
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Use(authMW, actorMW)
		r.Get("/", jobsHandler.List)
		r.Post("/", jobsHandler.Create)
		r.Get("/{id}", jobsHandler.Get)
		r.Put("/{id}", jobsHandler.Update)
		r.Delete("/{id}", jobsHandler.Deactivate)
		r.Post("/{id}/apply", jobsHandler.Apply)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Use(authMW, actorMW)
		r.Get("/", jobsHandler.ListApplications)
		r.Put("/{id}", jobsHandler.UpdateApplication)
	})

	r.With(authMW, actorMW).Post("/swipe", swipeHandler.Handle)

	r.Route("/matches", func(r chi.Router) {
		r.Use(authMW, actorMW)
		r.Get("/", matchesHandler.List)
		r.Post("/{id}/viewed", matchesHandler.MarkViewed)
		r.Post("/{id}/unmatch", matchesHandler.Unmatch)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(authMW, actorMW)
		r.Get("/", messagesHandler.List)
		r.Post("/", messagesHandler.Post)
	})
}
