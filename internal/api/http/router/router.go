package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/userdir-server/internal/api/http/handler"
	"github.com/dtroode/userdir-server/internal/api/http/middleware"
	"github.com/dtroode/userdir-server/internal/logger"
	"github.com/dtroode/userdir-server/internal/model"
)

// Router composes the request pipeline and routes for the user API.
type Router struct {
	userService    handler.UserService
	contextManager model.ContextManager
	authToken      string
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	userService handler.UserService,
	contextManager model.ContextManager,
	authToken string,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		contextManager: contextManager,
		authToken:      authToken,
		logger:         logger,
	}
}

// Register builds the handler chain. Stages run outermost first:
// recovery, then authentication, then audit logging, then the handlers.
func (r *Router) Register() http.Handler {
	recoverMW := middleware.NewRecover(r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.authToken, r.logger)
	logging := middleware.NewLogging(r.contextManager, r.logger)

	users := handler.NewUsers(r.userService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(recoverMW.Handle, authenticate.Handle, logging.Handle)

	mux.Get("/health", users.Health)
	mux.Route("/users", func(mux chi.Router) {
		mux.Get("/", users.List)
		mux.Post("/", users.Create)
		mux.Get("/{id}", users.Get)
		mux.Put("/{id}", users.Update)
		mux.Delete("/{id}", users.Delete)
	})

	return mux
}
