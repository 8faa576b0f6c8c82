package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/todo-server/internal/api/http/handler"
	"github.com/dtroode/todo-server/internal/api/http/middleware"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// MaxBodyBytes limits request bodies.
const MaxBodyBytes = 1 << 20

// Router represents the HTTP router for the todo API.
type Router struct {
	authService    handler.AuthService
	authenticator  middleware.Authenticator
	todoService    handler.TodoService
	contextManager model.ContextManager
	cookies        handler.CookieConfig
	corsOrigins    []string
	logger         *logger.Logger
}

// Config holds the router settings that come from configuration.
type Config struct {
	Cookies     handler.CookieConfig
	CORSOrigins []string
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	authenticator middleware.Authenticator,
	todoService handler.TodoService,
	contextManager model.ContextManager,
	cfg Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		authenticator:  authenticator,
		todoService:    todoService,
		contextManager: contextManager,
		cookies:        cfg.Cookies,
		corsOrigins:    cfg.CORSOrigins,
		logger:         logger,
	}
}

// Register builds the handler with all routes and middleware.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	recoverer := middleware.NewRecover(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)
	errs := handler.NewErrors(r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		logging.Handle,
		recoverer.Handle,
		cors.Handler(cors.Options{
			AllowedOrigins:   r.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		chimw.RequestSize(MaxBodyBytes),
	)
	mux.NotFound(errs.NotFound)
	mux.MethodNotAllowed(errs.MethodNotAllowed)

	r.registerAuthRoutes(mux, errs, authenticate)
	r.registerTodoRoutes(mux, errs, authenticate)

	return mux
}

func (r *Router) registerAuthRoutes(mux chi.Router, errs *handler.Errors, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.cookies, r.logger)

	mux.Route("/auth", func(auth chi.Router) {
		auth.Post("/signup", errs.Wrap(authHandler.Signup))
		auth.Post("/login", errs.Wrap(authHandler.Login))
		auth.Post("/refresh", errs.Wrap(authHandler.Refresh))

		auth.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)
			protected.Post("/logout", errs.Wrap(authHandler.Logout))
			protected.Get("/me", errs.Wrap(authHandler.Me))
			protected.Post("/change-password", errs.Wrap(authHandler.ChangePassword))
			protected.Patch("/update-account", errs.Wrap(authHandler.UpdateAccount))
		})
	})
}

func (r *Router) registerTodoRoutes(mux chi.Router, errs *handler.Errors, authenticate *middleware.Authenticate) {
	todoHandler := handler.NewTodo(r.todoService, r.contextManager, r.logger)

	mux.Route("/todos", func(todos chi.Router) {
		todos.Use(authenticate.Handle)
		todos.Get("/", errs.Wrap(todoHandler.List))
		todos.Post("/add", errs.Wrap(todoHandler.Create))
		todos.Patch("/{todoId}", errs.Wrap(todoHandler.Update))
		todos.Delete("/{todoId}", errs.Wrap(todoHandler.Delete))
	})
}
