package httpx

import (
	"log/slog"
	"net/http"
)

// UserAdminService combines the admin operations with the live privilege
// check used by the RequireAdmin middleware.
type UserAdminService interface {
	UserServiceInterface
	AdminChecker
}

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Users        UserAdminService
	Render       Renderer     // Optional; defaults to the inline HTML renderer
	CookieDomain string
	Logger       *slog.Logger // Optional
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := services.Render
	if renderer == nil {
		renderer = NewHTMLRenderer(logger)
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Render:       renderer,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	adminHandlers := &AdminHandlers{
		Svc:    services.Users,
		Render: renderer,
		Logger: logger,
	}

	requireAuth := RequireAuth(services.Auth)
	requireAdmin := RequireAdmin(services.Auth, services.Users)

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", OptionalAuth(services.Auth)(http.HandlerFunc(authHandlers.Home)))
	mux.HandleFunc("GET /signup", authHandlers.SignupForm)
	mux.HandleFunc("POST /submitSignup", authHandlers.SubmitSignup)
	mux.HandleFunc("GET /login", authHandlers.LoginForm)
	mux.HandleFunc("POST /submitLogin", authHandlers.SubmitLogin)
	mux.Handle("GET /members", requireAuth(http.HandlerFunc(authHandlers.Members)))
	mux.HandleFunc("GET /logout", authHandlers.Logout)
	mux.Handle("GET /admin", requireAdmin(http.HandlerFunc(adminHandlers.List)))
	mux.Handle("POST /makeAdmin", requireAdmin(http.HandlerFunc(adminHandlers.MakeAdmin)))
	mux.HandleFunc("GET /api/session", authHandlers.Status)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	// Anything unmatched falls through to a plain 404 page.
	mux.Handle("/", notFoundHandler(renderer))

	return mux
}

func notFoundHandler(renderer Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		renderer.Render(w, http.StatusNotFound, "notfound", pageData{Title: "Not Found"})
	})
}
