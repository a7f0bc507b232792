package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/domain"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/service"
	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/httpx"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/slogx"

	_ "github.com/experience-kok/kok-api-admin-server-sub001/api/admin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TokenService   *service.TokenService
	AuthService    *service.AuthService
	UserService    *service.UserService
	ContentService *service.ContentService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
}

// ApplyRoutes registers all routes. Call after the service fields are set.
func (r *Router) ApplyRoutes() {
	// The bearer step only enriches the request context; route policy below
	// decides whether an unauthenticated request gets through.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.BearerMiddleware(r.TokenService),
	}

	r.registerAuth()
	r.registerContent()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						KOK Admin API
//	@version					0.1.0
//	@description				Administration backend providing credential login, HS256 access/refresh token pairs with rotation and revocation, and content moderation endpoints.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (credential guessing surface)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - strict rate limit by IP (unauthenticated token surface)
	refreshHandler := &RefreshHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - requires a live access token
	logoutHandler := &LogoutHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RequirePrincipal(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /me - requires a live access token
	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(meHandler,
			httpx.RequirePrincipal(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerContent() {
	campaigns := &CampaignsHandler{ContentService: r.ContentService}
	notifications := &NotificationsHandler{ContentService: r.ContentService}
	banners := &BannersHandler{ContentService: r.ContentService}

	admin := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.RequirePrincipal(),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/campaigns", admin(http.HandlerFunc(campaigns.HandleList)))
	r.Mux.Handle("PATCH /v1/campaigns/{id}/status", admin(http.HandlerFunc(campaigns.HandleSetStatus)))
	r.Mux.Handle("GET /v1/notifications", admin(notifications))
	r.Mux.Handle("GET /v1/banners", admin(banners))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
