// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
	dashboardfeature "github.com/dalemusser/accidentdash/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/accidentdash/internal/app/features/errors"
	healthfeature "github.com/dalemusser/accidentdash/internal/app/features/health"
	homefeature "github.com/dalemusser/accidentdash/internal/app/features/home"
	loginfeature "github.com/dalemusser/accidentdash/internal/app/features/login"
	logoutfeature "github.com/dalemusser/accidentdash/internal/app/features/logout"
	plotfeature "github.com/dalemusser/accidentdash/internal/app/features/plot"
	registerfeature "github.com/dalemusser/accidentdash/internal/app/features/register"
	userstore "github.com/dalemusser/accidentdash/internal/app/store/users"
	"github.com/dalemusser/accidentdash/internal/app/system/auth"
	"github.com/dalemusser/accidentdash/internal/app/system/ratelimit"
	"github.com/dalemusser/accidentdash/internal/app/system/reqlog"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It boots the template engine, builds
// the session manager, and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, sessionMgr, logger, viewdata.Render), nil
}

// newRouter mounts the features. render is handed to every page so tests
// can route a full request without the template engine.
func newRouter(appCfg AppConfig, deps DBDeps, sessionMgr *auth.SessionManager, logger *zap.Logger, render viewdata.RenderFunc) chi.Router {
	users := userstore.New(deps.SQL)

	// LoadSessionUser re-reads the user on every request, so a deleted
	// row signs the browser out.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(users, logger))

	errLog := errorsfeature.NewErrorLogger(logger)
	errLog.Render = render

	loader := dataset.NewLoader(appCfg.DatasetCacheSize, appCfg.DatasetCacheTTL, logger)
	if loader.Caching() {
		logger.Info("dataset cache enabled",
			zap.Int("size", appCfg.DatasetCacheSize),
			zap.Duration("ttl", appCfg.DatasetCacheTTL))
	}

	r := chi.NewRouter()

	r.Use(reqlog.Middleware(logger))

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(users, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Charts
	homeHandler := homefeature.NewHandler(loader, homefeature.Files{
		Accidents: appCfg.DataPath(appCfg.AccidentsFile),
		Districts: appCfg.DataPath(appCfg.DistrictsFile),
	}, errLog, logger)
	homeHandler.Render = render
	r.Mount("/", homefeature.Routes(homeHandler))

	plotHandler := plotfeature.NewHandler(loader, appCfg.DataPath(appCfg.ClusterFile), appCfg.ClusterOptions(), errLog, logger)
	plotHandler.Render = render
	r.Mount("/plot", plotfeature.Routes(plotHandler))

	// Authentication
	registerHandler := registerfeature.NewHandler(users, errLog, logger)
	registerHandler.Render = render
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	loginHandler.Limiter = ratelimit.NewLoginLimiter(appCfg.LoginLimits())
	loginHandler.Render = render
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	dashboardHandler := dashboardfeature.NewHandler(logger)
	dashboardHandler.Render = render
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	return r
}
