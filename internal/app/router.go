package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/superbiz-erp/superbiz-erp/internal/auth"
	"github.com/superbiz-erp/superbiz-erp/internal/customers"
	"github.com/superbiz-erp/superbiz-erp/internal/dashboard"
	"github.com/superbiz-erp/superbiz-erp/internal/observability"
	"github.com/superbiz-erp/superbiz-erp/internal/shared"
	"github.com/superbiz-erp/superbiz-erp/internal/suppliers"
	"github.com/superbiz-erp/superbiz-erp/internal/view"
	"github.com/superbiz-erp/superbiz-erp/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Templates        *view.Engine
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	CustomerHandler  *customers.Handler
	SupplierHandler  *suppliers.Handler
	Metrics          *observability.Metrics
}

// placeholderPages render a named view with no data dependency and no
// session check.
var placeholderPages = map[string]string{
	"/category":        "pages/category.html",
	"/purchase":        "pages/purchase.html",
	"/profit_of_sales": "pages/profit_of_sales.html",
	"/expenses":        "pages/expenses.html",
	"/report":          "pages/report.html",
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	// Protected surface: dashboard, stats API, and both entity modules sit
	// behind the one shared session gate.
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireLogin(params.Logger))
		params.DashboardHandler.MountRoutes(r)
		params.CustomerHandler.MountRoutes(r)
		params.SupplierHandler.MountRoutes(r)
	})

	for path, page := range placeholderPages {
		r.Get(path, renderStatic(params, page))
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

func renderStatic(params RouterParams, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		csrfToken, _ := params.CSRFManager.EnsureToken(r.Context(), sess)
		var flash *shared.FlashMessage
		user := ""
		if sess != nil {
			flash = sess.PopFlash()
			user = sess.User()
		}
		data := view.TemplateData{
			Title:       "SuperBiz",
			CSRFToken:   csrfToken,
			Flash:       flash,
			CurrentPath: r.URL.Path,
			User:        user,
		}
		if err := params.Templates.Render(w, page, data); err != nil {
			params.Logger.Error("render page", slog.String("page", page), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
