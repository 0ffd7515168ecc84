package shared

import (
	"log/slog"
	"net/http"
)

// RequireLogin is the session gate: it rejects requests whose session
// carries no identity, flashing a warning and redirecting to the login
// page instead of running the protected handler. It is applied once per
// protected route group so the check cannot drift between handlers.
func RequireLogin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil || sess.User() == "" {
				if sess != nil {
					sess.AddFlash(FlashMessage{Kind: "warning", Message: "Please login first!"})
				}
				if logger != nil {
					logger.Info("unauthenticated request rejected", slog.String("path", r.URL.Path))
				}
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
