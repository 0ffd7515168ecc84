package suppliers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/superbiz-erp/superbiz-erp/internal/shared"
	"github.com/superbiz-erp/superbiz-erp/internal/view"
)

// Handler manages the supplier listing and creation endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers supplier routes. The session gate is applied by
// the caller.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/supplier", h.list)
	r.Post("/add_supplier", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	suppliers, categories, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list suppliers failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/supplier.html", map[string]any{
		"Suppliers":  suppliers,
		"Categories": categories,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	supplier := Supplier{
		ContactType:  r.PostFormValue("contactType"),
		ContactID:    r.PostFormValue("contactId"),
		BusinessName: r.PostFormValue("businessName"),
		Prefix:       r.PostFormValue("prefix"),
		FirstName:    r.PostFormValue("firstName"),
		MiddleName:   r.PostFormValue("middleName"),
		LastName:     r.PostFormValue("lastName"),
		Mobile:       r.PostFormValue("mobile"),
		AltContact:   r.PostFormValue("altContact"),
		Landline:     r.PostFormValue("landline"),
		Email:        r.PostFormValue("email"),
		DOB:          r.PostFormValue("dob"),
	}

	if _, err := h.service.Create(r.Context(), supplier); err != nil {
		h.logger.Error("create supplier failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Supplier added successfully!"})
	}
	http.Redirect(w, r, "/supplier", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	user := ""
	if sess != nil {
		flash = sess.PopFlash()
		user = sess.User()
	}
	viewData := view.TemplateData{Title: "Suppliers", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, User: user, Data: data}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

// ListForTest exposes the listing handler for tests.
func (h *Handler) ListForTest(w http.ResponseWriter, r *http.Request) {
	h.list(w, r)
}

// CreateForTest exposes the creation handler for tests.
func (h *Handler) CreateForTest(w http.ResponseWriter, r *http.Request) {
	h.create(w, r)
}
