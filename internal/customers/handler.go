package customers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/superbiz-erp/superbiz-erp/internal/shared"
	"github.com/superbiz-erp/superbiz-erp/internal/view"
)

// Handler manages the customer listing and creation endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers customer routes. The session gate is applied by
// the caller.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/customer", h.list)
	r.Post("/cusform", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, total, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list customers failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/customer.html", map[string]any{
		"Customers":      customers,
		"TotalCustomers": total,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := CreateCustomerForm{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		FatherName: strings.TrimSpace(r.PostFormValue("father_name")),
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Phone:      strings.TrimSpace(r.PostFormValue("phone")),
		Whatsapp:   strings.TrimSpace(r.PostFormValue("whatsapp")),
		Address:    strings.TrimSpace(r.PostFormValue("address")),
		State:      strings.TrimSpace(r.PostFormValue("state")),
		Pincode:    strings.TrimSpace(r.PostFormValue("pincode")),
	}

	if err := h.validator.Struct(form); err != nil {
		h.redirectWithFlash(w, r, "danger", "Name and Phone are required!")
		return
	}

	if _, err := h.service.Create(r.Context(), form); err != nil {
		h.logger.Error("create customer failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.redirectWithFlash(w, r, "success", "Customer added successfully!")
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
	viewData := view.TemplateData{Title: "Customers", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, User: user, Data: data}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, "/customer", http.StatusSeeOther)
}

// ListForTest exposes the listing handler for tests.
func (h *Handler) ListForTest(w http.ResponseWriter, r *http.Request) {
	h.list(w, r)
}

// CreateForTest exposes the creation handler for tests.
func (h *Handler) CreateForTest(w http.ResponseWriter, r *http.Request) {
	h.create(w, r)
}
