// AngelaMos | 2026
// handler.go

package authz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/deenhub-app/admin-backend/internal/config"
	"github.com/deenhub-app/admin-backend/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	app       config.AppConfig
}

func NewHandler(service *Service, app config.AppConfig) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		app:       app,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/verify-admin", h.VerifyAdmin)
		r.Get("/callback", h.Callback)
	})
}

type VerifyAdminRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type VerifyAdminResponse struct {
	IsAdmin   bool       `json:"isAdmin"`
	AdminUser *AdminUser `json:"adminUser"`
}

// VerifyAdmin answers 200 for both allow and deny; a missing admin
// row is not an error condition.
func (h *Handler) VerifyAdmin(w http.ResponseWriter, r *http.Request) {
	var req VerifyAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, "User ID is required")
		return
	}

	decision := h.service.Verify(r.Context(), req.UserID)

	core.OK(w, VerifyAdminResponse{
		IsAdmin:   decision.Allowed,
		AdminUser: decision.AdminUser,
	})
}

// Callback is the landing point of the provider's redirect flow:
// exchange the code, gate the subject, redirect accordingly.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.app.LoginURL, http.StatusTemporaryRedirect)
		return
	}

	outcome, err := h.service.HandleCallback(r.Context(), code)
	if err != nil {
		http.Redirect(
			w,
			r,
			h.app.LoginURL+"?error=auth_callback_error",
			http.StatusTemporaryRedirect,
		)
		return
	}

	if !outcome.Allowed {
		http.Redirect(w, r, h.app.UnauthorizedURL, http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, h.app.DashboardURL, http.StatusTemporaryRedirect)
}
