// AngelaMos | 2026
// handler.go

package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/send-notification", h.Send)
	r.Post("/send-suspension-notification", h.SendSuspension)
	r.Get("/get-user-token", h.UserToken)
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, "Title and body are required")
		return
	}

	result, err := h.service.Send(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "token or topic is required for this target")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SendResponse{
		Success: true,
		Message: "Notification dispatched",
		Details: result,
	})
}

func (h *Handler) SendSuspension(w http.ResponseWriter, r *http.Request) {
	var req SuspensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.SendSuspension(r.Context(), req); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Device token")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SendResponse{
		Success: true,
		Message: "Suspension notification sent",
	})
}

// UserToken answers 200 with a null token when the user has no device;
// the admin UI treats an absent token as a disabled send button, not
// an error state.
func (h *Handler) UserToken(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		core.BadRequest(w, "user_id is required")
		return
	}

	token, err := h.service.UserToken(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.OK(w, UserTokenResponse{Success: true, Token: nil})
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserTokenResponse{Success: true, Token: &token})
}
