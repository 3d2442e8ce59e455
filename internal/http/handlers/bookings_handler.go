package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/http/middleware"
	"github.com/grovebook/mentor-sessions/internal/http/response"
	"github.com/grovebook/mentor-sessions/internal/service"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

type BookingsHandler struct {
	Reservations service.ReservationService
	Validate     *validator.Validate
}

func NewBookingsHandler(res service.ReservationService, v *validator.Validate) *BookingsHandler {
	return &BookingsHandler{Reservations: res, Validate: v}
}

func (h *BookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireRole(domain.RoleMember))
	r.Post("/", h.claim)
	return r
}

func (h *BookingsHandler) claim(w http.ResponseWriter, r *http.Request) {
	var in domain.ClaimReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := h.Validate.Struct(&in); err != nil {
		response.BadRequest(w, "invalid input")
		return
	}

	ident := middleware.Identity(r)
	b, err := h.Reservations.Claim(r.Context(), *ident, &in)
	if err != nil {
		response.Domain(w, err)
		return
	}

	logger.InfoContext(r.Context(), "slot claimed", "booking_id", b.ID, "slot_id", b.SlotID)
	respondJSON(w, http.StatusCreated, b)
}
