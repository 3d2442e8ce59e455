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

// MentorHandler is the mentor-facing surface: slot authoring plus the
// mentor's own slot and booking listings.
type MentorHandler struct {
	Slots    service.SlotService
	Queries  service.QueryService
	Validate *validator.Validate
}

func NewMentorHandler(slots service.SlotService, queries service.QueryService, v *validator.Validate) *MentorHandler {
	return &MentorHandler{Slots: slots, Queries: queries, Validate: v}
}

func (h *MentorHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireRole(domain.RoleMentor))
	r.Get("/slots", h.listSlots)
	r.Post("/slots", h.createSlot)
	r.Delete("/slots/{id}", h.cancelSlot)
	r.Get("/bookings", h.listBookings)
	return r
}

func (h *MentorHandler) listSlots(w http.ResponseWriter, r *http.Request) {
	ident := middleware.Identity(r)
	slots, err := h.Queries.MentorSlots(r.Context(), ident.ID)
	if err != nil {
		response.Domain(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

func (h *MentorHandler) createSlot(w http.ResponseWriter, r *http.Request) {
	var in domain.SlotCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := h.Validate.Struct(&in); err != nil {
		response.BadRequest(w, "invalid input")
		return
	}

	ident := middleware.Identity(r)
	slot, err := h.Slots.Create(r.Context(), *ident, &in)
	if err != nil {
		response.Domain(w, err)
		return
	}

	logger.InfoContext(r.Context(), "slot published", "slot_id", slot.ID)
	respondJSON(w, http.StatusCreated, slot)
}

func (h *MentorHandler) cancelSlot(w http.ResponseWriter, r *http.Request) {
	ident := middleware.Identity(r)
	if err := h.Slots.Cancel(r.Context(), *ident, chi.URLParam(r, "id")); err != nil {
		response.Domain(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MentorHandler) listBookings(w http.ResponseWriter, r *http.Request) {
	ident := middleware.Identity(r)
	bookings, err := h.Queries.MentorBookings(r.Context(), ident.ID)
	if err != nil {
		response.Domain(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}
