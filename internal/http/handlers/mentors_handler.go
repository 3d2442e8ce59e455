package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grovebook/mentor-sessions/internal/http/response"
	"github.com/grovebook/mentor-sessions/internal/service"
)

// MentorsHandler is the public directory: browsing mentors and their
// bookable slots needs no session.
type MentorsHandler struct {
	Queries service.QueryService
}

func NewMentorsHandler(queries service.QueryService) *MentorsHandler {
	return &MentorsHandler{Queries: queries}
}

func (h *MentorsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.detail)
	return r
}

func (h *MentorsHandler) list(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.Queries.Mentors(r.Context())
	if err != nil {
		response.Domain(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mentors)
}

func (h *MentorsHandler) detail(w http.ResponseWriter, r *http.Request) {
	profile, slots, err := h.Queries.MentorDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Domain(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"mentor": profile,
		"slots":  slots,
	})
}
