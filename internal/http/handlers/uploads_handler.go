package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/http/middleware"
	"github.com/grovebook/mentor-sessions/internal/http/response"
	"github.com/grovebook/mentor-sessions/internal/repo"
)

// UploadsHandler records attachment metadata and ownership. The bytes
// themselves go to the external object store; bookings only ever need
// the opaque id and the ownership check behind it.
type UploadsHandler struct {
	Uploads  repo.UploadStore
	Validate *validator.Validate
}

func NewUploadsHandler(uploads repo.UploadStore, v *validator.Validate) *UploadsHandler {
	return &UploadsHandler{Uploads: uploads, Validate: v}
}

func (h *UploadsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireIdentity)
	r.Post("/", h.create)
	return r
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func safeName(name string) string {
	s := unsafeNameChars.ReplaceAllString(name, "_")
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

func (h *UploadsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.UploadCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := h.Validate.Struct(&in); err != nil {
		response.BadRequest(w, "invalid input")
		return
	}

	ident := middleware.Identity(r)
	up := &domain.Upload{
		ID:       uuid.NewString(),
		OwnerID:  ident.ID,
		Filename: safeName(in.Filename),
	}
	up.URL = "/files/" + up.ID + "/" + up.Filename

	if err := h.Uploads.Create(r.Context(), up); err != nil {
		response.InternalError(w, "error saving upload")
		return
	}
	respondJSON(w, http.StatusCreated, up)
}
