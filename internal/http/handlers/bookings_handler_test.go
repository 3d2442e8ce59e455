package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/http/handlers"
	"github.com/grovebook/mentor-sessions/internal/http/middleware"
	"github.com/grovebook/mentor-sessions/internal/http/response"
	"github.com/grovebook/mentor-sessions/internal/platform/sessions"
	"github.com/grovebook/mentor-sessions/internal/repo/memory"
	"github.com/grovebook/mentor-sessions/internal/service"
	"github.com/grovebook/mentor-sessions/pkg/events"
)

type apiFixture struct {
	router   chi.Router
	slots    *memory.SlotStore
	bookings *memory.BookingStore
	auth     service.AuthService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	slots := memory.NewSlotStore()
	bookings := memory.NewBookingStore()
	users := memory.NewUserStore()
	uploads := memory.NewUploadStore()
	sessionStore := sessions.NewMemoryStore()
	bus := events.Noop{}

	authSvc := service.NewAuthService(users, sessionStore, bus, "test-secret", time.Hour)
	reservationSvc := service.NewReservationService(slots, bookings, uploads, bus)
	slotSvc := service.NewSlotService(slots, bus)
	querySvc := service.NewQueryService(slots, bookings, users, uploads)

	validate := validator.New()
	session := middleware.NewSessionMiddleware(authSvc)

	r := chi.NewRouter()
	r.Use(session.WithIdentity)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", handlers.NewAuthHandler(authSvc, validate, false).Routes())
		r.Mount("/mentors", handlers.NewMentorsHandler(querySvc).Routes())
		r.Mount("/mentor", handlers.NewMentorHandler(slotSvc, querySvc, validate).Routes())
		r.Mount("/bookings", handlers.NewBookingsHandler(reservationSvc, validate).Routes())
	})

	return &apiFixture{router: r, slots: slots, bookings: bookings, auth: authSvc}
}

// registerAndLogin creates an account and returns its session cookie.
func (f *apiFixture) registerAndLogin(t *testing.T, email, role string) *http.Cookie {
	t.Helper()
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &domain.RegisterReq{
		Email: email, Password: "correct horse", Role: role, DisplayName: email,
	})
	require.NoError(t, err)

	_, token, expiresAt, err := f.auth.Login(ctx, &domain.LoginReq{Email: email, Password: "correct horse"})
	require.NoError(t, err)

	return &http.Cookie{Name: middleware.CookieName, Value: token, Expires: expiresAt}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) addSlot(t *testing.T, id, mentorID string) {
	t.Helper()
	require.NoError(t, f.slots.Create(context.Background(), &domain.Slot{
		ID:       id,
		MentorID: mentorID,
		StartAt:  time.Now().Add(24 * time.Hour),
		EndAt:    time.Now().Add(25 * time.Hour),
		Status:   domain.SlotAvailable,
	}))
}

func TestClaimEndpoint_Success(t *testing.T) {
	f := newAPIFixture(t)
	cookie := f.registerAndLogin(t, "member@example.com", "member")
	f.addSlot(t, "s1", "mentor-1")

	rec := f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "s1", Note: "hi"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var b domain.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	require.Equal(t, "s1", b.SlotID)
	require.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestClaimEndpoint_ConflictIsDistinguishable(t *testing.T) {
	f := newAPIFixture(t)
	first := f.registerAndLogin(t, "first@example.com", "member")
	second := f.registerAndLogin(t, "second@example.com", "member")
	f.addSlot(t, "s1", "mentor-1")

	rec := f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "s1"}, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "s1"}, second)
	require.Equal(t, http.StatusConflict, rec.Code)

	var errRes response.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errRes))
	require.Equal(t, response.CodeConflict, errRes.Code)

	// a missing slot maps to a different outcome
	rec = f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "nope"}, second)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClaimEndpoint_AuthMapping(t *testing.T) {
	f := newAPIFixture(t)
	f.addSlot(t, "s1", "mentor-1")

	// anonymous
	rec := f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "s1"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// wrong role
	mentorCookie := f.registerAndLogin(t, "mentor@example.com", "mentor")
	rec = f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "s1"}, mentorCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// stale cookie
	rec = f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: "s1"},
		&http.Cookie{Name: middleware.CookieName, Value: "garbage"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimEndpoint_InvalidPayload(t *testing.T) {
	f := newAPIFixture(t)
	cookie := f.registerAndLogin(t, "member@example.com", "member")

	rec := f.do(t, http.MethodPost, "/api/bookings/", map[string]string{}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMentorSlotLifecycleOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	mentorCookie := f.registerAndLogin(t, "mentor@example.com", "mentor")
	memberCookie := f.registerAndLogin(t, "member@example.com", "member")

	rec := f.do(t, http.MethodPost, "/api/mentor/slots", domain.SlotCreateReq{
		Date: "2026-04-01", Time: "09:00", DurationMins: 60, Note: "office hours",
	}, mentorCookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var slot domain.Slot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&slot))

	// members cannot author slots
	rec = f.do(t, http.MethodPost, "/api/mentor/slots", domain.SlotCreateReq{
		Date: "2026-04-01", Time: "10:00", DurationMins: 60,
	}, memberCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// the member claims it, then the mentor sees the booking
	rec = f.do(t, http.MethodPost, "/api/bookings/", domain.ClaimReq{SlotID: slot.ID}, memberCookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/mentor/bookings", nil, mentorCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []domain.MentorBooking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bookings))
	require.Len(t, bookings, 1)
	require.Equal(t, slot.ID, bookings[0].SlotID)
	require.Equal(t, "member@example.com", bookings[0].UserEmail)

	// claimed slot cannot be cancelled anymore
	rec = f.do(t, http.MethodDelete, "/api/mentor/slots/"+slot.ID, nil, mentorCookie)
	require.Equal(t, http.StatusConflict, rec.Code)
}
