package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"suitestay/internal/reservations/service"
	"suitestay/pkg/daterange"
	apperrors "suitestay/pkg/errors"
	httputil "suitestay/pkg/http"
	"suitestay/pkg/identity"
	"suitestay/pkg/logger"
	"suitestay/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := identity.FromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	reservation, err := h.service.RequestBooking(r.Context(), &req, principal)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := identity.FromContext(r.Context())
	if !ok {
		h.writeError(w, "Cancel", apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := h.service.RequestCancellation(r.Context(), ps.ByName("id"), principal); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := identity.FromContext(r.Context())
	if !ok {
		h.writeError(w, "GetByID", apperrors.Unauthorized("Authentication required"))
		return
	}

	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"), principal)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

// List returns the authenticated customer's own reservations.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := identity.FromContext(r.Context())
	if !ok {
		h.writeError(w, "List", apperrors.Unauthorized("Authentication required"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	reservations, total, err := h.service.ListByCustomer(r.Context(), principal.ID, limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "error", err)
	}
}

type availabilityResponse struct {
	SuiteID     string   `json:"suite_id"`
	BlockedDays []string `json:"blocked_days"`
}

// Calendar returns the suite's occupied days for the booking widget.
func (h *ReservationHandler) Calendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	suiteID := ps.ByName("suiteId")

	blocked, err := h.service.SuiteCalendar(r.Context(), suiteID)
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	days := make([]string, len(blocked))
	for i, day := range blocked {
		days[i] = day.Format(daterange.Layout)
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{
		SuiteID:     suiteID,
		BlockedDays: days,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "error", err)
	}
}

type freeResponse struct {
	SuiteID     string `json:"suite_id"`
	EntryDate   string `json:"entry_date"`
	ReleaseDate string `json:"release_date"`
	Free        bool   `json:"free"`
	CheckedAt   string `json:"checked_at"`
}

// Free answers whether the requested range could be booked right now.
// A true here is a hint, not a hold: the conditional insert decides.
func (h *ReservationHandler) Free(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	suiteID := ps.ByName("suiteId")
	query := r.URL.Query()
	entry := query.Get("entry")
	release := query.Get("release")

	if entry == "" || release == "" {
		h.writeError(w, "Free", apperrors.InvalidInput("Both 'entry' and 'release' query parameters are required"))
		return
	}

	free, err := h.service.IsSuiteFreeOn(r.Context(), suiteID, entry, release)
	if err != nil {
		h.writeError(w, "Free", err)
		return
	}

	if err := httputil.WriteSuccess(w, freeResponse{
		SuiteID:     suiteID,
		EntryDate:   entry,
		ReleaseDate: release,
		Free:        free,
		CheckedAt:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Free", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.List)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.DELETE("/api/v1/reservations/id/:id", h.Cancel)
	router.GET("/api/v1/suites/:suiteId/availability", h.Calendar)
	router.GET("/api/v1/suites/:suiteId/free", h.Free)
}
