package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "suitestay/pkg/errors"
	"suitestay/pkg/identity"
	"suitestay/pkg/logger"
	"suitestay/pkg/model"
)

type mockReservationService struct {
	RequestBookingFn      func(ctx context.Context, req *model.BookingRequest, principal identity.Principal) (*model.Reservation, error)
	RequestCancellationFn func(ctx context.Context, reservationID string, principal identity.Principal) error
	GetByIDFn             func(ctx context.Context, id string, principal identity.Principal) (*model.Reservation, error)
	ListByCustomerFn      func(ctx context.Context, customerID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	IsSuiteFreeOnFn       func(ctx context.Context, suiteID, rawEntry, rawRelease string) (bool, error)
	SuiteCalendarFn       func(ctx context.Context, suiteID string) ([]time.Time, error)
}

func (m *mockReservationService) RequestBooking(ctx context.Context, req *model.BookingRequest, principal identity.Principal) (*model.Reservation, error) {
	return m.RequestBookingFn(ctx, req, principal)
}

func (m *mockReservationService) RequestCancellation(ctx context.Context, reservationID string, principal identity.Principal) error {
	return m.RequestCancellationFn(ctx, reservationID, principal)
}

func (m *mockReservationService) GetByID(ctx context.Context, id string, principal identity.Principal) (*model.Reservation, error) {
	return m.GetByIDFn(ctx, id, principal)
}

func (m *mockReservationService) ListByCustomer(ctx context.Context, customerID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	return m.ListByCustomerFn(ctx, customerID, limit, offset)
}

func (m *mockReservationService) IsSuiteFreeOn(ctx context.Context, suiteID, rawEntry, rawRelease string) (bool, error) {
	return m.IsSuiteFreeOnFn(ctx, suiteID, rawEntry, rawRelease)
}

func (m *mockReservationService) SuiteCalendar(ctx context.Context, suiteID string) ([]time.Time, error) {
	return m.SuiteCalendarFn(ctx, suiteID)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func newTestRouter(svc *mockReservationService) *httprouter.Router {
	router := httprouter.New()
	NewReservationHandler(svc, testLogger()).RegisterRoutes(router)
	return router
}

func authenticated(r *http.Request, customerID string) *http.Request {
	ctx := identity.WithPrincipal(r.Context(), identity.Principal{ID: customerID, Role: identity.RoleCustomer})
	return r.WithContext(ctx)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	booking := `{"suite_id":"507f1f77bcf86cd799439011","entry_date":"2024-06-13","release_date":"2024-06-15"}`

	tests := []struct {
		name       string
		body       string
		principal  string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       booking,
			principal:  "customer-1",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "overlap",
			body:       booking,
			principal:  "customer-1",
			serviceErr: apperrors.Conflict("requested dates overlap an existing reservation", []time.Time{day(2024, 6, 13)}),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
		},
		{
			name:       "entry not after today",
			body:       booking,
			principal:  "customer-1",
			serviceErr: apperrors.LeadTime("entry date must be later than today"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeLeadTime,
		},
		{
			name:       "malformed body",
			body:       `{"suite_id":`,
			principal:  "customer-1",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "no principal",
			body:       booking,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apperrors.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				RequestBookingFn: func(_ context.Context, req *model.BookingRequest, principal identity.Principal) (*model.Reservation, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &model.Reservation{
						ID:          "res-1",
						SuiteID:     req.SuiteID,
						CustomerID:  principal.ID,
						EntryDate:   day(2024, 6, 13),
						ReleaseDate: day(2024, 6, 15),
					}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(tt.body))
			if tt.principal != "" {
				req = authenticated(req, tt.principal)
			}
			rec := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				var resp struct {
					Code string `json:"code"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid error body: %v", err)
				}
				if resp.Code != tt.wantCode {
					t.Errorf("error code = %s, want %s", resp.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestCreate_ConflictBodyCarriesDates(t *testing.T) {
	svc := &mockReservationService{
		RequestBookingFn: func(_ context.Context, _ *model.BookingRequest, _ identity.Principal) (*model.Reservation, error) {
			return nil, apperrors.Conflict("requested dates overlap an existing reservation",
				[]time.Time{day(2024, 6, 12), day(2024, 6, 13)})
		},
	}

	req := authenticated(httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		bytes.NewBufferString(`{"suite_id":"s","entry_date":"2024-06-12","release_date":"2024-06-14"}`)), "customer-1")
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	var resp struct {
		Details struct {
			ConflictingDates []string `json:"conflicting_dates"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	want := []string{"2024-06-12", "2024-06-13"}
	if len(resp.Details.ConflictingDates) != 2 ||
		resp.Details.ConflictingDates[0] != want[0] ||
		resp.Details.ConflictingDates[1] != want[1] {
		t.Errorf("conflicting_dates = %v, want %v", resp.Details.ConflictingDates, want)
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "cancelled", wantStatus: http.StatusNoContent},
		{
			name:       "inside notice window",
			serviceErr: apperrors.PolicyViolation("cancellation requires at least 3 day(s) notice before the entry date"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "not the owner",
			serviceErr: apperrors.Forbidden("only the reservation's owner may cancel it"),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown reservation",
			serviceErr: apperrors.NotFoundWithID("Reservation", "res-9"),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			svc := &mockReservationService{
				RequestCancellationFn: func(_ context.Context, reservationID string, _ identity.Principal) error {
					gotID = reservationID
					return tt.serviceErr
				},
			}

			req := authenticated(httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/id/res-9", nil), "customer-1")
			rec := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if gotID != "res-9" {
				t.Errorf("reservation ID = %s, want res-9", gotID)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	svc := &mockReservationService{
		GetByIDFn: func(_ context.Context, id string, principal identity.Principal) (*model.Reservation, error) {
			return &model.Reservation{ID: id, CustomerID: principal.ID}, nil
		},
	}

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/reservations/id/res-1", nil), "customer-1")
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Data.ID != "res-1" {
		t.Errorf("data.id = %s, want res-1", resp.Data.ID)
	}
}

func TestList(t *testing.T) {
	svc := &mockReservationService{
		ListByCustomerFn: func(_ context.Context, customerID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
			if customerID != "customer-1" {
				t.Errorf("customer ID = %s, want customer-1", customerID)
			}
			return []*model.Reservation{{ID: "res-1"}, {ID: "res-2"}}, 5, nil
		},
	}

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v1/reservations?limit=2&offset=0", nil), "customer-1")
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		TotalCount int64 `json:"total_count"`
		Limit      int   `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.TotalCount != 5 || resp.Limit != 2 {
		t.Errorf("total_count = %d, limit = %d, want 5 and 2", resp.TotalCount, resp.Limit)
	}
}

func TestCalendar(t *testing.T) {
	svc := &mockReservationService{
		SuiteCalendarFn: func(_ context.Context, suiteID string) ([]time.Time, error) {
			return []time.Time{day(2024, 6, 10), day(2024, 6, 11)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suites/suite-1/availability", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data availabilityResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Data.SuiteID != "suite-1" {
		t.Errorf("suite_id = %s, want suite-1", resp.Data.SuiteID)
	}
	want := []string{"2024-06-10", "2024-06-11"}
	if len(resp.Data.BlockedDays) != 2 || resp.Data.BlockedDays[0] != want[0] || resp.Data.BlockedDays[1] != want[1] {
		t.Errorf("blocked_days = %v, want %v", resp.Data.BlockedDays, want)
	}
}

func TestFree(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		free       bool
		wantStatus int
	}{
		{name: "free range", target: "/api/v1/suites/suite-1/free?entry=2024-06-13&release=2024-06-15", free: true, wantStatus: http.StatusOK},
		{name: "occupied range", target: "/api/v1/suites/suite-1/free?entry=2024-06-10&release=2024-06-12", free: false, wantStatus: http.StatusOK},
		{name: "missing release", target: "/api/v1/suites/suite-1/free?entry=2024-06-13", wantStatus: http.StatusBadRequest},
		{name: "missing both", target: "/api/v1/suites/suite-1/free", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				IsSuiteFreeOnFn: func(_ context.Context, _, _, _ string) (bool, error) {
					return tt.free, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp struct {
				Data freeResponse `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if resp.Data.Free != tt.free {
				t.Errorf("free = %v, want %v", resp.Data.Free, tt.free)
			}
		})
	}
}
