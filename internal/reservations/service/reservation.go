package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"suitestay/internal/reservations/availability"
	reserrors "suitestay/internal/reservations/errors"
	"suitestay/internal/reservations/policy"
	"suitestay/internal/reservations/repository"
	"suitestay/internal/reservations/validator"
	"suitestay/pkg/clock"
	"suitestay/pkg/config"
	"suitestay/pkg/daterange"
	apperrors "suitestay/pkg/errors"
	"suitestay/pkg/events"
	"suitestay/pkg/identity"
	"suitestay/pkg/model"
)

type ReservationService interface {
	RequestBooking(ctx context.Context, req *model.BookingRequest, principal identity.Principal) (*model.Reservation, error)
	RequestCancellation(ctx context.Context, reservationID string, principal identity.Principal) error
	GetByID(ctx context.Context, id string, principal identity.Principal) (*model.Reservation, error)
	ListByCustomer(ctx context.Context, customerID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	IsSuiteFreeOn(ctx context.Context, suiteID, rawEntry, rawRelease string) (bool, error)
	SuiteCalendar(ctx context.Context, suiteID string) ([]time.Time, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.SuiteLockRepository
	validator *validator.ReservationValidator
	policy    policy.CancellationPolicy
	clock     clock.Clock
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.SuiteLockRepository,
	resValidator *validator.ReservationValidator,
	cancellationPolicy policy.CancellationPolicy,
	clk clock.Clock,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: resValidator,
		policy:    cancellationPolicy,
		clock:     clk,
		publisher: publisher,
		cfg:       cfg,
	}
}

// RequestBooking validates the request against a fresh read of the
// suite's reservations, then performs the conditional insert: a
// per-suite advisory lock plus a transaction that re-reads the suite
// and re-checks overlap before inserting. Two concurrent requests for
// overlapping dates cannot both commit.
func (s *reservationService) RequestBooking(ctx context.Context, req *model.BookingRequest, principal identity.Principal) (*model.Reservation, error) {
	existing, err := s.repo.FindBySuite(ctx, req.SuiteID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reservations for suite", err)
	}

	idx := availability.Build(req.SuiteID, existing)
	draft, err := s.validator.Validate(req, principal.ID, idx)
	if err != nil {
		s.cfg.Log.Warn("Booking request rejected",
			"suite_id", req.SuiteID,
			"customer_id", principal.ID,
			"error", err,
		)
		return nil, err
	}

	lockID, err := s.acquireSuiteLock(ctx, draft.SuiteID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSuiteLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release suite lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// The store may have changed between the validation read and
		// here; the overlap check has to run again on transactional
		// state before the insert counts.
		current, err := s.repo.FindBySuite(sessCtx, draft.SuiteID)
		if err != nil {
			return apperrors.Internal("Failed to re-check suite availability", err)
		}

		rng := draft.Range()
		currentIdx := availability.Build(draft.SuiteID, current)
		if !currentIdx.IsFree(rng) {
			return apperrors.Conflict("requested dates overlap an existing reservation", currentIdx.Conflicts(rng))
		}

		if err := s.repo.Create(sessCtx, draft); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book suite",
			"suite_id", draft.SuiteID,
			"customer_id", draft.CustomerID,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Reservation created",
		"id", draft.ID,
		"suite_id", draft.SuiteID,
		"customer_id", draft.CustomerID,
		"entry_date", draft.EntryDate.Format(daterange.Layout),
		"release_date", draft.ReleaseDate.Format(daterange.Layout),
	)
	s.publish(ctx, events.TypeReservationCreated, draft)

	return draft, nil
}

// RequestCancellation deletes the reservation when the requester owns
// it and the entry date is still outside the notice window.
func (s *reservationService) RequestCancellation(ctx context.Context, reservationID string, principal identity.Principal) error {
	if reservationID == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return s.mapLookupError(err, reservationID)
	}

	if reservation.CustomerID != principal.ID {
		s.cfg.Log.Warn("Cancellation denied: requester does not own reservation",
			"id", reservationID,
			"customer_id", principal.ID,
		)
		return apperrors.Forbidden("only the reservation's owner may cancel it")
	}

	if !s.policy.CanCancel(reservation.EntryDate, s.clock.Today()) {
		return apperrors.PolicyViolation(fmt.Sprintf(
			"cancellation requires at least %d day(s) notice before the entry date", s.policy.MinimumNoticeDays))
	}

	if err := s.repo.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", reservationID)
		}
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.cfg.Log.Info("Reservation cancelled",
		"id", reservationID,
		"suite_id", reservation.SuiteID,
		"customer_id", reservation.CustomerID,
	)
	s.publish(ctx, events.TypeReservationCancelled, reservation)

	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string, principal identity.Principal) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	if reservation.CustomerID != principal.ID && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("reservation belongs to another customer")
	}

	return reservation, nil
}

func (s *reservationService) ListByCustomer(ctx context.Context, customerID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if customerID == "" {
		return nil, 0, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByCustomer(ctx, customerID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "customer_id", customerID, "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByCustomer(ctx, customerID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "customer_id", customerID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

// IsSuiteFreeOn answers the calendar widget's availability probe. Read
// only; no lock, no transaction.
func (s *reservationService) IsSuiteFreeOn(ctx context.Context, suiteID, rawEntry, rawRelease string) (bool, error) {
	if suiteID == "" {
		return false, apperrors.InvalidInput("Suite ID cannot be empty")
	}

	rng, err := daterange.Parse(rawEntry, rawRelease, s.cfg.MinimumStayDays)
	if err != nil {
		return false, err
	}

	existing, err := s.repo.FindBySuite(ctx, suiteID)
	if err != nil {
		return false, apperrors.Internal("Failed to load reservations for suite", err)
	}

	return availability.Build(suiteID, existing).IsFree(rng), nil
}

func (s *reservationService) SuiteCalendar(ctx context.Context, suiteID string) ([]time.Time, error) {
	if suiteID == "" {
		return nil, apperrors.InvalidInput("Suite ID cannot be empty")
	}

	existing, err := s.repo.FindBySuite(ctx, suiteID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reservations for suite", err)
	}

	return availability.Build(suiteID, existing).BlockedDays(), nil
}

// --- Helpers ---

func (s *reservationService) mapLookupError(err error, id string) error {
	if errors.Is(err, reserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	if errors.Is(err, reserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid reservation ID format")
	}
	return apperrors.Internal("Failed to retrieve reservation", err)
}

func (s *reservationService) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	event := events.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		SuiteID:       reservation.SuiteID,
		CustomerID:    reservation.CustomerID,
		EntryDate:     reservation.EntryDate.Format(daterange.Layout),
		ReleaseDate:   reservation.ReleaseDate.Format(daterange.Layout),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}

func (s *reservationService) acquireSuiteLock(ctx context.Context, suiteID string) (string, error) {
	lockID := fmt.Sprintf("suite_lock_%s", suiteID)

	lock := &repository.SuiteLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SuiteLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This suite is currently being booked by another request. Please try again.", nil)
		}
		return "", apperrors.Internal("Failed to acquire suite lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseSuiteLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
