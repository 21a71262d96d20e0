package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"suitestay/internal/reservations/availability"
	"suitestay/pkg/clock"
	"suitestay/pkg/daterange"
	apperrors "suitestay/pkg/errors"
	"suitestay/pkg/logger"
	"suitestay/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ReservationValidator runs the booking-request checks in order,
// stopping at the first failure: well-formed range, lead time, overlap
// against the availability index, identity completeness. It never
// touches the store; the index it is handed carries the store state.
type ReservationValidator struct {
	validate        *validator.Validate
	clock           clock.Clock
	minimumStayDays int
	log             *logger.Logger
}

func NewReservationValidator(clk clock.Clock, minimumStayDays int, log *logger.Logger) *ReservationValidator {
	return &ReservationValidator{
		validate:        validator.New(),
		clock:           clk,
		minimumStayDays: minimumStayDays,
		log:             log,
	}
}

// Validate returns a ready-to-persist draft (no ID, no CreatedAt) or
// the first failing check's error. Pure with respect to store state: a
// second call over the same index yields the same result.
func (v *ReservationValidator) Validate(req *model.BookingRequest, customerID string, idx *availability.Index) (*model.Reservation, error) {
	rng, err := daterange.Parse(req.EntryDate, req.ReleaseDate, v.minimumStayDays)
	if err != nil {
		return nil, err
	}

	today := v.clock.Today()
	if !rng.Entry.After(today) {
		return nil, apperrors.LeadTime("entry date must be later than today")
	}

	if !idx.IsFree(rng) {
		return nil, apperrors.Conflict("requested dates overlap an existing reservation", idx.Conflicts(rng))
	}

	if req.SuiteID == "" || customerID == "" {
		return nil, apperrors.IncompleteRequest("suite and customer references are required")
	}

	draft := &model.Reservation{
		SuiteID:     req.SuiteID,
		CustomerID:  customerID,
		EntryDate:   rng.Entry,
		ReleaseDate: rng.Release,
	}

	if err := v.validate.Struct(draft); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			translated := v.translateValidationErrors(validationErrs)
			return nil, apperrors.Validation("Reservation validation failed", map[string]any{"error": translated.Error()})
		}
		return nil, apperrors.Internal("Failed to validate reservation", err)
	}

	return draft, nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
