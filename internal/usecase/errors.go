package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared across usecases. Handlers map these to HTTP
// status codes; anything else surfaces as an internal server error.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is not active")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidCostFormat  = errors.New("invalid cost format, use a decimal string like 150.00")

	ErrPatientNotFound = errors.New("patient not found")
	ErrPatientInactive = errors.New("patient record is not active")

	ErrDoctorNotFound = errors.New("doctor not found")
	ErrDoctorInactive = errors.New("doctor account is not active")

	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotModifiable    = errors.New("appointment can no longer be modified")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentInPast           = errors.New("appointment date must be in the future")
	ErrSlotUnavailable             = errors.New("requested slot conflicts with an existing appointment")

	ErrTriageNotFound     = errors.New("triage assessment not found")
	ErrInvalidTemperature = errors.New("invalid temperature, use a decimal string like 37.5")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isExclusionError checks if the error is a PostgreSQL exclusion constraint
// violation. The appointments table carries an exclusion constraint over
// (doctor_id, occupied time range) so two concurrent inserts can never
// both land on the same slot, even when the read-side check passed for both.
func isExclusionError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23P01 = exclusion_violation
		if pgErr.Code == "23P01" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
