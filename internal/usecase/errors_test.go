package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateKeyError(t *testing.T) {
	err := pgError("23505", "appointments_appointment_number_key")

	if !isDuplicateKeyError(err, "appointment_number") {
		t.Error("expected unique violation on appointment_number to match")
	}
	if isDuplicateKeyError(err, "email") {
		t.Error("constraint name must be part of the match")
	}
	if isDuplicateKeyError(errors.New("plain error"), "appointment_number") {
		t.Error("non-pg errors must not match")
	}
}

func TestIsDuplicateKeyErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", pgError("23505", "users_email_key"))
	if !isDuplicateKeyError(wrapped, "email") {
		t.Error("expected wrapped pg error to match")
	}
}

func TestIsForeignKeyError(t *testing.T) {
	err := pgError("23503", "appointments_patient_id_fkey")

	if !isForeignKeyError(err, "patient") {
		t.Error("expected foreign key violation on patient to match")
	}
	if isForeignKeyError(pgError("23505", "appointments_patient_id_fkey"), "patient") {
		t.Error("unique violations must not match as foreign key errors")
	}
}

func TestIsExclusionError(t *testing.T) {
	err := pgError("23P01", "appointments_no_overlap")

	if !isExclusionError(err, "no_overlap") {
		t.Error("expected exclusion violation to match")
	}
	if isExclusionError(pgError("23505", "appointments_no_overlap"), "no_overlap") {
		t.Error("unique violations must not match as exclusion errors")
	}
}
