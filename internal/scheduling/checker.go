// Package scheduling decides whether a candidate appointment slot is
// free on a doctor's calendar. It is a pure read-side check: the
// write-side correctness backstop is the overlap exclusion constraint
// on the appointments table.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreUnavailable wraps booking store read failures. The checker
// performs no retries and has no partial-result behavior.
var ErrStoreUnavailable = errors.New("booking store unavailable")

// BookingStore provides the read view the checker needs: all
// appointments for a doctor whose status occupies calendar time
// (scheduled, confirmed or in progress), optionally excluding one
// appointment id so an update does not conflict with itself.
type BookingStore interface {
	ActiveAppointments(ctx context.Context, doctorID uuid.UUID, excludeID *uuid.UUID) ([]entity.Appointment, error)
}

// Interval is a half-open time slot [Start, Start+Duration).
type Interval struct {
	Start           time.Time
	DurationMinutes int
}

// End returns the first instant after the interval. The end instant
// itself is free, which allows back-to-back bookings.
func (i Interval) End() time.Time {
	return i.Start.Add(time.Duration(i.DurationMinutes) * time.Minute)
}

// Overlaps reports whether two half-open intervals share any instant:
// s < e' && s' < e. Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End()) && other.Start.Before(i.End())
}

// Availability is the outcome of a conflict check. Conflicts holds the
// overlapping appointments so callers can surface alternate times.
type Availability struct {
	Available bool
	Conflicts []entity.Appointment
}

// NextFree returns the earliest instant at or after the candidate
// start when every conflicting appointment has ended. Zero time when
// the slot is available.
func (a *Availability) NextFree() time.Time {
	var next time.Time
	for i := range a.Conflicts {
		if end := a.Conflicts[i].End(); end.After(next) {
			next = end
		}
	}
	return next
}

// Checker performs the availability check against a BookingStore.
type Checker struct {
	store BookingStore
}

func NewChecker(store BookingStore) *Checker {
	return &Checker{store: store}
}

// CheckAvailability reports whether [start, start+durationMinutes) is
// free for the doctor. The caller is responsible for validating that
// the doctor exists, that the duration is positive and in range, and
// any not-in-the-past policy; none of that is re-checked here.
func (c *Checker) CheckAvailability(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*Availability, error) {
	candidate := Interval{Start: start, DurationMinutes: durationMinutes}

	existing, err := c.store.ActiveAppointments(ctx, doctorID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var conflicts []entity.Appointment
	for _, appt := range existing {
		booked := Interval{Start: appt.AppointmentDate, DurationMinutes: appt.DurationMinutes}
		if candidate.Overlaps(booked) {
			conflicts = append(conflicts, appt)
		}
	}

	return &Availability{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
