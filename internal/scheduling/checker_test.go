package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Mock booking store for testing
type mockBookingStore struct {
	appointments []entity.Appointment
	err          error
}

func (m *mockBookingStore) ActiveAppointments(_ context.Context, doctorID uuid.UUID, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []entity.Appointment
	for _, a := range m.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		if !a.IsActive() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 9, hour, min, 0, 0, time.UTC)
}

func booking(doctorID uuid.UUID, start time.Time, minutes int, status entity.AppointmentStatus) entity.Appointment {
	return entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		AppointmentDate: start,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"disjoint before", Interval{at(9, 0), 30}, Interval{at(10, 0), 30}, false},
		{"disjoint after", Interval{at(11, 0), 30}, Interval{at(10, 0), 30}, false},
		{"identical", Interval{at(10, 0), 30}, Interval{at(10, 0), 30}, true},
		{"partial overlap", Interval{at(10, 15), 30}, Interval{at(10, 0), 30}, true},
		{"contains", Interval{at(9, 0), 180}, Interval{at(10, 0), 30}, true},
		{"contained", Interval{at(10, 10), 10}, Interval{at(10, 0), 30}, true},
		{"back-to-back after", Interval{at(10, 30), 30}, Interval{at(10, 0), 30}, false},
		{"back-to-back before", Interval{at(9, 30), 30}, Interval{at(10, 0), 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Concrete scenario: doctor has one active booking [10:00, 10:30).
func TestCheckAvailability(t *testing.T) {
	doctorID := uuid.New()
	existing := booking(doctorID, at(10, 0), 30, entity.AppointmentStatusScheduled)
	store := &mockBookingStore{appointments: []entity.Appointment{existing}}
	checker := NewChecker(store)
	ctx := context.Background()

	tests := []struct {
		name      string
		start     time.Time
		minutes   int
		excludeID *uuid.UUID
		want      bool
	}{
		{"overlapping candidate", at(10, 15), 30, nil, false},
		{"adjacent after", at(10, 30), 30, nil, true},
		{"adjacent before", at(9, 30), 30, nil, true},
		{"same slot excluding itself", at(10, 0), 30, &existing.ID, true},
		{"covering candidate", at(9, 0), 120, nil, false},
		{"inside candidate", at(10, 10), 10, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail, err := checker.CheckAvailability(ctx, doctorID, tt.start, tt.minutes, tt.excludeID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if avail.Available != tt.want {
				t.Errorf("Available = %v, want %v", avail.Available, tt.want)
			}
			if !tt.want && len(avail.Conflicts) == 0 {
				t.Error("expected conflicts to be reported for unavailable slot")
			}
		})
	}
}

func TestCheckAvailabilityEmptyCalendar(t *testing.T) {
	checker := NewChecker(&mockBookingStore{})

	avail, err := checker.CheckAvailability(context.Background(), uuid.New(), at(10, 0), 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !avail.Available {
		t.Error("expected doctor with no bookings to be available")
	}
	if len(avail.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %d", len(avail.Conflicts))
	}
}

func TestCheckAvailabilityInactiveStatusesNeverConflict(t *testing.T) {
	doctorID := uuid.New()
	for _, status := range []entity.AppointmentStatus{
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusNoShow,
	} {
		store := &mockBookingStore{appointments: []entity.Appointment{
			booking(doctorID, at(10, 0), 30, status),
		}}
		checker := NewChecker(store)

		avail, err := checker.CheckAvailability(context.Background(), doctorID, at(10, 0), 30, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", status, err)
		}
		if !avail.Available {
			t.Errorf("%s booking should not conflict", status)
		}
	}
}

func TestCheckAvailabilityOtherDoctorDoesNotConflict(t *testing.T) {
	doctorID := uuid.New()
	store := &mockBookingStore{appointments: []entity.Appointment{
		booking(uuid.New(), at(10, 0), 30, entity.AppointmentStatusConfirmed),
	}}
	checker := NewChecker(store)

	avail, err := checker.CheckAvailability(context.Background(), doctorID, at(10, 0), 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !avail.Available {
		t.Error("another doctor's booking should not conflict")
	}
}

func TestCheckAvailabilityIdempotent(t *testing.T) {
	doctorID := uuid.New()
	store := &mockBookingStore{appointments: []entity.Appointment{
		booking(doctorID, at(10, 0), 30, entity.AppointmentStatusInProgress),
	}}
	checker := NewChecker(store)
	ctx := context.Background()

	first, err := checker.CheckAvailability(ctx, doctorID, at(10, 15), 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := checker.CheckAvailability(ctx, doctorID, at(10, 15), 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Available != second.Available || len(first.Conflicts) != len(second.Conflicts) {
		t.Error("repeated check with unchanged store returned different results")
	}
}

func TestCheckAvailabilityStoreError(t *testing.T) {
	store := &mockBookingStore{err: errors.New("connection refused")}
	checker := NewChecker(store)

	_, err := checker.CheckAvailability(context.Background(), uuid.New(), at(10, 0), 30, nil)
	if err == nil {
		t.Fatal("expected error when store read fails")
	}
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAvailabilityNextFree(t *testing.T) {
	doctorID := uuid.New()
	store := &mockBookingStore{appointments: []entity.Appointment{
		booking(doctorID, at(10, 0), 30, entity.AppointmentStatusScheduled),
		booking(doctorID, at(10, 30), 45, entity.AppointmentStatusConfirmed),
	}}
	checker := NewChecker(store)

	avail, err := checker.CheckAvailability(context.Background(), doctorID, at(10, 15), 60, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avail.Available {
		t.Fatal("expected conflicts")
	}
	if got, want := avail.NextFree(), at(11, 15); !got.Equal(want) {
		t.Errorf("NextFree() = %v, want %v", got, want)
	}
}
