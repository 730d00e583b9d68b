package entity

import (
	"testing"
	"time"
)

func TestAppointmentEnd(t *testing.T) {
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	appt := &Appointment{AppointmentDate: start, DurationMinutes: 30}

	want := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)
	if got := appt.End(); !got.Equal(want) {
		t.Errorf("End() = %v, want %v", got, want)
	}
}

func TestAppointmentIsActive(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusScheduled, true},
		{AppointmentStatusConfirmed, true},
		{AppointmentStatusInProgress, true},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, false},
	}

	for _, tt := range tests {
		appt := &Appointment{Status: tt.status}
		if got := appt.IsActive(); got != tt.want {
			t.Errorf("IsActive() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestApplyStatusStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		status AppointmentStatus
		stamp  func(a *Appointment) *time.Time
	}{
		{AppointmentStatusConfirmed, func(a *Appointment) *time.Time { return a.ConfirmedAt }},
		{AppointmentStatusInProgress, func(a *Appointment) *time.Time { return a.StartedAt }},
		{AppointmentStatusCompleted, func(a *Appointment) *time.Time { return a.CompletedAt }},
		{AppointmentStatusCancelled, func(a *Appointment) *time.Time { return a.CancelledAt }},
	}

	for _, tt := range tests {
		appt := &Appointment{Status: AppointmentStatusScheduled}
		appt.ApplyStatus(tt.status, now)

		if appt.Status != tt.status {
			t.Errorf("ApplyStatus(%s) left status %s", tt.status, appt.Status)
		}
		stamp := tt.stamp(appt)
		if stamp == nil || !stamp.Equal(now) {
			t.Errorf("ApplyStatus(%s) did not stamp transition time", tt.status)
		}
	}
}

func TestApplyStatusNoShowStampsNothing(t *testing.T) {
	appt := &Appointment{Status: AppointmentStatusScheduled}
	appt.ApplyStatus(AppointmentStatusNoShow, time.Now())

	if appt.Status != AppointmentStatusNoShow {
		t.Errorf("status = %s, want %s", appt.Status, AppointmentStatusNoShow)
	}
	if appt.ConfirmedAt != nil || appt.StartedAt != nil || appt.CompletedAt != nil || appt.CancelledAt != nil {
		t.Error("no_show must not stamp any transition timestamp")
	}
}
