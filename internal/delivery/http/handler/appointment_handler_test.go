package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/scheduling"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mockAppointmentUsecase struct {
	createFn            func(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error)
	cancelFn            func(ctx context.Context, id uuid.UUID, reason string, cancelledBy uuid.UUID) error
	checkAvailabilityFn func(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error)
	getByNumberFn       func(ctx context.Context, appointmentNumber string) (*dto.AppointmentResponse, error)
}

func (m *mockAppointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error) {
	return m.createFn(ctx, req, createdBy)
}

func (m *mockAppointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return nil, usecase.ErrAppointmentNotFound
}

func (m *mockAppointmentUsecase) GetByNumber(ctx context.Context, appointmentNumber string) (*dto.AppointmentResponse, error) {
	return m.getByNumberFn(ctx, appointmentNumber)
}

func (m *mockAppointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (m *mockAppointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, updatedBy uuid.UUID) (*dto.AppointmentResponse, error) {
	return nil, usecase.ErrAppointmentNotFound
}

func (m *mockAppointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledBy uuid.UUID) error {
	return m.cancelFn(ctx, id, reason, cancelledBy)
}

func (m *mockAppointmentUsecase) CheckAvailability(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error) {
	return m.checkAvailabilityFn(ctx, doctorID, start, durationMinutes, excludeID)
}

func (m *mockAppointmentUsecase) DaySchedule(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]dto.AppointmentResponse, error) {
	return nil, nil
}

func (m *mockAppointmentUsecase) Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error) {
	return nil, nil
}

func (m *mockAppointmentUsecase) Stats(ctx context.Context) (*entity.AppointmentStats, error) {
	return &entity.AppointmentStats{}, nil
}

func newTestHandler(mock *mockAppointmentUsecase) *AppointmentHandler {
	return NewAppointmentHandler(mock, validator.NewValidator())
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	return req.WithContext(ctx)
}

func createBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CreateAppointmentRequest{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: time.Now().Add(24 * time.Hour),
		DurationMinutes: 30,
		Type:            "consultation",
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestCreateAppointmentSuccess(t *testing.T) {
	mock := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{
				ID:                uuid.New(),
				AppointmentNumber: "A2026080042",
				Status:            "scheduled",
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	newTestHandler(mock).Create(rec, authedRequest(http.MethodPost, "/api/v1/appointments", createBody(t)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if envelope := decodeEnvelope(t, rec); !envelope.Success {
		t.Error("expected success envelope")
	}
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	mock := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrSlotUnavailable
		},
	}

	rec := httptest.NewRecorder()
	newTestHandler(mock).Create(rec, authedRequest(http.MethodPost, "/api/v1/appointments", createBody(t)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCreateAppointmentStoreUnavailable(t *testing.T) {
	mock := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error) {
			return nil, fmt.Errorf("%w: connection refused", scheduling.ErrStoreUnavailable)
		},
	}

	rec := httptest.NewRecorder()
	newTestHandler(mock).Create(rec, authedRequest(http.MethodPost, "/api/v1/appointments", createBody(t)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestCreateAppointmentRejectsShortDuration(t *testing.T) {
	body, _ := json.Marshal(dto.CreateAppointmentRequest{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: time.Now().Add(24 * time.Hour),
		DurationMinutes: 10,
		Type:            "consultation",
	})

	mock := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest, createdBy uuid.UUID) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase must not be called when validation fails")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	newTestHandler(mock).Create(rec, authedRequest(http.MethodPost, "/api/v1/appointments", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCheckAvailabilityFree(t *testing.T) {
	mock := &mockAppointmentUsecase{
		checkAvailabilityFn: func(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error) {
			return &dto.AvailabilityResponse{Available: true}, nil
		},
	}

	target := fmt.Sprintf("/api/v1/appointments/availability?doctor_id=%s&start=%s&duration_minutes=30",
		uuid.New(), time.Now().Add(time.Hour).UTC().Format(time.RFC3339))

	rec := httptest.NewRecorder()
	newTestHandler(mock).CheckAvailability(rec, authedRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data payload: %T", envelope.Data)
	}
	if available, _ := data["available"].(bool); !available {
		t.Error("expected available = true")
	}
}

func TestCheckAvailabilityConflict(t *testing.T) {
	nextFree := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)
	mock := &mockAppointmentUsecase{
		checkAvailabilityFn: func(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error) {
			return &dto.AvailabilityResponse{
				Available:     false,
				Conflicts:     []dto.AppointmentResponse{{AppointmentNumber: "A2026030001"}},
				NextAvailable: &nextFree,
			}, nil
		},
	}

	target := fmt.Sprintf("/api/v1/appointments/availability?doctor_id=%s&start=%s&duration_minutes=30",
		uuid.New(), time.Date(2026, 3, 9, 10, 15, 0, 0, time.UTC).Format(time.RFC3339))

	rec := httptest.NewRecorder()
	newTestHandler(mock).CheckAvailability(rec, authedRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data payload: %T", envelope.Data)
	}
	if available, _ := data["available"].(bool); available {
		t.Error("expected available = false")
	}
	if _, ok := data["conflicts"]; !ok {
		t.Error("expected conflicts to be reported")
	}
	if _, ok := data["next_available"]; !ok {
		t.Error("expected next_available to be reported")
	}
}

func TestCheckAvailabilityRejectsBadDuration(t *testing.T) {
	mock := &mockAppointmentUsecase{
		checkAvailabilityFn: func(ctx context.Context, doctorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (*dto.AvailabilityResponse, error) {
			t.Fatal("usecase must not be called for invalid duration")
			return nil, nil
		},
	}

	target := fmt.Sprintf("/api/v1/appointments/availability?doctor_id=%s&start=%s&duration_minutes=5",
		uuid.New(), time.Now().UTC().Format(time.RFC3339))

	rec := httptest.NewRecorder()
	newTestHandler(mock).CheckAvailability(rec, authedRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCancelAlreadyCancelled(t *testing.T) {
	mock := &mockAppointmentUsecase{
		cancelFn: func(ctx context.Context, id uuid.UUID, reason string, cancelledBy uuid.UUID) error {
			return usecase.ErrAppointmentAlreadyCancelled
		},
	}

	body, _ := json.Marshal(dto.CancelAppointmentRequest{Reason: "patient request"})
	req := authedRequest(http.MethodPost, "/api/v1/appointments/"+uuid.NewString()+"/cancel", body)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})

	rec := httptest.NewRecorder()
	newTestHandler(mock).Cancel(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestGetAppointmentByNumber(t *testing.T) {
	mock := &mockAppointmentUsecase{
		getByNumberFn: func(ctx context.Context, appointmentNumber string) (*dto.AppointmentResponse, error) {
			if appointmentNumber != "A2026080042" {
				t.Errorf("appointmentNumber = %q, want A2026080042", appointmentNumber)
			}
			return &dto.AppointmentResponse{
				ID:                uuid.New(),
				AppointmentNumber: appointmentNumber,
				Status:            "scheduled",
			}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/v1/appointments/number/A2026080042", nil)
	req = mux.SetURLVars(req, map[string]string{"number": "A2026080042"})

	rec := httptest.NewRecorder()
	newTestHandler(mock).GetByNumber(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if envelope := decodeEnvelope(t, rec); !envelope.Success {
		t.Error("expected success envelope")
	}
}

func TestGetAppointmentByNumberNotFound(t *testing.T) {
	mock := &mockAppointmentUsecase{
		getByNumberFn: func(ctx context.Context, appointmentNumber string) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrAppointmentNotFound
		},
	}

	req := authedRequest(http.MethodGet, "/api/v1/appointments/number/A2026089999", nil)
	req = mux.SetURLVars(req, map[string]string{"number": "A2026089999"})

	rec := httptest.NewRecorder()
	newTestHandler(mock).GetByNumber(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetByIDInvalidUUID(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/v1/appointments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})

	rec := httptest.NewRecorder()
	newTestHandler(&mockAppointmentUsecase{}).GetByID(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
