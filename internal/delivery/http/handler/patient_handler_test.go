package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mockPatientUsecase struct {
	deleteFn func(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error
}

func (m *mockPatientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest, createdBy uuid.UUID) (*dto.PatientResponse, error) {
	return nil, nil
}

func (m *mockPatientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	return nil, usecase.ErrPatientNotFound
}

func (m *mockPatientUsecase) GetByNumber(ctx context.Context, patientNumber string) (*dto.PatientResponse, error) {
	return nil, usecase.ErrPatientNotFound
}

func (m *mockPatientUsecase) List(ctx context.Context, filter *entity.PatientFilter) (*dto.PatientListResponse, error) {
	return &dto.PatientListResponse{}, nil
}

func (m *mockPatientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest, updatedBy uuid.UUID) (*dto.PatientResponse, error) {
	return nil, usecase.ErrPatientNotFound
}

func (m *mockPatientUsecase) Delete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	return m.deleteFn(ctx, id, deletedBy)
}

func (m *mockPatientUsecase) Stats(ctx context.Context) (*entity.PatientStats, error) {
	return &entity.PatientStats{}, nil
}

func newTestPatientHandler(mock *mockPatientUsecase) *PatientHandler {
	return NewPatientHandler(mock, validator.NewValidator())
}

func TestDeletePatient(t *testing.T) {
	patientID := uuid.New()
	var gotID, gotDeletedBy uuid.UUID

	mock := &mockPatientUsecase{
		deleteFn: func(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
			gotID = id
			gotDeletedBy = deletedBy
			return nil
		},
	}

	req := authedRequest(http.MethodDelete, "/api/v1/patients/"+patientID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": patientID.String()})

	rec := httptest.NewRecorder()
	newTestPatientHandler(mock).Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if gotID != patientID {
		t.Errorf("id = %v, want %v", gotID, patientID)
	}
	if gotDeletedBy == uuid.Nil {
		t.Error("expected the acting user to be forwarded")
	}
}

func TestDeletePatientNotFound(t *testing.T) {
	mock := &mockPatientUsecase{
		deleteFn: func(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
			return usecase.ErrPatientNotFound
		},
	}

	req := authedRequest(http.MethodDelete, "/api/v1/patients/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})

	rec := httptest.NewRecorder()
	newTestPatientHandler(mock).Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeletePatientInvalidUUID(t *testing.T) {
	mock := &mockPatientUsecase{
		deleteFn: func(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
			t.Fatal("usecase must not be called for an invalid id")
			return nil
		},
	}

	req := authedRequest(http.MethodDelete, "/api/v1/patients/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})

	rec := httptest.NewRecorder()
	newTestPatientHandler(mock).Delete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
