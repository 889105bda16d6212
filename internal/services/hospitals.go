package services

import (
	"context"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/models"
)

// HospitalAPI wraps the /hospitals routes.
type HospitalAPI struct {
	client *api.Client
}

func NewHospitalAPI(client *api.Client) *HospitalAPI {
	return &HospitalAPI{client: client}
}

func (h *HospitalAPI) List(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	if err := h.client.Get(ctx, api.RouteHospitals, &hospitals); err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (h *HospitalAPI) Get(ctx context.Context, hospitalID int64) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := h.client.Get(ctx, api.RouteHospitalByID(hospitalID), &hospital); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (h *HospitalAPI) Doctors(ctx context.Context, hospitalID int64) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := h.client.Get(ctx, api.RouteHospitalDoctors(hospitalID), &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}
