package services

import (
	"context"
	"fmt"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/models"
)

// PredictionAPI wraps the /disease-prediction routes of the symptom checker.
// It also knows how to turn a predicted specialty into a list of doctors,
// since the two steps always travel together in the portal flow.
type PredictionAPI struct {
	client  *api.Client
	doctors *DoctorAPI
}

func NewPredictionAPI(client *api.Client, doctors *DoctorAPI) *PredictionAPI {
	return &PredictionAPI{client: client, doctors: doctors}
}

// Predict submits the symptom list and returns the ranked predictions. The
// model owns interpretation; the client only requires a non-empty input.
func (p *PredictionAPI) Predict(ctx context.Context, symptoms string) ([]models.DiseasePrediction, error) {
	req := models.PredictDiseaseRequest{Symptoms: symptoms}
	if err := p.client.Validator().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	var resp models.PredictDiseaseResponse
	if err := p.client.Post(ctx, api.RoutePredict, req, &resp); err != nil {
		return nil, err
	}
	return resp.Predictions, nil
}

// DoctorsForSpecialty returns doctors matching a predicted specialty. When
// the exact filter finds nobody it falls back to the broader search route, so
// a model specialty that the doctor records spell differently still yields
// recommendations.
func (p *PredictionAPI) DoctorsForSpecialty(ctx context.Context, specialty string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := p.client.Get(ctx, api.RouteDoctorsBySpecialization(specialty), &doctors); err != nil {
		return nil, err
	}
	if len(doctors) > 0 {
		return doctors, nil
	}
	return p.doctors.Search(ctx, api.DoctorSearchQuery{Specialization: specialty})
}

// Health checks the prediction model. An error means the symptom checker
// should be presented as unavailable.
func (p *PredictionAPI) Health(ctx context.Context) error {
	return p.client.Get(ctx, api.RoutePredictHealth, nil)
}
