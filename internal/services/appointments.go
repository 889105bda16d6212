package services

import (
	"context"
	"fmt"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/models"
)

// AppointmentAPI wraps the /appointments routes.
type AppointmentAPI struct {
	client *api.Client
}

func NewAppointmentAPI(client *api.Client) *AppointmentAPI {
	return &AppointmentAPI{client: client}
}

func (a *AppointmentAPI) Book(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if err := a.client.Validator().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	var appt models.Appointment
	if err := a.client.Post(ctx, api.RouteAppointments, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *AppointmentAPI) History(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := a.client.Get(ctx, api.RouteApptHistory, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (a *AppointmentAPI) Cancel(ctx context.Context, appointmentID int64) error {
	return a.client.Delete(ctx, api.RouteAppointmentCancel(appointmentID), nil)
}

// Receipt downloads the appointment receipt document (PDF).
func (a *AppointmentAPI) Receipt(ctx context.Context, appointmentID int64) ([]byte, error) {
	return a.client.Download(ctx, api.RouteAppointmentReceipt(appointmentID))
}
