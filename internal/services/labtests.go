package services

import (
	"context"
	"fmt"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/models"
)

// LabTestAPI wraps the /lab-tests routes.
type LabTestAPI struct {
	client *api.Client
}

func NewLabTestAPI(client *api.Client) *LabTestAPI {
	return &LabTestAPI{client: client}
}

// Book validates the required booking fields locally before the request goes
// out; the backend rejects partial bookings anyway, this just fails faster.
func (l *LabTestAPI) Book(ctx context.Context, req models.BookLabTestRequest) (*models.LabTest, error) {
	if err := l.client.Validator().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	var test models.LabTest
	if err := l.client.Post(ctx, api.RouteLabTestBook, req, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

func (l *LabTestAPI) History(ctx context.Context) ([]models.LabTest, error) {
	var tests []models.LabTest
	if err := l.client.Get(ctx, api.RouteLabTestHist, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (l *LabTestAPI) Cancel(ctx context.Context, labTestID int64) error {
	return l.client.Delete(ctx, api.RouteLabTestCancel(labTestID), nil)
}

func (l *LabTestAPI) Availability(ctx context.Context, hospitalID int64, date string) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := l.client.Get(ctx, api.RouteLabTestAvailability(hospitalID, date), &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
