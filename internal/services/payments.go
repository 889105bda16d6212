package services

import (
	"context"
	"fmt"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/models"
)

// PaymentAPI wraps the /payments routes.
type PaymentAPI struct {
	client *api.Client
}

func NewPaymentAPI(client *api.Client) *PaymentAPI {
	return &PaymentAPI{client: client}
}

func (p *PaymentAPI) Create(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	if err := p.client.Validator().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	var payment models.Payment
	if err := p.client.Post(ctx, api.RoutePayments, req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (p *PaymentAPI) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := p.client.Get(ctx, api.RoutePaymentsList, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
