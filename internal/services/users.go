package services

import (
	"context"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/models"
)

// UserAPI wraps the /users routes.
type UserAPI struct {
	client *api.Client
}

func NewUserAPI(client *api.Client) *UserAPI {
	return &UserAPI{client: client}
}

func (u *UserAPI) Profile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := u.client.Get(ctx, api.RouteProfile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (u *UserAPI) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := u.client.Put(ctx, api.RouteProfile, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
