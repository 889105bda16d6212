package services

import (
	"context"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/models"
)

// FeedbackAPI wraps the /feedback routes.
type FeedbackAPI struct {
	client *api.Client
}

func NewFeedbackAPI(client *api.Client) *FeedbackAPI {
	return &FeedbackAPI{client: client}
}

func (f *FeedbackAPI) Submit(ctx context.Context, fb models.Feedback) (*models.Feedback, error) {
	var created models.Feedback
	if err := f.client.Post(ctx, api.RouteFeedback, fb, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (f *FeedbackAPI) List(ctx context.Context) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := f.client.Get(ctx, api.RouteFeedbackList, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (f *FeedbackAPI) Get(ctx context.Context, feedbackID int64) (*models.Feedback, error) {
	var fb models.Feedback
	if err := f.client.Get(ctx, api.RouteFeedbackByID(feedbackID), &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (f *FeedbackAPI) Update(ctx context.Context, feedbackID int64, fb models.Feedback) (*models.Feedback, error) {
	var updated models.Feedback
	if err := f.client.Put(ctx, api.RouteFeedbackByID(feedbackID), fb, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (f *FeedbackAPI) Delete(ctx context.Context, feedbackID int64) error {
	return f.client.Delete(ctx, api.RouteFeedbackByID(feedbackID), nil)
}
