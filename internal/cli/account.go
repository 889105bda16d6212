package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/onehealthportal/client-go/internal/models"
)

// Feedback collects a subject, a message body and a rating, and submits them.
func (a *App) Feedback(ctx context.Context) error {
	subject, err := getSimpleText(a.reader, "Enter subject", os.Stdout)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Enter your feedback", os.Stdout)
	if err != nil {
		return err
	}
	rating, err := GetNumber(a.reader, "Rating (0-5)", os.Stdout)
	if err != nil {
		return err
	}

	fb, err := a.portal.Feedback.Submit(ctx, models.Feedback{
		Subject: subject,
		Message: message,
		Rating:  int(rating),
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Thank you! Feedback #%d recorded.", fb.ID))
	return nil
}

// Payments prints the signed-in user's payment history.
func (a *App) Payments(ctx context.Context) error {
	payments, err := a.portal.Payments.List(ctx)
	if err != nil {
		return err
	}

	if len(payments) == 0 {
		printlnFn("No payments yet.")
		return nil
	}
	for _, p := range payments {
		printlnFn(fmt.Sprintf("#%d %.2f via %s [%s]", p.ID, p.Amount, p.Method, p.Status))
	}
	return nil
}
