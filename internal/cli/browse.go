package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/models"
)

// Doctors lists all doctors, or searches when arguments are given
// ("doctors cardiology" matches names, hospitals and specializations).
func (a *App) Doctors(ctx context.Context, args []string) error {
	var (
		doctors []models.Doctor
		err     error
	)
	if len(args) == 0 {
		doctors, err = a.portal.Doctors.List(ctx)
	} else {
		doctors, err = a.portal.Doctors.Search(ctx, api.DoctorSearchQuery{Query: strings.Join(args, " ")})
	}
	if err != nil {
		return err
	}

	if len(doctors) == 0 {
		printlnFn("No doctors found.")
		return nil
	}
	for _, d := range doctors {
		printlnFn(fmt.Sprintf("#%d %s %s (%s)", d.ID, d.Title, d.Name, d.Specialization))
		for _, h := range d.Hospitals {
			printlnFn(fmt.Sprintf("    at %s, %s-%s", h.Name, h.Availability.Start, h.Availability.End))
		}
	}
	return nil
}

// Predict runs the symptom checker: free-text symptoms in, ranked conditions
// and recommended doctors out.
func (a *App) Predict(ctx context.Context) error {
	symptoms, err := getSimpleText(a.reader, "Describe your symptoms (comma separated)", os.Stdout)
	if err != nil {
		return err
	}

	predictions, err := a.portal.Prediction.Predict(ctx, symptoms)
	if err != nil {
		return err
	}
	if len(predictions) == 0 {
		printlnFn("No conditions matched those symptoms.")
		return nil
	}

	for _, p := range predictions {
		printlnFn(fmt.Sprintf("%s (%s) %.1f%%", p.Disease, p.Specialty, p.Confidence*100))
	}

	doctors, err := a.portal.Prediction.DoctorsForSpecialty(ctx, predictions[0].Specialty)
	if err != nil || len(doctors) == 0 {
		return nil
	}
	printlnFn("Recommended doctors:")
	for _, d := range doctors {
		printlnFn(fmt.Sprintf("  #%d %s %s (%s)", d.ID, d.Title, d.Name, d.Specialization))
	}
	return nil
}

// Hospitals lists all hospitals.
func (a *App) Hospitals(ctx context.Context) error {
	hospitals, err := a.portal.Hospitals.List(ctx)
	if err != nil {
		return err
	}

	for _, h := range hospitals {
		printlnFn(fmt.Sprintf("#%d %s, %s (%s)", h.ID, h.Name, h.Address, h.Phone))
	}
	return nil
}
