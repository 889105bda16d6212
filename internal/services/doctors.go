package services

import (
	"context"
	"strconv"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/models"
)

// DoctorAPI wraps the /doctors routes.
type DoctorAPI struct {
	client *api.Client
}

func NewDoctorAPI(client *api.Client) *DoctorAPI {
	return &DoctorAPI{client: client}
}

func (d *DoctorAPI) List(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := d.client.Get(ctx, api.RouteDoctors, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (d *DoctorAPI) Search(ctx context.Context, q api.DoctorSearchQuery) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := d.client.Get(ctx, q.Encode(), &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (d *DoctorAPI) Hospitals(ctx context.Context, doctorID int64) ([]models.DoctorHospital, error) {
	var hospitals []models.DoctorHospital
	if err := d.client.Get(ctx, api.RouteDoctorHospitals(doctorID), &hospitals); err != nil {
		return nil, err
	}
	return hospitals, nil
}

// Availability lists bookable slots for a doctor at a hospital on a date.
func (d *DoctorAPI) Availability(ctx context.Context, doctorID, hospitalID int64, date string) ([]models.TimeSlot, error) {
	path := api.RouteDoctorAvailability(doctorID) + "?hospital_id=" + strconv.FormatInt(hospitalID, 10) + "&selected_date=" + date
	var slots []models.TimeSlot
	if err := d.client.Get(ctx, path, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
