package services

import "github.com/onehealthportal/client-go/internal/api"

// Portal bundles every domain wrapper over one shared pipeline. Embedding
// AuthAPI and UserAPI makes Portal satisfy session.Backend directly.
type Portal struct {
	*AuthAPI
	*UserAPI

	Doctors      *DoctorAPI
	Hospitals    *HospitalAPI
	Appointments *AppointmentAPI
	LabTests     *LabTestAPI
	Feedback     *FeedbackAPI
	Payments     *PaymentAPI
	Prediction   *PredictionAPI
}

func NewPortal(client *api.Client) *Portal {
	doctors := NewDoctorAPI(client)
	return &Portal{
		AuthAPI:      NewAuthAPI(client),
		UserAPI:      NewUserAPI(client),
		Doctors:      doctors,
		Hospitals:    NewHospitalAPI(client),
		Appointments: NewAppointmentAPI(client),
		LabTests:     NewLabTestAPI(client),
		Feedback:     NewFeedbackAPI(client),
		Payments:     NewPaymentAPI(client),
		Prediction:   NewPredictionAPI(client, doctors),
	}
}
