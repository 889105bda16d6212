package api

import (
	"fmt"
	"net/url"
)

// Backend route table. Paths are relative to the configured base URL; the
// backend owns them, the client only spells them.
const (
	RouteLogin          = "/auth/login"
	RouteVerify2FA      = "/auth/verify-2fa"
	RouteLogout         = "/auth/logout"
	RouteRegister       = "/auth/register"
	RouteResetPassword  = "/auth/reset-password"
	RouteToggle2FA      = "/auth/toggle-2fa"
	RouteActiveSessions = "/auth/active-sessions"

	RouteProfile = "/users/profile"

	RouteDoctors       = "/doctors"
	RouteDoctorSearch  = "/doctors/search/"
	RouteHospitals     = "/hospitals/all"
	RouteAppointments  = "/appointments/book"
	RouteApptHistory   = "/appointments/history"
	RouteLabTestBook   = "/lab-tests/book"
	RouteLabTestHist   = "/lab-tests/history"
	RouteFeedback      = "/feedback"
	RouteFeedbackList  = "/feedback/all"
	RoutePayments      = "/payments"
	RoutePaymentsList  = "/payments/all"

	RoutePredict       = "/disease-prediction/predict"
	RoutePredictHealth = "/disease-prediction/health"
)

func RouteDoctorsBySpecialization(specialty string) string {
	return RouteDoctors + "?specialization=" + url.QueryEscape(specialty)
}

func RouteDoctorHospitals(doctorID int64) string {
	return fmt.Sprintf("/doctors/%d/hospitals", doctorID)
}

func RouteDoctorAvailability(doctorID int64) string {
	return fmt.Sprintf("/appointments/doctors/%d/appointments", doctorID)
}

func RouteHospitalByID(hospitalID int64) string {
	return fmt.Sprintf("/hospitals/%d", hospitalID)
}

func RouteHospitalDoctors(hospitalID int64) string {
	return fmt.Sprintf("/hospital-doctor/hospital/%d/doctors", hospitalID)
}

func RouteAppointmentCancel(appointmentID int64) string {
	return fmt.Sprintf("/appointments/%d/cancel", appointmentID)
}

func RouteAppointmentReceipt(appointmentID int64) string {
	return fmt.Sprintf("/appointments/%d/receipt", appointmentID)
}

func RouteLabTestCancel(labTestID int64) string {
	return fmt.Sprintf("/lab-tests/%d", labTestID)
}

func RouteLabTestAvailability(hospitalID int64, selectedDate string) string {
	return fmt.Sprintf("/lab-tests/%d/availability?selected_date=%s", hospitalID, url.QueryEscape(selectedDate))
}

func RouteFeedbackByID(feedbackID int64) string {
	return fmt.Sprintf("/feedback/%d", feedbackID)
}

// DoctorSearchQuery assembles the /doctors/search/ query string from the
// optional filters the portal exposes.
type DoctorSearchQuery struct {
	Query          string
	DoctorName     string
	HospitalName   string
	Specialization string
	HospitalID     int64
}

func (q DoctorSearchQuery) Encode() string {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.DoctorName != "" {
		params.Set("doctor_name", q.DoctorName)
	}
	if q.HospitalName != "" {
		params.Set("hospital_name", q.HospitalName)
	}
	if q.Specialization != "" {
		params.Set("specialization", q.Specialization)
	}
	if q.HospitalID != 0 {
		params.Set("hospital_id", fmt.Sprint(q.HospitalID))
	}
	return RouteDoctorSearch + "?" + params.Encode()
}
