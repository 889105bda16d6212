package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onehealthportal/client-go/internal/api"
	"github.com/onehealthportal/client-go/internal/apperrors"
	"github.com/onehealthportal/client-go/internal/credentials"
	"github.com/onehealthportal/client-go/internal/logging"
	"github.com/onehealthportal/client-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// newPortalHandler wires a Portal against the given stub backend.
func newPortalHandler(t *testing.T, handler http.Handler) *Portal {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, credentials.RunMigrations(context.Background(), db))

	log := logging.New(io.Discard, slog.LevelError)
	client := api.New(api.Config{
		BaseURL: srv.URL,
		Creds:   credentials.NewStore(db, log),
		Logger:  log,
	})
	return NewPortal(client)
}

// newPortal spins up a stub backend that answers every request with the given
// body and records what it received.
func newPortal(t *testing.T, status int, responseBody string) (*Portal, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	portal := newPortalHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	return portal, rec
}

func TestAppointments_Book_HitsBookingRoute(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{"id":7,"doctor_id":3,"hospital_id":2,"status":"confirmed"}`)

	appt, err := portal.Appointments.Book(context.Background(), models.BookAppointmentRequest{
		DoctorID:        3,
		HospitalID:      2,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), appt.ID)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/appointments/book", rec.Path)

	var sent models.BookAppointmentRequest
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	assert.Equal(t, int64(3), sent.DoctorID)
}

func TestAppointments_Book_RejectsIncompleteRequestLocally(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{}`)

	_, err := portal.Appointments.Book(context.Background(), models.BookAppointmentRequest{DoctorID: 3})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, rec.Method, "incomplete booking must not reach the backend")
}

func TestAppointments_Cancel_UsesDeleteWithID(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{}`)

	require.NoError(t, portal.Appointments.Cancel(context.Background(), 15))
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/appointments/15/cancel", rec.Path)
}

func TestLabTests_Availability_EncodesQuery(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `[{"time":"09:00","available":true}]`)

	slots, err := portal.LabTests.Availability(context.Background(), 4, "2026-09-01")
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
	assert.Equal(t, "/lab-tests/4/availability", rec.Path)
	assert.Contains(t, rec.Query, "selected_date=2026-09-01")
}

func TestDoctors_Search_BuildsQueryFromFilters(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `[{"id":1,"name":"Dr. Who","specialization":"cardiology"}]`)

	doctors, err := portal.Doctors.Search(context.Background(), api.DoctorSearchQuery{
		DoctorName:     "who",
		Specialization: "cardiology",
	})
	require.NoError(t, err)

	require.Len(t, doctors, 1)
	assert.Equal(t, "/doctors/search/", rec.Path)
	assert.Contains(t, rec.Query, "doctor_name=who")
	assert.Contains(t, rec.Query, "specialization=cardiology")
}

func TestPayments_Create_RejectsZeroAmount(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{}`)

	_, err := portal.Payments.Create(context.Background(), models.CreatePaymentRequest{
		AppointmentID: 7,
		Method:        "card",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, rec.Method)
}

func TestFeedback_Submit_PostsPayload(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{"id":1,"subject":"wait times","message":"too long","rating":2}`)

	fb, err := portal.Feedback.Submit(context.Background(), models.Feedback{
		Subject: "wait times",
		Message: "too long",
		Rating:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), fb.ID)
	assert.Equal(t, "/feedback", rec.Path)
}

func TestAuth_Logout_BackendFailureSurfacesTypedError(t *testing.T) {
	portal, _ := newPortal(t, http.StatusInternalServerError, `{"detail":"session table unavailable"}`)

	err := portal.Logout(context.Background())
	require.ErrorIs(t, err, apperrors.ErrServer)
}

func TestAuth_ToggleTwoFactor_DefaultsToEmailDelivery(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{}`)

	err := portal.ToggleTwoFactor(context.Background(), true, "")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/auth/toggle-2fa", rec.Path)

	var req models.ToggleTwoFactorRequest
	require.NoError(t, json.Unmarshal(rec.Body, &req))
	assert.True(t, req.Enabled)
	assert.Equal(t, "email", req.Method)
}

func TestAuth_ActiveSessions_ListsDevices(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`[{"id":"s1","device":"iPhone 15","ip_address":"10.0.0.2","current":true},
		  {"id":"s2","device":"Chrome on Linux","current":false}]`)

	sessions, err := portal.ActiveSessions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/auth/active-sessions", rec.Path)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].Current)
	assert.Equal(t, "Chrome on Linux", sessions[1].Device)
}

func TestUsers_UpdateProfile_PutsChangesAndReturnsProfile(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`{"email":"ann@example.com","first_name":"Ann","last_name":"Lee","phone":"555-0101"}`)

	profile, err := portal.UpdateProfile(context.Background(), models.UpdateProfileRequest{
		FirstName: "Ann",
		Phone:     "555-0101",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/users/profile", rec.Path)
	assert.JSONEq(t, `{"first_name":"Ann","phone":"555-0101"}`, string(rec.Body))
	assert.Equal(t, "Ann", profile.FirstName)
	assert.Equal(t, "ann@example.com", profile.Email)
}

func TestAppointments_Receipt_DownloadsRawBytes(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, "%PDF-1.4 receipt body")

	data, err := portal.Appointments.Receipt(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "/appointments/7/receipt", rec.Path)
	assert.Equal(t, []byte("%PDF-1.4 receipt body"), data)
}

func TestFeedback_Get_FetchesByID(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`{"id":3,"subject":"parking","message":"lot was full","rating":1}`)

	fb, err := portal.Feedback.Get(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "/feedback/3", rec.Path)
	assert.Equal(t, "parking", fb.Subject)
}

func TestFeedback_Update_PutsRevisedEntry(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`{"id":3,"subject":"parking","message":"resolved, thanks","rating":4}`)

	updated, err := portal.Feedback.Update(context.Background(), 3, models.Feedback{
		Subject: "parking",
		Message: "resolved, thanks",
		Rating:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/feedback/3", rec.Path)
	assert.Equal(t, 4, updated.Rating)
}

func TestFeedback_Delete_TargetsEntry(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{}`)

	require.NoError(t, portal.Feedback.Delete(context.Background(), 3))
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/feedback/3", rec.Path)
}

func TestHospitals_Get_FetchesByID(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`{"id":5,"name":"City General","address":"1 Main St","phone":"555-0100"}`)

	hospital, err := portal.Hospitals.Get(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "/hospitals/5", rec.Path)
	assert.Equal(t, "City General", hospital.Name)
}

func TestPrediction_Predict_PostsSymptomsAndReturnsRanking(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`{"predictions":[
			{"disease":"Migraine","specialty":"neurology","confidence":0.84},
			{"disease":"Tension headache","specialty":"general medicine","confidence":0.61}]}`)

	predictions, err := portal.Prediction.Predict(context.Background(), "headache, nausea, light sensitivity")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/disease-prediction/predict", rec.Path)
	assert.JSONEq(t, `{"symptoms":"headache, nausea, light sensitivity"}`, string(rec.Body))

	require.Len(t, predictions, 2)
	assert.Equal(t, "Migraine", predictions[0].Disease)
	assert.Equal(t, "neurology", predictions[0].Specialty)
	assert.InDelta(t, 0.84, predictions[0].Confidence, 1e-9)
}

func TestPrediction_Predict_RejectsEmptySymptoms(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK, `{}`)

	_, err := portal.Prediction.Predict(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, rec.Method)
}

func TestPrediction_DoctorsForSpecialty_ExactFilterMatch(t *testing.T) {
	portal, rec := newPortal(t, http.StatusOK,
		`[{"id":11,"name":"Dr. Adams","specialization":"neurology"}]`)

	doctors, err := portal.Prediction.DoctorsForSpecialty(context.Background(), "neurology")
	require.NoError(t, err)

	assert.Equal(t, "/doctors", rec.Path)
	assert.Equal(t, "specialization=neurology", rec.Query)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Adams", doctors[0].Name)
}

func TestPrediction_DoctorsForSpecialty_FallsBackToSearch(t *testing.T) {
	var paths []string
	portal := newPortalHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/doctors":
			w.Write([]byte(`[]`))
		case "/doctors/search/":
			assert.Equal(t, "neurology", r.URL.Query().Get("specialization"))
			w.Write([]byte(`[{"id":12,"name":"Dr. Brooks","specialization":"Neurology & Sleep"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	doctors, err := portal.Prediction.DoctorsForSpecialty(context.Background(), "neurology")
	require.NoError(t, err)

	assert.Equal(t, []string{"/doctors", "/doctors/search/"}, paths)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Brooks", doctors[0].Name)
}

func TestPrediction_Health_ServerFailureSurfacesTypedError(t *testing.T) {
	portal, _ := newPortal(t, http.StatusServiceUnavailable, `{"detail":"model not loaded"}`)

	err := portal.Prediction.Health(context.Background())
	require.ErrorIs(t, err, apperrors.ErrServer)
}
