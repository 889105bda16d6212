package models

// Doctor as listed by GET /doctors and the search routes.
type Doctor struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Name           string             `json:"name"`
	Specialization string             `json:"specialization"`
	Hospitals      []DoctorHospital   `json:"hospitals,omitempty"`
}

// DoctorHospital is a hospital a doctor practices at, with their hours there.
type DoctorHospital struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Availability Availability `json:"availability"`
}

// Availability is a daily working window, backend-formatted times.
type Availability struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Hospital as listed by GET /hospitals/all.
type Hospital struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// TimeSlot is one bookable slot from an availability query.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// BookAppointmentRequest is the body of POST /appointments/book.
type BookAppointmentRequest struct {
	DoctorID        int64  `json:"doctor_id" validate:"required"`
	HospitalID      int64  `json:"hospital_id" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	Notes           string `json:"notes,omitempty"`
}

// Appointment as returned by the booking and history routes.
type Appointment struct {
	ID              int64  `json:"id"`
	DoctorID        int64  `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	HospitalID      int64  `json:"hospital_id"`
	HospitalName    string `json:"hospital_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
}

// BookLabTestRequest is the body of POST /lab-tests/book.
type BookLabTestRequest struct {
	UserID      int64  `json:"user_id" validate:"required"`
	HospitalID  int64  `json:"hospital_id" validate:"required"`
	TestType    string `json:"test_type" validate:"required"`
	TestDate    string `json:"test_date" validate:"required"`
	TestTime    string `json:"test_time" validate:"required"`
	Instruction string `json:"instruction"`
}

// LabTest as returned by the lab-test routes.
type LabTest struct {
	ID         int64  `json:"id"`
	HospitalID int64  `json:"hospital_id"`
	TestType   string `json:"test_type"`
	TestDate   string `json:"test_date"`
	TestTime   string `json:"test_time"`
	Status     string `json:"status"`
}

// Feedback as exchanged with the /feedback routes.
type Feedback struct {
	ID      int64  `json:"id,omitempty"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
	Rating  int    `json:"rating" validate:"min=0,max=5"`
}

// CreatePaymentRequest is the body of POST /payments.
type CreatePaymentRequest struct {
	AppointmentID int64   `json:"appointment_id,omitempty"`
	LabTestID     int64   `json:"lab_test_id,omitempty"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Method        string  `json:"method" validate:"required"`
}

// PredictDiseaseRequest is the body of POST /disease-prediction/predict.
// Symptoms is the free-text, comma-separated symptom list the model expects.
type PredictDiseaseRequest struct {
	Symptoms string `json:"symptoms" validate:"required"`
}

// DiseasePrediction is one ranked condition from the symptom checker, with
// the medical specialty to route the patient to.
type DiseasePrediction struct {
	Disease    string  `json:"disease"`
	Specialty  string  `json:"specialty"`
	Confidence float64 `json:"confidence"`
}

// PredictDiseaseResponse is what the predict route returns.
type PredictDiseaseResponse struct {
	Predictions []DiseasePrediction `json:"predictions"`
}

// Payment as returned by the /payments routes.
type Payment struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
}
