package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/onehealthportal/client-go/internal/models"
)

// Appointments prints the signed-in user's appointment history.
func (a *App) Appointments(ctx context.Context) error {
	appts, err := a.portal.Appointments.History(ctx)
	if err != nil {
		return err
	}

	if len(appts) == 0 {
		printlnFn("No appointments yet.")
		return nil
	}
	for _, appt := range appts {
		printlnFn(fmt.Sprintf("#%d %s at %s, %s %s [%s]",
			appt.ID, appt.DoctorName, appt.HospitalName,
			appt.AppointmentDate, appt.AppointmentTime, appt.Status))
	}
	return nil
}

// BookAppointment walks through the booking prompts, shows the open slots for
// the chosen doctor, hospital and date, and books the selected one.
func (a *App) BookAppointment(ctx context.Context) error {
	doctorID, err := GetNumber(a.reader, "Enter doctor id", os.Stdout)
	if err != nil {
		return err
	}
	hospitalID, err := GetNumber(a.reader, "Enter hospital id", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	slots, err := a.portal.Doctors.Availability(ctx, doctorID, hospitalID, date)
	if err != nil {
		return err
	}
	open := 0
	for _, s := range slots {
		if s.Available {
			printlnFn("  " + s.Time)
			open++
		}
	}
	if open == 0 {
		printlnFn("No open slots on that date.")
		return nil
	}

	slot, err := getSimpleText(a.reader, "Enter time slot", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := getSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		return err
	}

	appt, err := a.portal.Appointments.Book(ctx, models.BookAppointmentRequest{
		DoctorID:        doctorID,
		HospitalID:      hospitalID,
		AppointmentDate: date,
		AppointmentTime: slot,
		Notes:           notes,
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Booked appointment #%d [%s]", appt.ID, appt.Status))
	return nil
}

// CancelAppointment cancels by id, either from the command argument or an
// interactive prompt.
func (a *App) CancelAppointment(ctx context.Context, args []string) error {
	var (
		id  int64
		err error
	)
	if len(args) > 0 {
		id, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("expected an appointment id, got %q", args[0])
		}
	} else {
		id, err = GetNumber(a.reader, "Enter appointment id to cancel", os.Stdout)
		if err != nil {
			return err
		}
	}

	if err := a.portal.Appointments.Cancel(ctx, id); err != nil {
		return err
	}
	printlnFn("Appointment cancelled.")
	return nil
}

// LabTests prints the signed-in user's lab test history.
func (a *App) LabTests(ctx context.Context) error {
	tests, err := a.portal.LabTests.History(ctx)
	if err != nil {
		return err
	}

	if len(tests) == 0 {
		printlnFn("No lab tests yet.")
		return nil
	}
	for _, lt := range tests {
		printlnFn(fmt.Sprintf("#%d %s, %s %s [%s]", lt.ID, lt.TestType, lt.TestDate, lt.TestTime, lt.Status))
	}
	return nil
}

// BookLabTest walks through the lab test booking prompts.
func (a *App) BookLabTest(ctx context.Context) error {
	hospitalID, err := GetNumber(a.reader, "Enter hospital id", os.Stdout)
	if err != nil {
		return err
	}
	testType, err := getSimpleText(a.reader, "Enter test type", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	slots, err := a.portal.LabTests.Availability(ctx, hospitalID, date)
	if err != nil {
		return err
	}
	open := 0
	for _, s := range slots {
		if s.Available {
			printlnFn("  " + s.Time)
			open++
		}
	}
	if open == 0 {
		printlnFn("No open slots on that date.")
		return nil
	}

	slot, err := getSimpleText(a.reader, "Enter time slot", os.Stdout)
	if err != nil {
		return err
	}

	cred := a.sessions.Snapshot().Credential
	if cred == nil {
		return fmt.Errorf("log in first")
	}
	userID, err := strconv.ParseInt(cred.UserID, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed stored user id: %w", err)
	}

	test, err := a.portal.LabTests.Book(ctx, models.BookLabTestRequest{
		UserID:     userID,
		HospitalID: hospitalID,
		TestType:   testType,
		TestDate:   date,
		TestTime:   slot,
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Booked lab test #%d [%s]", test.ID, test.Status))
	return nil
}
