package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isPendingVerification() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Profile(ctx context.Context) error
	Doctors(ctx context.Context, args []string) error
	Hospitals(ctx context.Context) error
	Predict(ctx context.Context) error
	Appointments(ctx context.Context) error
	BookAppointment(ctx context.Context) error
	CancelAppointment(ctx context.Context, args []string) error
	LabTests(ctx context.Context) error
	BookLabTest(ctx context.Context) error
	Feedback(ctx context.Context) error
	Payments(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the portal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn). Which commands make
// sense depends on the session state: unauthenticated users can register,
// log in or reset a password; a pending two-factor login accepts "verify";
// an authenticated user gets the full portal surface.
//
// Any errors returned by command handlers are printed here; handlers do not
// log their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn():
				printlnFn("Available commands: profile, doctors, hospitals, predict, appointments, book, cancel, labtests, booktest, feedback, payments, logout, exit")
			case a.isPendingVerification():
				printlnFn("Available commands: verify, login, exit")
			default:
				printlnFn("Available commands: register, login, resetpw, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "verify":
			err = a.Verify(ctx)

		case "resetpw":
			err = a.ResetPassword(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "doctors":
			err = a.Doctors(ctx, args)

		case "hospitals":
			err = a.Hospitals(ctx)

		case "predict":
			err = a.Predict(ctx)

		case "appointments":
			err = a.Appointments(ctx)

		case "book":
			err = a.BookAppointment(ctx)

		case "cancel":
			err = a.CancelAppointment(ctx, args)

		case "labtests":
			err = a.LabTests(ctx)

		case "booktest":
			err = a.BookLabTest(ctx)

		case "feedback":
			err = a.Feedback(ctx)

		case "payments":
			err = a.Payments(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
