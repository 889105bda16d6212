// Package cli provides the interactive One Health portal command-line client.
//
// It wires configuration, the local credential store, the API pipeline, and
// the session manager into an interactive REPL. On startup the stored
// credential is restored, so a previously logged-in user lands directly in an
// authenticated session.
//
// Key flows:
//   - Login / two-factor verification / Logout
//   - Account registration and password reset
//   - Browsing doctors, hospitals and availability
//   - Booking and cancelling appointments and lab tests
//   - Feedback and payment history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
