// Package credentials is the single source of truth for the device's
// authentication credential. A SQLite-backed key/value repository provides
// durable storage; Store layers an in-memory cache, atomic multi-key writes,
// and a generation tag over it.
package credentials

// Durable storage keys. No other component reads or writes these directly.
const (
	keyAuthToken   = "auth_token"
	keyUserID      = "user_id"
	keyUserProfile = "user_profile"
)

// Credential is the paired bearer token and user identifier representing an
// authenticated session. The two are set and cleared together, never one
// without the other.
type Credential struct {
	Token  string
	UserID string
}
