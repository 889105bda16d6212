package models

// UserProfile is best-effort cached display data fetched after
// authentication. It is not authoritative; the backend owns the record.
type UserProfile struct {
	Email            string `json:"email" validate:"required"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

// UpdateProfileRequest is the body of PUT /users/profile.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
