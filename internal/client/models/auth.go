// Package models holds the client-side wire and domain types.
package models

// User is the identity returned by the backend after an OTP exchange.
type User struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name,omitempty"`
}

// Settings are per-user display preferences delivered with the login response.
type Settings struct {
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	PageLimit  int    `json:"pageLimit"`
}

// Profile is the cached user and settings kept next to the credential.
type Profile struct {
	User     *User     `json:"user,omitempty"`
	Settings *Settings `json:"settings,omitempty"`
}

// AuthResponse is the body of both /auth/send-otp and /auth/verify-otp.
// Token is optional: when present it becomes the active credential.
type AuthResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Token    string    `json:"token,omitempty"`
	User     *User     `json:"user,omitempty"`
	Settings *Settings `json:"settings,omitempty"`
}

// HasToken reports whether the response carries a usable credential.
func (r *AuthResponse) HasToken() bool {
	return r != nil && r.Token != ""
}

// Profile extracts the cacheable part of the response.
func (r *AuthResponse) Profile() *Profile {
	if r == nil || (r.User == nil && r.Settings == nil) {
		return nil
	}
	return &Profile{User: r.User, Settings: r.Settings}
}

// SendOTPRequest is the body of POST /auth/send-otp.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// VerifyOTPRequest is the body of POST /auth/verify-otp.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}
