package otpflow

import "errors"

// Messages shown when the backend gives none.
const (
	MsgInvalidPhone  = "Please enter a valid 10-digit phone number"
	MsgIncompleteOTP = "Please enter the 4-digit code"
	MsgMissingPhone  = "Phone number missing. Please start again from the login page."
	MsgSendFailed    = "Failed to send OTP. Please try again."
	MsgVerifyFailed  = "Invalid OTP. Please try again."
	MsgResendFailed  = "Failed to resend OTP. Please try again."
)

var (
	ErrPageClosed     = errors.New("page closed")
	ErrResendNotReady = errors.New("resend not available yet")
	// ErrNoToken is returned when verification succeeded without a credential.
	ErrNoToken = errors.New("verification returned no credential")
)

// ValidationError is a local input error; the backend was not contacted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
