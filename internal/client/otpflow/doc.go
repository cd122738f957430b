// Package otpflow drives the two screens of the phone + OTP login.
//
// LoginPage collects and validates the phone number and asks the backend
// to send a code. VerifyPage collects the four-digit code, exchanges it for
// a credential, signs the session in and moves on to the page the user
// originally asked for.
//
// Page state moves through
//
//	EnteringPhone -> Submitting -> AwaitingCode -> Verifying -> Authenticated
//
// and a failed step returns to the preceding input state with an error
// message while keeping what the user typed.
//
// Each page owns a context cancelled by Close. A response arriving after
// Close is dropped with ErrPageClosed and changes nothing.
package otpflow
