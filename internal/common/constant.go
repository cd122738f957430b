// Package common contains shared constants, sentinel errors and small random
// helpers used by both the client and the development backend.
package common

// AuthorizationHeaderName carries the bearer credential on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the credential in the Authorization header.
const BearerPrefix = "Bearer "

// DefaultPhonePrefix is the international prefix prepended to the ten local
// digits before a phone number is sent to the backend.
const DefaultPhonePrefix = "+91"

// PhoneDigits is the number of local digits a phone number must have.
const PhoneDigits = 10

// OTPLength is the number of digits in a one-time code.
const OTPLength = 4
