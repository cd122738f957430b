// Package services contains the application services of the expense-sharing
// client.
//
// AuthService turns a phone-number login into the two OTP calls of the
// backend and persists any credential they return. GroupService covers the
// backend-backed group lookups.
//
// Both services perform exactly one request per call and surface the
// resulting error unchanged: api.ErrNetwork for transport failures and
// *api.Error for backend rejections. Retrying is left to the caller.
package services
