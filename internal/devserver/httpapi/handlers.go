package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/expenseshare/internal/common"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/users"
)

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type userBody struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name,omitempty"`
}

type settingsBody struct {
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	PageLimit  int    `json:"pageLimit"`
}

type authResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Token    string        `json:"token,omitempty"`
	User     *userBody     `json:"user,omitempty"`
	Settings *settingsBody `json:"settings,omitempty"`
}

type familyMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type familyResponse struct {
	Data    []familyMember `json:"data"`
	Message string         `json:"message,omitempty"`
}

var defaultSettings = settingsBody{Language: "en", DateFormat: "DD/MM/YYYY", PageLimit: 10}

func (s *Server) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.users.SendCode(r.Context(), req.Phone)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := authResponse{Success: true, Message: "OTP sent successfully"}
	if sess != nil {
		fillSession(&resp, sess)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.users.VerifyCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := authResponse{Success: true, Message: "OTP verified successfully"}
	fillSession(&resp, sess)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) familyMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.users.FamilyMembers(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := familyResponse{Data: make([]familyMember, 0, len(members))}
	for _, m := range members {
		resp.Data = append(resp.Data, familyMember{ID: m.ID, Name: displayName(m), PhoneNumber: m.Phone})
	}
	writeJSON(w, http.StatusOK, resp)
}

func fillSession(resp *authResponse, sess *users.Session) {
	resp.Token = sess.Token
	resp.User = &userBody{ID: sess.User.ID, PhoneNumber: sess.User.Phone, Name: sess.User.Name}
	settings := defaultSettings
	resp.Settings = &settings
}

func displayName(u *users.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Phone
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidPhone):
		writeError(w, http.StatusBadRequest, "Invalid phone number")
	case errors.Is(err, common.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, common.ErrCodeExpired):
		writeError(w, http.StatusBadRequest, "OTP expired. Please request a new one.")
	case errors.Is(err, common.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "Too many attempts. Please request a new OTP.")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
