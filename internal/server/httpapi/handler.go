package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/knowhowcafe/auth/internal/common"
)

type sendOtpRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type forgotSendRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *HTTPServer) handleSendSignupOtp(w http.ResponseWriter, r *http.Request) {
	var in sendOtpRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" || in.Name == "" {
		s.fail(w, http.StatusBadRequest, "Email and name are required")
		return
	}

	err := s.auth.SendSignupOtp(r.Context(), in.Email, in.Name)
	switch {
	case err == nil:
		s.ok(w, "OTP sent successfully to your email")
	case errors.Is(err, common.ErrorDuplicate):
		s.fail(w, http.StatusBadRequest, "User with this email already exists")
	default:
		s.internalError(w, r, err)
	}
}

func (s *HTTPServer) handleVerifySignupOtp(w http.ResponseWriter, r *http.Request) {
	var in verifyOtpRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" || in.Otp == "" {
		s.fail(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	s.respondOtpConsume(w, r, s.auth.VerifySignupOtp(r.Context(), in.Email, in.Otp))
}

// respondOtpConsume maps the consume outcome for both verification
// endpoints. An absent record and an expired or wrong code are all client
// errors; the absent case stays vague on purpose.
func (s *HTTPServer) respondOtpConsume(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		s.ok(w, "OTP verified successfully")
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, common.ErrorOtpExpired):
		s.fail(w, http.StatusBadRequest, "OTP has expired")
	case errors.Is(err, common.ErrorOtpMismatch):
		s.fail(w, http.StatusBadRequest, "Invalid OTP")
	default:
		s.internalError(w, r, err)
	}
}

func (s *HTTPServer) handleCompleteSignup(w http.ResponseWriter, r *http.Request) {
	var in signupRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" || in.Name == "" || in.Password == "" {
		s.fail(w, http.StatusBadRequest, "Email, name, and password are required")
		return
	}

	user, session, err := s.auth.CompleteSignup(r.Context(), in.Email, in.Name, in.Password)
	switch {
	case err == nil:
		s.setSessionCookie(w, session.Token, session.Validity)
		s.writeJSON(w, http.StatusOK, response{
			Success: true,
			Message: "Account created successfully",
			User:    toUserJSON(user),
		})
	case errors.Is(err, common.ErrorWeakPassword):
		s.fail(w, http.StatusBadRequest, "Password must be at least 6 characters long")
	case errors.Is(err, common.ErrorDuplicate):
		s.fail(w, http.StatusBadRequest, "User with this email already exists")
	default:
		s.internalError(w, r, err)
	}
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" || in.Password == "" {
		s.fail(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, session, err := s.auth.Login(r.Context(), in.Email, in.Password, in.RememberMe)
	switch {
	case err == nil:
		s.setSessionCookie(w, session.Token, session.Validity)
		s.writeJSON(w, http.StatusOK, response{
			Success: true,
			Message: "Login successful",
			User:    toUserJSON(user),
		})
	case errors.Is(err, common.ErrorUnauthorized):
		s.fail(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		s.internalError(w, r, err)
	}
}

func (s *HTTPServer) handleSendForgotPasswordOtp(w http.ResponseWriter, r *http.Request) {
	var in forgotSendRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" {
		s.fail(w, http.StatusBadRequest, "Email is required")
		return
	}

	// unknown emails already return nil from the service, so registered and
	// unregistered addresses produce the same body here
	if err := s.auth.SendForgotPasswordOtp(r.Context(), in.Email); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.ok(w, "If an account exists with this email, an OTP has been sent")
}

func (s *HTTPServer) handleVerifyForgotPasswordOtp(w http.ResponseWriter, r *http.Request) {
	var in verifyOtpRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" || in.Otp == "" {
		s.fail(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	s.respondOtpConsume(w, r, s.auth.VerifyForgotPasswordOtp(r.Context(), in.Email, in.Otp))
}

func (s *HTTPServer) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetPasswordRequest
	if err := decodeJSON(r, &in); err != nil || in.Email == "" || in.NewPassword == "" {
		s.fail(w, http.StatusBadRequest, "Email and new password are required")
		return
	}

	err := s.auth.ResetPassword(r.Context(), in.Email, in.NewPassword)
	switch {
	case err == nil:
		s.ok(w, "Password reset successfully")
	case errors.Is(err, common.ErrorWeakPassword):
		s.fail(w, http.StatusBadRequest, "Password must be at least 6 characters long")
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, http.StatusNotFound, "User not found")
	default:
		s.internalError(w, r, err)
	}
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		s.fail(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	user, err := s.auth.GetUser(r.Context(), claims.UserID)
	switch {
	case err == nil:
		dto := toUserJSON(user)
		dto.CreatedAt = &user.CreatedAt
		s.writeJSON(w, http.StatusOK, response{Success: true, User: dto})
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, http.StatusNotFound, "User not found")
	default:
		s.internalError(w, r, err)
	}
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	s.ok(w, "Logged out successfully")
}

func (s *HTTPServer) handleGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	s.fail(w, http.StatusNotImplemented, "Google OAuth is not yet implemented. This is a placeholder endpoint.")
}
