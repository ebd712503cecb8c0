package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var request models.SignUpRequest
	if err := decodeBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.SignUp(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", user.UserID).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token.SignedString,
		User:    &user,
	}, http.StatusCreated)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var request models.SignInRequest
	if err := decodeBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.SignIn(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.UserID).Msg("user logged in")

	utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		Message: "Logged in successfully",
		Token:   token.SignedString,
		User:    &user,
	}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Me(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Success: true, User: user}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ForgotPasswordRequest
	if err := decodeBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.PasswordResetService.RequestReset(r.Context(), request); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Email sent successfully")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ResetPasswordRequest
	if err := decodeBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	request.Token = chi.URLParam(r, "resetToken")

	token, err := h.services.PasswordResetService.ResetPassword(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		Message: "Password reset successful",
		Token:   token.SignedString,
	}, http.StatusOK)
}
