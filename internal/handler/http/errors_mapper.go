package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/service"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/internal/validators"
	"github.com/MKhiriev/go-todo-list/models"
)

const serverErrorMessage = "Server Error"

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorMappings is ordered: the first entry matching the error chain wins.
// Service errors come first because they may wrap store errors.
var errorMappings = []errorMapping{
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, "Not authorized, no token"},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, "Not authorized, no token"},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, "Not authorized, token failed"},
	{service.ErrTokenIsInvalid, http.StatusUnauthorized, "Not authorized, token failed"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{service.ErrForbidden, http.StatusUnauthorized, "Not authorized to access this todo"},

	{service.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{service.ErrInvalidResetToken, http.StatusBadRequest, "Invalid or expired token"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrTodoNotFound, http.StatusNotFound, "Todo not found"},
	{service.ErrMailDeliveryFailed, http.StatusInternalServerError, "Email could not be sent"},

	{ErrInvalidRequestBody, http.StatusBadRequest, "Invalid request body"},
	{validators.ErrMissingCredentials, http.StatusBadRequest, "Please provide email and password"},
	{validators.ErrEmptyName, http.StatusBadRequest, "Please provide a name"},
	{validators.ErrNameTooLong, http.StatusBadRequest, "Name cannot be more than 50 characters"},
	{validators.ErrEmptyEmail, http.StatusBadRequest, "Please provide an email"},
	{validators.ErrInvalidEmail, http.StatusBadRequest, "Please provide a valid email"},
	{validators.ErrEmptyPassword, http.StatusBadRequest, "Please provide a password"},
	{validators.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters"},
	{validators.ErrEmptyTitle, http.StatusBadRequest, "Please provide a title"},
	{validators.ErrTitleTooLong, http.StatusBadRequest, "Title cannot be more than 100 characters"},
	{validators.ErrDescriptionTooLong, http.StatusBadRequest, "Description cannot be more than 500 characters"},
}

func lookupError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m
		}
	}
	return errorMapping{err: err, status: http.StatusInternalServerError, message: serverErrorMessage}
}

func statusFromError(err error) int {
	return lookupError(err).status
}

func messageFromError(err error) string {
	return lookupError(err).message
}

// writeError sends the error envelope for err. Server errors are logged,
// recorded in the error log and, outside production, carry the error chain
// as the stack.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	m := lookupError(err)
	log := logger.FromRequest(r)

	response := models.MessageResponse{Success: false, Message: m.message}
	if m.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", m.status).Msg("request failed")
		h.recordError(r, m.status, err.Error(), err.Error())
		if !h.production {
			response.Stack = err.Error()
		}
	} else {
		log.Debug().Err(err).Int("status", m.status).Msg("request rejected")
	}

	utils.WriteJSON(w, response, m.status)
}

// writeTodoError reports a wrong-owner access with the message of the
// attempted action ("access", "update", "delete").
func (h *Handler) writeTodoError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if errors.Is(err, service.ErrForbidden) {
		logger.FromRequest(r).Debug().Err(err).Msg("todo of another user")
		writeMessage(w, http.StatusUnauthorized, false, "Not authorized to "+action+" this todo")
		return
	}
	h.writeError(w, r, err)
}

func (h *Handler) recordError(r *http.Request, status int, message, stack string) {
	if h.services == nil || h.services.ErrorLogService == nil {
		return
	}

	h.services.ErrorLogService.Record(r.Context(), models.ErrorLog{
		Message: message,
		Stack:   stack,
		Status:  status,
		Method:  r.Method,
		URL:     r.URL.RequestURI(),
		UserID:  requestUserID(r),
	})
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	utils.WriteJSON(w, models.MessageResponse{Success: success, Message: message}, status)
}
