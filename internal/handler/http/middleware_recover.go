package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

type requestInfoKey struct{}

// requestInfo is shared by the outer middleware and the auth middleware,
// so a recovered panic can still be attributed to the authenticated user.
type requestInfo struct {
	userID string
}

func withRequestInfo(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, &requestInfo{}))
}

func setRequestUserID(r *http.Request, userID string) {
	if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
		info.userID = userID
	}
}

func requestUserID(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return userID
	}
	if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
		return info.userID
	}
	return ""
}

// withRecover turns a panic into a 500 envelope and an error log record.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = withRequestInfo(r)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			stack := string(debug.Stack())
			message := fmt.Sprint(rec)

			logger.FromRequest(r).Error().
				Str("panic", message).
				Str("stack", stack).
				Msg("recovered from panic")
			h.recordError(r, http.StatusInternalServerError, message, stack)

			response := models.MessageResponse{Success: false, Message: serverErrorMessage}
			if !h.production {
				response.Stack = stack
			}
			utils.WriteJSON(w, response, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
