package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/utils"
)

// auth enforces bearer token authentication.
//
// The token is taken from "Authorization: Bearer <token>", verified, and the
// user it names is loaded and stored in the request context (see
// [utils.WithUser]). A missing header, a bad token or a vanished user end
// the request with 401; the protected handler is never reached.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Info().Err(err).Msg("authentication failed")
			h.writeError(w, r, err)
			return
		}

		setRequestUserID(r, user.UserID)
		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// currentUser returns the user stored by the auth middleware.
func currentUser(r *http.Request) (string, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", ErrNoUserInContext
	}
	return userID, nil
}
