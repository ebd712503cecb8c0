package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-todo-list/internal/utils"
)

const maxRequestBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := utils.ReadJSON(r, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}
