package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, true, "Server is running")
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetAppBuildInfo(r.Context())

	utils.WriteJSON(w, models.VersionResponse{
		Success: true,
		Version: info.BuildVersion(),
		Date:    info.BuildDate(),
		Commit:  info.BuildCommit(),
	}, http.StatusOK)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, false, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, false, "Method not allowed")
}
