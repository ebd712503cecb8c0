package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todos, err := h.services.TodoService.ListTodos(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}

	utils.WriteJSON(w, models.TodosResponse{Success: true, Count: len(todos), Todos: todos}, http.StatusOK)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.GetTodo(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeTodoError(w, r, err, "access")
		return
	}

	utils.WriteJSON(w, models.TodoResponse{Success: true, Todo: todo}, http.StatusOK)
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var request models.CreateTodoRequest
	if err = decodeBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.CreateTodo(r.Context(), userID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TodoResponse{Success: true, Message: "Todo created successfully", Todo: todo}, http.StatusCreated)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var update models.TodoUpdate
	if err = decodeBody(w, r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.UpdateTodo(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		h.writeTodoError(w, r, err, "update")
		return
	}

	utils.WriteJSON(w, models.TodoResponse{Success: true, Message: "Todo updated successfully", Todo: todo}, http.StatusOK)
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.ToggleTodo(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeTodoError(w, r, err, "update")
		return
	}

	utils.WriteJSON(w, models.TodoResponse{Success: true, Message: "Todo status updated successfully", Todo: todo}, http.StatusOK)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.TodoService.DeleteTodo(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeTodoError(w, r, err, "delete")
		return
	}

	writeMessage(w, http.StatusOK, true, "Todo deleted successfully")
}
