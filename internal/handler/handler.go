package handler

import (
	"encoding/json"
	"net/http"

	"pdf-parser/internal/models"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a {"detail": msg} response.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, models.ErrorResponse{Detail: msg})
}
