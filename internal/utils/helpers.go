package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/senyabanana/notice-service/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, errorResponse *models.ErrorResponse) {
	SendJSON(w, errorResponse.StatusCode, errorResponse)
}

// SendJSON отправляет ответ в формате JSON с указанным кодом.
func SendJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println(err)
	}
}
