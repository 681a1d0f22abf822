package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/notice-service/internal/models"
	"github.com/senyabanana/notice-service/internal/utils"
)

// StorageCheck проверяет доступность хранилища релизов.
type StorageCheck func(ctx context.Context) error

// NewPingHandler возвращает обработчик GET /api/ping. При check == nil хранилище не проверяется.
func NewPingHandler(check StorageCheck, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.SendErrorResponse(w, models.NewInvalidInputError("invalid method, only GET is allowed"))
			return
		}

		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Println(err)
				utils.SendErrorResponse(w, models.NewErrorResponse(http.StatusServiceUnavailable, "storage is not reachable"))
				return
			}
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "ok"); err != nil {
			log.Println(err)
		}
	}
}
