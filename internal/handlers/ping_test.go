package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPingHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		check      StorageCheck
		wantStatus int
		wantBody   string
	}{
		{name: "without storage check", method: http.MethodGet, wantStatus: http.StatusOK, wantBody: "ok"},
		{
			name:       "storage reachable",
			method:     http.MethodGet,
			check:      func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "storage unreachable",
			method:     http.MethodGet,
			check:      func(context.Context) error { return errors.New("connection refused") },
			wantStatus: http.StatusServiceUnavailable,
		},
		{name: "wrong method", method: http.MethodPost, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/ping", nil)
			rec := httptest.NewRecorder()

			NewPingHandler(tt.check, time.Second)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
