package router

import (
	"net/http"

	"github.com/senyabanana/notice-service/internal/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(commandHandler *handlers.CommandHandler, ping http.HandlerFunc, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", ping)
	mux.HandleFunc("/api/command", commandHandler.HandleCommand)
	mux.Handle("GET "+metricsPath, promhttp.Handler())

	return mux
}
