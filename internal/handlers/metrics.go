package handlers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultReplayed = "replayed"
	unknownCommand = "unknown"
)

var (
	// commandsTotal считает команды по имени и результату (ok, replayed или тип ошибки).
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notice_commands_total",
		Help: "Total processed notice commands by command and result",
	}, []string{"command", "result"})

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notice_command_duration_seconds",
		Help:    "Notice command processing duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"command"})
)

func observeCommand(command, result string, started time.Time) {
	commandsTotal.WithLabelValues(command, result).Inc()
	commandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}
