package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "todo.v1.TodoServer"

const pingTimeout = 2 * time.Second

// Health keeps the gRPC health server in sync with store reachability.
type Health struct {
	server   *health.Server
	pinger   model.Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewHealth creates a Health monitor around a fresh health.Server.
func NewHealth(pinger model.Pinger, interval time.Duration, logger *logger.Logger) *Health {
	return &Health{
		server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

// Server returns the health server to register on a grpc.Server.
func (h *Health) Server() *health.Server {
	return h.server
}

// Check pings the store once and publishes the result.
func (h *Health) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health: store ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)

	return status
}

// Run checks immediately and then on every tick until ctx is done.
// On exit every service is marked NOT_SERVING.
func (h *Health) Run(ctx context.Context) {
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			h.logger.Info("Health: monitor stopped")
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
