package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/todo-server/internal/api/grpc/handler"
	"github.com/dtroode/todo-server/internal/api/grpc/middleware"
	"github.com/dtroode/todo-server/internal/logger"
)

// Router wires the operational gRPC surface.
type Router struct {
	health *handler.Health
	logger *logger.Logger
}

// New creates new gRPC Router instance.
func New(health *handler.Health, logger *logger.Logger) *Router {
	return &Router{
		health: health,
		logger: logger,
	}
}

// Register builds a gRPC server with logging and panic recovery
// and registers the health and reflection services on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(r.recoverPanic)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	healthpb.RegisterHealthServer(s, r.health.Server())
	reflection.Register(s)

	return s
}

func (r *Router) recoverPanic(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panicked", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}
