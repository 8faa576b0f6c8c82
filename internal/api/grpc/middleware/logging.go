package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/todo-server/internal/logger"
)

// Logging logs gRPC calls and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	l.log(info.FullMethod, start, err)

	return resp, err
}

// HandleGRPCStream logs method name, duration and status for each stream once it ends.
func (l *Logging) HandleGRPCStream(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	l.logger.Debug("gRPC stream started",
		"method", info.FullMethod)

	err := handler(srv, ss)

	l.log(info.FullMethod, start, err)

	return err
}

func (l *Logging) log(method string, start time.Time, err error) {
	code := codeOf(err)

	if err != nil && code != codes.Canceled {
		l.logger.Error("gRPC request failed",
			"method", method,
			"duration_ms", time.Since(start).Milliseconds(),
			"status", code.String(),
			"error", err.Error())
		return
	}

	l.logger.Debug("gRPC request completed",
		"method", method,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String())
}

// codeOf maps non-status errors to Internal.
func codeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}
