package server

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const ServiceName = "messenger.Messenger"

// NewGRPCServer returns a server exposing the standard health service. The
// returned health server is used to flip serving status on shutdown.
func NewGRPCServer(logger logrus.FieldLogger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthServer)

	return srv, healthServer
}

func loggingInterceptor(logger logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.
			WithField("method", info.FullMethod).
			WithField("duration", time.Since(start).String())
		if err != nil {
			entry.
				WithField("code", status.Code(err).String()).
				WithError(err).
				Warning("grpc call failed")
		} else {
			entry.Debug("grpc call")
		}
		return resp, err
	}
}
