package server

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// New builds a gRPC server with ReportService, the health service and
// reflection registered. The returned health server reports SERVING.
func New(svc ReportServiceServer, logger *slog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		IdentityInterceptor(),
		LoggingInterceptor(logger),
	))
	gs := grpc.NewServer(opts...)
	RegisterReportServiceServer(gs, svc)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	// reflection for grpcurl
	reflection.Register(gs)
	return gs, hs
}
