package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/export"
	repo "github.com/joseph-ayodele/bizledger/internal/repository"
	"github.com/joseph-ayodele/bizledger/internal/server"
	"github.com/joseph-ayodele/bizledger/internal/session"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	stores, err := repo.InitStores(ctx, cfg, cfg.Local.Path, logger)
	if err != nil {
		logger.Error("failed to open stores", "err", err)
		os.Exit(1)
	}
	defer stores.Close()

	var durable session.Durable
	if stores.Durable != nil {
		durable = stores.Durable
	}
	sess := session.New(stores.Local, durable, session.ContextIdentity{}, logger)
	exporter := export.NewService(sess, cfg.Report, logger)
	svc := server.NewReportService(sess, exporter, logger)

	grpcServer, healthServer := server.New(svc, logger)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen", "addr", cfg.Server.GRPCAddr, "err", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddr, "durable", durable != nil)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down gRPC server")
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	logger.Info("server stopped")
}
