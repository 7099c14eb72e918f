package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
	"liyu1981.xyz/iot-heartbeat-service/pkg/db"
	iotGrpc "liyu1981.xyz/iot-heartbeat-service/pkg/grpc"
	iotHttp "liyu1981.xyz/iot-heartbeat-service/pkg/http"
	"liyu1981.xyz/iot-heartbeat-service/pkg/iot"
	"liyu1981.xyz/iot-heartbeat-service/pkg/metrics"
)

func openStore(cfg *common.Config) (*db.DB, error) {
	dialector, err := db.UseDialector(cfg)
	if err != nil {
		return nil, err
	}
	return db.Open(dialector, db.OptionsFor(dialector, cfg.DBConnMaxLifetime))
}

func runMigrate(cfg *common.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForStore(ctx, cfg.DBConnectAttempts, cfg.DBConnectInterval); err != nil {
		return err
	}
	return store.EnsureSchema(ctx)
}

func runServer(cfg *common.Config) error {
	logger := common.GetLogger()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// a store that stays down is not fatal, requests fail until it comes back
	ctx := context.Background()
	if err := store.WaitForStore(ctx, cfg.DBConnectAttempts, cfg.DBConnectInterval); err != nil {
		logger.Error("Starting without database", zap.Error(err))
	} else if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("Failed to create schema, will retry on first request", zap.Error(err))
	}

	iotCore := iot.New(store, metrics.NewRegistry(), iot.StatusThresholds{
		OnlineTimeout:    cfg.OnlineTimeout,
		AtRiskTimeout:    cfg.AtRiskTimeout,
		BatteryThreshold: cfg.BatteryThreshold,
	})

	limiter := iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst)
	logger.Info("Rate limiter created with:",
		zap.Bool("enabled", limiter.Enabled()),
		zap.Float64("default_rate", cfg.DefaultRate),
		zap.Int("default_burst", cfg.DefaultBurst),
	)

	var grpcServer *grpc.Server
	if cfg.GrpcHostPort != "" {
		grpcServer = iotGrpc.NewServer(&iotGrpc.IOTServer{
			Iot:              iotCore,
			RateLimiterStore: limiter,
		})

		listener, err := net.Listen("tcp", cfg.GrpcHostPort)
		if err != nil {
			return errors.Wrapf(err, "failed to listen on %s", cfg.GrpcHostPort)
		}

		go func() {
			logger.Info("Starting gRPC server on: " + cfg.GrpcHostPort)
			if err := grpcServer.Serve(listener); err != nil {
				logger.Error("gRPC server failed to serve", zap.Error(err))
			}
		}()
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rs := &iotHttp.RestfulServer{
		Server:              gin.Default(),
		Iot:                 iotCore,
		RateLimiterStore:    limiter,
		RecentActivityRange: cfg.RecentActivityRange,
	}
	rs.Setup()

	srv := &http.Server{
		Addr:    cfg.HttpHostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	<-quit

	logger.Info("Shutdown Server ...")

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		return errors.Wrap(err, "server shutdown")
	}

	_ = logger.Sync()
	return nil
}
