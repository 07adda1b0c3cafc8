package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/Bipul-Dubey/health-index/predictor-service/config"
	"github.com/Bipul-Dubey/health-index/predictor-service/handlers"
	"github.com/Bipul-Dubey/health-index/predictor-service/routes"
	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("predictor service failed", "error", err)
		os.Exit(1)
	}
	slog.Info("predictor service stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("failed to release resources", "error", err)
		}
	}()

	serviceManager, err := services.NewServiceManager(services.Dependencies{
		Credentials:    services.Credentials{Username: cfg.AuthUsername, Password: cfg.AuthPassword},
		Dataset:        app.data,
		Scaler:         app.scaler,
		Registry:       app.registry,
		Store:          app.store,
		Emitter:        app.emitter,
		Signer:         utils.NewTokenSigner(cfg.JWTSecret, cfg.SessionTTL),
		PredictTimeout: cfg.PredictTimeout,
	})
	if err != nil {
		return err
	}

	handlerManager := handlers.NewHandlerManager(serviceManager, handlers.PageOptions{
		ImagePath: imagePath(cfg.ImagePath),
	})
	r := routes.SetupRoutes(handlerManager, serviceManager.AuthenticationService, routes.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	var handler http.Handler = r
	if cfg.H2CEnabled {
		handler = h2c.NewHandler(r, &http2.Server{})
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var grpcServer *grpc.Server
	var lis net.Listener
	if cfg.GRPCPort != "" {
		lis, err = net.Listen("tcp", net.JoinHostPort(cfg.GRPCHost, cfg.GRPCPort))
		if err != nil {
			return err
		}
		grpcServer = grpc.NewServer()
		regressor.RegisterInferenceServer(grpcServer, regressor.NewInferenceServer(app.registry))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("predictor service starting", "port", cfg.Port, "h2c", cfg.H2CEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if grpcServer != nil {
		g.Go(func() error {
			slog.Info("inference gRPC server starting", "addr", lis.Addr().String())
			return grpcServer.Serve(lis)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down gracefully", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if grpcServer != nil {
			grpcServer.GracefulStop()
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// imagePath returns path when the file exists, so the page only links an
// image that can be served.
func imagePath(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		slog.Warn("image not available, page renders without it", "path", path, "error", err)
		return ""
	}
	return path
}
