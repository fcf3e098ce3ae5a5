package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	"github.com/PaulBabatuyi/jobboard-chat/internal/config"
	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
	"github.com/PaulBabatuyi/jobboard-chat/internal/db"
	"github.com/PaulBabatuyi/jobboard-chat/internal/middleware"
	v1 "github.com/PaulBabatuyi/jobboard-chat/proto/chat/v1"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	dbClient, err := db.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dbClient.Close(closeCtx)
	}()

	// Ensure indexes exist; the inbox and message listing depend on them
	if err := dbClient.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	logger.Info("connected to database", "database", cfg.Mongo.Database)

	// Create stores
	usersStore := data.NewUsersStore(dbClient.UsersCollection())
	msgsStore := data.NewMessagesStore(dbClient.MessagesCollection())
	convsStore := data.NewConversationsStore(dbClient.ConversationsCollection(), msgsStore)

	// Keys enable rotation; a single secret is used otherwise
	var jwtMgr *auth.JWTManager
	if len(cfg.Auth.Keys) > 0 {
		jwtMgr = auth.NewJWTManagerFromKeys(cfg.Auth.Keys, cfg.Auth.ActiveKid, cfg.Auth.TokenTTL)
	} else {
		jwtMgr = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}

	// Rate limiter for Register and Login (small burst allows a couple of quick retries)
	limiterStore := middleware.NewLimiterStore(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, time.Minute)
	defer limiterStore.Stop()

	serverOpts, err := serverOptions(cfg.Server, logger, limiterStore, jwtMgr)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer(serverOpts...)

	srv := newServer(usersStore, convsStore, msgsStore, jwtMgr, logger)
	registerService(grpcServer, srv)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listenAddr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", "addr", listenAddr, "tls", cfg.Server.TLSCert != "")
		serveErr <- grpcServer.Serve(lis)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server exit: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down gRPC server")
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		logger.Warn("graceful stop timed out, forcing")
		grpcServer.Stop()
	}
	return nil
}

// serverOptions assembles TLS credentials and the unary interceptor chain:
// logging -> rate limiter -> auth.
func serverOptions(sc config.ServerConfig, logger *slog.Logger, limiter *middleware.LimiterStore, jwtMgr *auth.JWTManager) ([]grpc.ServerOption, error) {
	var opts []grpc.ServerOption

	// If TLS certs are configured, create server credentials and require TLS
	if sc.TLSCert != "" && sc.TLSKey != "" {
		creds, err := credentials.NewServerTLSFromFile(sc.TLSCert, sc.TLSKey)
		if err != nil {
			return nil, fmt.Errorf("loading TLS certs: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	} else if sc.RequireTLS {
		return nil, errors.New("require_tls is set but tls_cert/tls_key are not configured")
	}

	// Drop idle connections and ping quiet clients
	opts = append(opts,
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 5 * time.Minute,
			Time:              2 * time.Minute,
			Timeout:           20 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
	)

	limited := map[string]bool{
		v1.ChatService_Register_FullMethodName: true,
		v1.ChatService_Login_FullMethodName:    true,
	}
	grpcLogger := logger.With("component", "grpc")
	opts = append(opts, grpc.ChainUnaryInterceptor(
		middleware.LoggingUnaryInterceptor(grpcLogger),
		middleware.RateLimitUnaryInterceptor(limiter, limited, grpcLogger),
		authUnaryInterceptor(jwtMgr),
	))
	return opts, nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
