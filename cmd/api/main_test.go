package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	"github.com/PaulBabatuyi/jobboard-chat/internal/config"
	"github.com/PaulBabatuyi/jobboard-chat/internal/middleware"
)

func TestServerOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := middleware.NewLimiterStore(10, 3, time.Minute)
	defer limiter.Stop()
	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)

	opts, err := serverOptions(config.ServerConfig{Port: "0"}, logger, limiter, jwtMgr)
	require.NoError(t, err)
	assert.Len(t, opts, 3, "keepalive params, enforcement policy and interceptor chain")

	_, err = serverOptions(config.ServerConfig{RequireTLS: true}, logger, limiter, jwtMgr)
	assert.Error(t, err)

	_, err = serverOptions(config.ServerConfig{TLSCert: "missing.pem", TLSKey: "missing.key"}, logger, limiter, jwtMgr)
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	debug := setupLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))

	warn := setupLogger(config.LoggingConfig{Level: "warn"})
	assert.False(t, warn.Enabled(ctx, slog.LevelInfo))
	assert.True(t, warn.Enabled(ctx, slog.LevelWarn))

	fallback := setupLogger(config.LoggingConfig{Level: "verbose"})
	assert.True(t, fallback.Enabled(ctx, slog.LevelInfo))
	assert.False(t, fallback.Enabled(ctx, slog.LevelDebug))
}
