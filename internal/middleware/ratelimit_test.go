package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type dummy struct{ userName string }

func (d dummy) GetUserName() string { return d.userName }

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func okHandler(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }

func TestLimiterStore_AllowAndCleanup(t *testing.T) {
	// allow 5 events immediately then the 6th should be rejected
	s := NewLimiterStore(5, 5, time.Hour)
	defer s.Stop()

	key := "user:recruiter1"
	for i := 0; i < 5; i++ {
		if !s.Allow(key) {
			t.Fatalf("expected allow at iteration %d", i)
		}
	}

	if s.Allow(key) {
		t.Fatalf("expected limiter to block after burst consumed")
	}

	// recently used entries survive an eviction pass
	s.evictIdle(time.Now())
	if s.Len() != 1 {
		t.Fatalf("expected 1 limiter, got %d", s.Len())
	}

	// idle entries are dropped
	s.evictIdle(time.Now().Add(11 * time.Minute))
	if s.Len() != 0 {
		t.Fatalf("expected idle limiter to be evicted, got %d", s.Len())
	}

	// Stop twice must not panic
	s.Stop()
}

func TestRateLimitUnaryInterceptor_KeysByUserName(t *testing.T) {
	s := NewLimiterStore(1, 1, time.Hour)
	defer s.Stop()

	const method = "/chat.v1.ChatService/Login"
	intercept := RateLimitUnaryInterceptor(s, map[string]bool{method: true}, discardLogger())
	info := &grpc.UnaryServerInfo{FullMethod: method}
	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 4000}})

	if _, err := intercept(ctx, dummy{"Recruiter1"}, info, okHandler); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}

	// same account with different casing shares the bucket
	_, err := intercept(ctx, dummy{" recruiter1 "}, info, okHandler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}

	// a different account from the same address has its own bucket
	if _, err := intercept(ctx, dummy{"applicant1"}, info, okHandler); err != nil {
		t.Fatalf("other user should pass: %v", err)
	}
}

func TestRateLimitUnaryInterceptor_FallbackAndUnlisted(t *testing.T) {
	s := NewLimiterStore(1, 1, time.Hour)
	defer s.Stop()

	const limited = "/chat.v1.ChatService/Register"
	intercept := RateLimitUnaryInterceptor(s, map[string]bool{limited: true}, discardLogger())
	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 4000}})

	// no user name: keyed by peer address
	info := &grpc.UnaryServerInfo{FullMethod: limited}
	if _, err := intercept(ctx, dummy{}, info, okHandler); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	if _, err := intercept(ctx, "no user name", info, okHandler); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted for same peer, got %v", err)
	}

	// methods outside the list are never limited
	other := &grpc.UnaryServerInfo{FullMethod: "/chat.v1.ChatService/ListMessages"}
	for i := 0; i < 5; i++ {
		if _, err := intercept(ctx, dummy{}, other, okHandler); err != nil {
			t.Fatalf("unlisted method limited at call %d: %v", i, err)
		}
	}
}

func TestRateLimitUnaryInterceptor_LogsRejections(t *testing.T) {
	s := NewLimiterStore(1, 1, time.Hour)
	defer s.Stop()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil)).With("component", "grpc")

	const method = "/chat.v1.ChatService/Login"
	intercept := RateLimitUnaryInterceptor(s, map[string]bool{method: true}, logger)
	info := &grpc.UnaryServerInfo{FullMethod: method}
	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-42")

	if _, err := intercept(ctx, dummy{"applicant1"}, info, okHandler); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("allowed calls should not log, got %s", buf.String())
	}

	if _, err := intercept(ctx, dummy{"applicant1"}, info, okHandler); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "WARN" || entry["msg"] != "rate limit exceeded" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["component"] != "grpc" || entry["request_id"] != "req-42" || entry["key"] != "user:applicant1" {
		t.Fatalf("entry missing context: %v", entry)
	}
}
