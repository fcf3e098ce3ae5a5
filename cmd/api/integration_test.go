package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
	"github.com/PaulBabatuyi/jobboard-chat/internal/db"
	v1 "github.com/PaulBabatuyi/jobboard-chat/proto/chat/v1"
)

func TestRegisterLoginAndChat(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	ctx := context.Background()
	dbClient, err := db.New(ctx, uri, fmt.Sprintf("apitest_%d", time.Now().UnixNano()), 5*time.Second)
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	defer func() {
		_ = dbClient.Drop(context.Background())
		_ = dbClient.Close(context.Background())
	}()
	if err := dbClient.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes failed: %v", err)
	}

	usersStore := data.NewUsersStore(dbClient.UsersCollection())
	msgsStore := data.NewMessagesStore(dbClient.MessagesCollection())
	convsStore := data.NewConversationsStore(dbClient.ConversationsCollection(), msgsStore)
	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// set up bufconn server
	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer(grpc.UnaryInterceptor(authUnaryInterceptor(jwtMgr)))
	registerService(s, newServer(usersStore, convsStore, msgsStore, jwtMgr, logger))
	go func() {
		_ = s.Serve(lis)
	}()
	defer s.GracefulStop()

	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }
	conn, err := grpc.NewClient("passthrough:///bufnet", grpc.WithContextDialer(dialer), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	defer conn.Close()

	client := v1.NewChatServiceClient(conn)

	// Register
	rec, err := client.Register(ctx, &v1.RegisterRequest{UserName: "recruiter1", Password: "testPass123", UserType: "recruiter"})
	if err != nil {
		t.Fatalf("Register RPC failed: %v", err)
	}
	if rec.Token == "" || rec.UserId == "" {
		t.Fatalf("Register response missing token or user_id")
	}
	app, err := client.Register(ctx, &v1.RegisterRequest{UserName: "applicant1", Password: "testPass123", UserType: "applicant"})
	if err != nil {
		t.Fatalf("Register RPC failed: %v", err)
	}

	// Login
	login, err := client.Login(ctx, &v1.LoginRequest{UserName: "Recruiter1", Password: "testPass123"})
	if err != nil {
		t.Fatalf("Login RPC failed: %v", err)
	}
	recCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+login.Token)
	appCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+app.Token)

	if _, err := client.SendMessage(recCtx, &v1.SendMessageRequest{RecipientId: app.UserId, Text: "hello"}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	// created_at has millisecond precision; keep the two sends apart
	time.Sleep(5 * time.Millisecond)
	sent, err := client.SendMessage(appCtx, &v1.SendMessageRequest{RecipientId: rec.UserId, Text: "hi"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	inbox, err := client.ListConversations(recCtx, &v1.ListConversationsRequest{})
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(inbox.Conversations) != 1 || inbox.Conversations[0].LatestMessage == nil || inbox.Conversations[0].LatestMessage.Text != "hi" {
		t.Fatalf("unexpected inbox: %+v", inbox.Conversations)
	}

	read, err := client.MarkMessagesRead(recCtx, &v1.MarkMessagesReadRequest{ConversationId: sent.ConversationId})
	if err != nil {
		t.Fatalf("MarkMessagesRead failed: %v", err)
	}
	if read.Updated != 1 {
		t.Fatalf("expected 1 message marked read, got %d", read.Updated)
	}

	list, err := client.ListMessages(appCtx, &v1.ListMessagesRequest{ConversationId: sent.ConversationId})
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(list.Messages) != 2 || list.Messages[0].Text != "hi" || list.Messages[1].Text != "hello" {
		t.Fatalf("unexpected message order: %+v", list.Messages)
	}
}
