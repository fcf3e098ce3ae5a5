package main

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
	v1 "github.com/PaulBabatuyi/jobboard-chat/proto/chat/v1"
)

// usersStore is the subset of data.UsersStore the handlers use.
type usersStore interface {
	CreateUser(ctx context.Context, userName, hashedPassword, userType string) (*data.User, error)
	GetUserByUserName(ctx context.Context, userName string) (*data.User, error)
	GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error)
	UserExists(ctx context.Context, id bson.ObjectID) (bool, error)
	FindByUserType(ctx context.Context, userType string) ([]*data.User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, p data.Profile) (*data.User, error)
	DeleteUser(ctx context.Context, id bson.ObjectID) error
}

// conversationsStore is the subset of data.ConversationsStore the handlers use.
type conversationsStore interface {
	FindOrCreate(ctx context.Context, a, b string) (*data.Conversation, error)
	FindAllForUser(ctx context.Context, userID string, limit int64) ([]*data.ConversationSummary, error)
}

// messagesStore is the subset of data.MessagesStore the handlers use.
type messagesStore interface {
	Append(ctx context.Context, conversationID, senderID, text string) (*data.Message, error)
	ListByConversation(ctx context.Context, conversationID string, limit int64) ([]*data.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string) (int64, error)
}

// Server implements the chat service and contains references to stores and auth logic.
type Server struct {
	v1.UnimplementedChatServiceServer

	users  usersStore
	convs  conversationsStore
	msgs   messagesStore
	auth   *auth.JWTManager
	logger *slog.Logger
}

// newServer returns a ready-to-use Server wired with stores and auth manager.
func newServer(users usersStore, convs conversationsStore, msgs messagesStore, authMgr *auth.JWTManager, logger *slog.Logger) *Server {
	return &Server{
		users:  users,
		convs:  convs,
		msgs:   msgs,
		auth:   authMgr,
		logger: logger.With("component", "chat"),
	}
}

// registerService registers the ChatService on the given gRPC server.
func registerService(s *grpc.Server, srv *Server) {
	v1.RegisterChatServiceServer(s, srv)
}
