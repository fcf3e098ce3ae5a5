package main

import (
	"context"
	"errors"
	"html"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
	"github.com/PaulBabatuyi/jobboard-chat/internal/normalize"
	v1 "github.com/PaulBabatuyi/jobboard-chat/proto/chat/v1"
)

// Page sizes used when a request leaves limit unset, and the largest accepted.
const (
	defaultConversationLimit = 50
	defaultMessageLimit      = 100
	maxLimit                 = 500
)

// Register handles user registration: validates input, hashes password, stores user, returns JWT token
func (s *Server) Register(ctx context.Context, req *v1.RegisterRequest) (*v1.RegisterResponse, error) {
	reg := data.Registration{
		UserName: req.GetUserName(),
		Password: req.GetPassword(),
		UserType: req.GetUserType(),
	}
	if err := reg.Validate(); err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	// Hash password using auth utility
	hashed, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to hash password: %v", err)
	}

	// Create user in DB
	user, err := s.users.CreateUser(ctx, reg.UserName, hashed, reg.UserType)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	// Generate JWT token for newly created user
	token, expiresAt, err := s.auth.GenerateToken(user.ID, user.UserName, user.UserType)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to generate token: %v", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID.Hex(), "user_type", user.UserType)
	return &v1.RegisterResponse{
		Token:     token,
		UserId:    user.ID.Hex(),
		ExpiresAt: timestamppb.New(expiresAt),
	}, nil
}

// Login authenticates a user and returns a JWT token
func (s *Server) Login(ctx context.Context, req *v1.LoginRequest) (*v1.LoginResponse, error) {
	// Lookup user by login name; unknown names and wrong passwords look the same
	user, err := s.users.GetUserByUserName(ctx, normalize.UserName(req.GetUserName()))
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, s.toStatus(ctx, "login", err)
	}

	// Verify password
	if err := auth.CheckPassword(user.Password, req.GetPassword()); err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	token, expiresAt, err := s.auth.GenerateToken(user.ID, user.UserName, user.UserType)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to generate token: %v", err)
	}

	return &v1.LoginResponse{
		Token:     token,
		UserId:    user.ID.Hex(),
		ExpiresAt: timestamppb.New(expiresAt),
	}, nil
}

// GetMe returns the caller's profile.
func (s *Server) GetMe(ctx context.Context, _ *emptypb.Empty) (*v1.User, error) {
	_, id, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, "get user", err)
	}
	return toProtoUser(user), nil
}

// UpdateMe applies a partial profile update to the caller. A new password is
// validated in plaintext and stored hashed.
func (s *Server) UpdateMe(ctx context.Context, req *v1.UpdateMeRequest) (*v1.User, error) {
	_, id, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := data.Profile{
		Password:    req.Password,
		UserType:    req.UserType,
		Avatar:      req.Avatar,
		JobPosition: req.JobPosition,
		Description: req.Description,
		Company:     req.Company,
		Salary:      req.Salary,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Skills:      req.Skills,
		Education:   req.Education,
		Experience:  req.Experience,
	}
	if err := p.Validate(); err != nil {
		return nil, s.toStatus(ctx, "update user", err)
	}

	if p.Password != nil {
		hashed, err := auth.HashPassword(*p.Password)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "failed to hash password: %v", err)
		}
		p.Password = &hashed
	}

	user, err := s.users.UpdateProfile(ctx, id, p)
	if err != nil {
		return nil, s.toStatus(ctx, "update user", err)
	}
	return toProtoUser(user), nil
}

// DeleteMe removes the caller's account. Their conversations are kept.
func (s *Server) DeleteMe(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	_, id, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return nil, s.toStatus(ctx, "delete user", err)
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id.Hex())
	return &emptypb.Empty{}, nil
}

// ListUsers lists users, optionally filtered by role.
func (s *Server) ListUsers(ctx context.Context, req *v1.ListUsersRequest) (*v1.ListUsersResponse, error) {
	switch req.GetUserType() {
	case "", data.UserTypeRecruiter, data.UserTypeApplicant:
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown user_type %q", req.GetUserType())
	}

	users, err := s.users.FindByUserType(ctx, req.GetUserType())
	if err != nil {
		return nil, s.toStatus(ctx, "list users", err)
	}

	resp := &v1.ListUsersResponse{Users: make([]*v1.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toProtoUser(u))
	}
	return resp, nil
}

// CreateConversation returns the caller's conversation with participant_id,
// creating it on first contact.
func (s *Server) CreateConversation(ctx context.Context, req *v1.CreateConversationRequest) (*v1.Conversation, error) {
	caller, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	participant, err := s.requireUser(ctx, req.GetParticipantId())
	if err != nil {
		return nil, err
	}

	conv, err := s.convs.FindOrCreate(ctx, caller, participant)
	if err != nil {
		return nil, s.toStatus(ctx, "create conversation", err)
	}
	return toProtoConversation(conv), nil
}

// ListConversations returns the caller's inbox, most recent activity first.
func (s *Server) ListConversations(ctx context.Context, req *v1.ListConversationsRequest) (*v1.ListConversationsResponse, error) {
	caller, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	limit, err := pageLimit(req.GetLimit(), defaultConversationLimit)
	if err != nil {
		return nil, err
	}

	rows, err := s.convs.FindAllForUser(ctx, caller, limit)
	if err != nil {
		return nil, s.toStatus(ctx, "list conversations", err)
	}

	resp := &v1.ListConversationsResponse{Conversations: make([]*v1.ConversationSummary, 0, len(rows))}
	for _, row := range rows {
		summary := &v1.ConversationSummary{
			ConversationId: row.ConversationID,
			Participants:   row.Participants,
		}
		if row.LatestMessage != nil {
			summary.LatestMessage = toProtoMessage(row.LatestMessage)
		}
		resp.Conversations = append(resp.Conversations, summary)
	}
	return resp, nil
}

// SendMessage appends a message from the caller to the conversation with
// recipient_id, creating the conversation on first contact.
func (s *Server) SendMessage(ctx context.Context, req *v1.SendMessageRequest) (*v1.Message, error) {
	caller, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	// Escape before storing; clients render text as-is
	text := html.EscapeString(req.GetText())
	// Reject the message before FindOrCreate can write an empty conversation
	if err := data.ValidateText(text); err != nil {
		return nil, s.toStatus(ctx, "send message", err)
	}
	recipient, err := s.requireUser(ctx, req.GetRecipientId())
	if err != nil {
		return nil, err
	}

	conv, err := s.convs.FindOrCreate(ctx, caller, recipient)
	if err != nil {
		return nil, s.toStatus(ctx, "send message", err)
	}

	saved, err := s.msgs.Append(ctx, conv.ID, caller, text)
	if err != nil {
		return nil, s.toStatus(ctx, "send message", err)
	}
	return toProtoMessage(saved), nil
}

// ListMessages returns a conversation's messages, newest first. Only its two
// participants may read it.
func (s *Server) ListMessages(ctx context.Context, req *v1.ListMessagesRequest) (*v1.ListMessagesResponse, error) {
	caller, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, req.GetConversationId(), caller); err != nil {
		return nil, err
	}

	limit, err := pageLimit(req.GetLimit(), defaultMessageLimit)
	if err != nil {
		return nil, err
	}

	msgs, err := s.msgs.ListByConversation(ctx, req.GetConversationId(), limit)
	if err != nil {
		return nil, s.toStatus(ctx, "list messages", err)
	}

	resp := &v1.ListMessagesResponse{Messages: make([]*v1.Message, 0, len(msgs))}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toProtoMessage(m))
	}
	return resp, nil
}

// MarkMessagesRead marks every message the other participant sent in the
// conversation as read by the caller.
func (s *Server) MarkMessagesRead(ctx context.Context, req *v1.MarkMessagesReadRequest) (*v1.MarkMessagesReadResponse, error) {
	caller, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, req.GetConversationId(), caller); err != nil {
		return nil, err
	}

	n, err := s.msgs.MarkRead(ctx, req.GetConversationId(), caller)
	if err != nil {
		return nil, s.toStatus(ctx, "mark read", err)
	}
	return &v1.MarkMessagesReadResponse{Updated: n}, nil
}

// requireUser checks that id names an existing user and returns it in the
// lowercase hex form used inside conversation ids.
func (s *Server) requireUser(ctx context.Context, id string) (string, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return "", status.Errorf(codes.InvalidArgument, "malformed user id %q", id)
	}
	exists, err := s.users.UserExists(ctx, oid)
	if err != nil {
		return "", s.toStatus(ctx, "verify user", err)
	}
	if !exists {
		return "", status.Error(codes.NotFound, "user not found")
	}
	return oid.Hex(), nil
}

// requireParticipant checks that caller is one of the two users encoded in
// conversationID.
func (s *Server) requireParticipant(ctx context.Context, conversationID, caller string) error {
	if _, err := data.ParticipantsFromID(conversationID); err != nil {
		return s.toStatus(ctx, "conversation", err)
	}
	if !data.IsParticipant(conversationID, caller) {
		return status.Error(codes.PermissionDenied, "not a participant of this conversation")
	}
	return nil
}

// pageLimit applies the default to an unset limit and rejects out-of-range ones.
func pageLimit(limit int32, def int64) (int64, error) {
	switch {
	case limit < 0:
		return 0, status.Error(codes.InvalidArgument, "limit must not be negative")
	case limit == 0:
		return def, nil
	case limit > maxLimit:
		return maxLimit, nil
	}
	return int64(limit), nil
}

func toProtoUser(u *data.User) *v1.User {
	return &v1.User{
		UserId:      u.ID.Hex(),
		UserName:    u.UserName,
		UserType:    u.UserType,
		Avatar:      u.Avatar,
		JobPosition: u.JobPosition,
		Description: u.Description,
		Company:     u.Company,
		Salary:      u.Salary,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		Skills:      u.Skills,
		Education:   u.Education,
		Experience:  u.Experience,
		CreatedAt:   timestamppb.New(u.CreatedAt),
		UpdatedAt:   timestamppb.New(u.UpdatedAt),
	}
}

func toProtoConversation(c *data.Conversation) *v1.Conversation {
	return &v1.Conversation{
		ConversationId: c.ID,
		Participants:   c.Participants,
		CreatedAt:      timestamppb.New(c.CreatedAt),
		UpdatedAt:      timestamppb.New(c.UpdatedAt),
	}
}

func toProtoMessage(m *data.Message) *v1.Message {
	return &v1.Message{
		MessageId:      m.ID.Hex(),
		ConversationId: m.ConversationID,
		SenderId:       m.SenderID,
		Text:           m.Text,
		IsRead:         m.IsRead,
		CreatedAt:      timestamppb.New(m.CreatedAt),
		UpdatedAt:      timestamppb.New(m.UpdatedAt),
	}
}
