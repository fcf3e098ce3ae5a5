// Package v1 defines the chat.v1.ChatService wire types, service descriptor
// and client. Messages travel as JSON (see CodecName).
package v1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type RegisterRequest struct {
	UserName string `json:"user_name,omitempty"`
	Password string `json:"password,omitempty"`
	UserType string `json:"user_type,omitempty"`
}

func (x *RegisterRequest) GetUserName() string {
	if x != nil {
		return x.UserName
	}
	return ""
}

func (x *RegisterRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

func (x *RegisterRequest) GetUserType() string {
	if x != nil {
		return x.UserType
	}
	return ""
}

type RegisterResponse struct {
	Token     string                 `json:"token,omitempty"`
	UserId    string                 `json:"user_id,omitempty"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at,omitempty"`
}

type LoginRequest struct {
	UserName string `json:"user_name,omitempty"`
	Password string `json:"password,omitempty"`
}

func (x *LoginRequest) GetUserName() string {
	if x != nil {
		return x.UserName
	}
	return ""
}

func (x *LoginRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type LoginResponse struct {
	Token     string                 `json:"token,omitempty"`
	UserId    string                 `json:"user_id,omitempty"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at,omitempty"`
}

// User is a public user record; it never carries the password.
type User struct {
	UserId      string                 `json:"user_id,omitempty"`
	UserName    string                 `json:"user_name,omitempty"`
	UserType    string                 `json:"user_type,omitempty"`
	Avatar      string                 `json:"avatar,omitempty"`
	JobPosition string                 `json:"job_position,omitempty"`
	Description string                 `json:"description,omitempty"`
	Company     string                 `json:"company,omitempty"`
	Salary      string                 `json:"salary,omitempty"`
	Email       string                 `json:"email,omitempty"`
	Phone       string                 `json:"phone,omitempty"`
	Address     string                 `json:"address,omitempty"`
	Skills      []string               `json:"skills,omitempty"`
	Education   []string               `json:"education,omitempty"`
	Experience  []string               `json:"experience,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

// UpdateMeRequest carries a partial profile; absent fields are left as they are.
type UpdateMeRequest struct {
	Password    *string   `json:"password,omitempty"`
	UserType    *string   `json:"user_type,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	JobPosition *string   `json:"job_position,omitempty"`
	Description *string   `json:"description,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Salary      *string   `json:"salary,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	Education   *[]string `json:"education,omitempty"`
	Experience  *[]string `json:"experience,omitempty"`
}

type ListUsersRequest struct {
	// UserType filters by role; empty lists everyone.
	UserType string `json:"user_type,omitempty"`
}

func (x *ListUsersRequest) GetUserType() string {
	if x != nil {
		return x.UserType
	}
	return ""
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type CreateConversationRequest struct {
	ParticipantId string `json:"participant_id,omitempty"`
}

func (x *CreateConversationRequest) GetParticipantId() string {
	if x != nil {
		return x.ParticipantId
	}
	return ""
}

type Conversation struct {
	ConversationId string                 `json:"conversation_id,omitempty"`
	Participants   []string               `json:"participants,omitempty"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt      *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type ListConversationsRequest struct {
	Limit int32 `json:"limit,omitempty"`
}

func (x *ListConversationsRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

// ConversationSummary is an inbox row. LatestMessage is absent for a
// conversation nobody has written in yet.
type ConversationSummary struct {
	ConversationId string   `json:"conversation_id,omitempty"`
	Participants   []string `json:"participants,omitempty"`
	LatestMessage  *Message `json:"latest_message,omitempty"`
}

type ListConversationsResponse struct {
	Conversations []*ConversationSummary `json:"conversations"`
}

type SendMessageRequest struct {
	RecipientId string `json:"recipient_id,omitempty"`
	Text        string `json:"text,omitempty"`
}

func (x *SendMessageRequest) GetRecipientId() string {
	if x != nil {
		return x.RecipientId
	}
	return ""
}

func (x *SendMessageRequest) GetText() string {
	if x != nil {
		return x.Text
	}
	return ""
}

type Message struct {
	MessageId      string                 `json:"message_id,omitempty"`
	ConversationId string                 `json:"conversation_id,omitempty"`
	SenderId       string                 `json:"sender_id,omitempty"`
	Text           string                 `json:"text,omitempty"`
	IsRead         bool                   `json:"is_read"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt      *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type ListMessagesRequest struct {
	ConversationId string `json:"conversation_id,omitempty"`
	Limit          int32  `json:"limit,omitempty"`
}

func (x *ListMessagesRequest) GetConversationId() string {
	if x != nil {
		return x.ConversationId
	}
	return ""
}

func (x *ListMessagesRequest) GetLimit() int32 {
	if x != nil {
		return x.Limit
	}
	return 0
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
}

type MarkMessagesReadRequest struct {
	ConversationId string `json:"conversation_id,omitempty"`
}

func (x *MarkMessagesReadRequest) GetConversationId() string {
	if x != nil {
		return x.ConversationId
	}
	return ""
}

type MarkMessagesReadResponse struct {
	// Updated is how many messages flipped from unread to read.
	Updated int64 `json:"updated"`
}
