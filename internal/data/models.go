package data

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User roles.
const (
	UserTypeRecruiter = "recruiter"
	UserTypeApplicant = "applicant"
)

// User maps to the users collection. Password holds the bcrypt hash and is
// never returned by listing queries.
type User struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName    string        `bson:"user_name" json:"user_name"`
	Password    string        `bson:"password,omitempty" json:"-"`
	UserType    string        `bson:"user_type" json:"user_type"`
	Avatar      string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	JobPosition string        `bson:"job_position,omitempty" json:"job_position,omitempty"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Company     string        `bson:"company,omitempty" json:"company,omitempty"`
	Salary      string        `bson:"salary,omitempty" json:"salary,omitempty"`
	Email       string        `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string        `bson:"address,omitempty" json:"address,omitempty"`
	Skills      []string      `bson:"skills,omitempty" json:"skills,omitempty"`
	Education   []string      `bson:"education,omitempty" json:"education,omitempty"`
	Experience  []string      `bson:"experience,omitempty" json:"experience,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// Profile is the mutable part of a User. Nil fields are left untouched by
// UpdateProfile.
type Profile struct {
	Password    *string   `bson:"password,omitempty" json:"password,omitempty" validate:"omitempty,min=6,max=64"`
	UserType    *string   `bson:"user_type,omitempty" json:"user_type,omitempty" validate:"omitempty,oneof=recruiter applicant"`
	Avatar      *string   `bson:"avatar,omitempty" json:"avatar,omitempty"`
	JobPosition *string   `bson:"job_position,omitempty" json:"job_position,omitempty"`
	Description *string   `bson:"description,omitempty" json:"description,omitempty"`
	Company     *string   `bson:"company,omitempty" json:"company,omitempty"`
	Salary      *string   `bson:"salary,omitempty" json:"salary,omitempty"`
	Email       *string   `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string   `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,numeric,min=9,max=11"`
	Address     *string   `bson:"address,omitempty" json:"address,omitempty"`
	Skills      *[]string `bson:"skills,omitempty" json:"skills,omitempty"`
	Education   *[]string `bson:"education,omitempty" json:"education,omitempty"`
	Experience  *[]string `bson:"experience,omitempty" json:"experience,omitempty"`
}

// Conversation maps to the conversations collection. ID is the canonical pair
// id (see ConversationID) and Participants is always stored in ascending order.
type Conversation struct {
	ID           string    `bson:"_id" json:"id"`
	Participants []string  `bson:"participants" json:"participants"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Message maps to the messages collection.
type Message struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID string        `bson:"conversation_id" json:"conversation_id"`
	SenderID       string        `bson:"sender_id" json:"sender_id"`
	Text           string        `bson:"text" json:"text"`
	IsRead         bool          `bson:"is_read" json:"is_read"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// ConversationSummary is one inbox row: a conversation and its newest message.
// LatestMessage is nil for a conversation without messages.
type ConversationSummary struct {
	ConversationID string   `bson:"_id" json:"conversation_id"`
	Participants   []string `bson:"participants" json:"participants"`
	LatestMessage  *Message `bson:"latest_message,omitempty" json:"latest_message,omitempty"`
}
