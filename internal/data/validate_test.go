package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// The stores below have no collection: validation must fail before any
// database access, otherwise these calls would panic.

func TestMessagesAppend_Validation(t *testing.T) {
	msgs := NewMessagesStore(nil)
	ctx := context.Background()

	tests := []struct {
		name           string
		conversationID string
		senderID       string
		text           string
		field          string
	}{
		{"empty text", "u1_u2", "u1", "", "text"},
		{"missing sender", "u1_u2", "  ", "hi", "sender_id"},
		{"missing conversation", "", "u1", "hi", "conversation_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := msgs.Append(ctx, tt.conversationID, tt.senderID, tt.text)
			require.Error(t, err)
			assert.Nil(t, msg)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestMessagesListAndMarkRead_Validation(t *testing.T) {
	msgs := NewMessagesStore(nil)
	ctx := context.Background()

	_, err := msgs.ListByConversation(ctx, " ", 0)
	assert.ErrorIs(t, err, ErrValidation)

	n, err := msgs.MarkRead(ctx, "", "u1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, n)

	_, err = msgs.MarkRead(ctx, "u1_u2", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConversations_ValidationBeforeStorage(t *testing.T) {
	s := &ConversationsStore{now: timestamp}
	ctx := context.Background()

	_, err := s.FindOrCreate(ctx, "u1", "u1")
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	_, err = s.FindOrCreate(ctx, "", "u2")
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	err = s.Save(ctx, &Conversation{Participants: []string{"u1"}})
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	err = s.Save(ctx, &Conversation{ID: "u1_u3", Participants: []string{"u2", "u1"}})
	assert.ErrorIs(t, err, ErrInvalidParticipants)

	_, err = s.FindAllForUser(ctx, "", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegistration_Validate(t *testing.T) {
	ok := Registration{UserName: "  Recruiter1 ", Password: "secret1", UserType: UserTypeRecruiter}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "recruiter1", ok.UserName)

	tests := []struct {
		name  string
		reg   Registration
		field string
	}{
		{"short name", Registration{UserName: "bob", Password: "secret1", UserType: UserTypeApplicant}, "user_name"},
		{"long name", Registration{UserName: "abcdefghijklmnopqrstuvwxyz12345", Password: "secret1", UserType: UserTypeApplicant}, "user_name"},
		{"short password", Registration{UserName: "applicant1", Password: "123", UserType: UserTypeApplicant}, "password"},
		{"bad role", Registration{UserName: "applicant1", Password: "secret1", UserType: "admin"}, "user_type"},
		{"missing role", Registration{UserName: "applicant1", Password: "secret1"}, "user_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestProfile_Validate(t *testing.T) {
	email := "  Jane@Example.COM "
	phone := "0123456789"
	p := Profile{Email: &email, Phone: &phone}
	require.NoError(t, p.Validate())
	assert.Equal(t, "jane@example.com", *p.Email)

	badPhone := "12-34"
	assert.ErrorIs(t, (&Profile{Phone: &badPhone}).Validate(), ErrValidation)

	badEmail := "not-an-email"
	assert.ErrorIs(t, (&Profile{Email: &badEmail}).Validate(), ErrValidation)

	role := "admin"
	assert.ErrorIs(t, (&Profile{UserType: &role}).Validate(), ErrValidation)

	assert.NoError(t, (&Profile{}).Validate(), "an empty update is valid")
}

func TestInboxPipeline_Stages(t *testing.T) {
	p := inboxPipeline("u1", "messages", 0)
	require.Len(t, p, 5)

	stages := make([]string, 0, len(p))
	for _, stage := range p {
		stages = append(stages, stage[0].Key)
	}
	assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$sort", "$project"}, stages)

	assert.Equal(t, bson.D{{Key: "participants", Value: "u1"}}, p[0][0].Value)

	lookup := p[1][0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "from", Value: "messages"}, lookup[0])
	inner := lookup[2].Value.(bson.A)
	require.Len(t, inner, 3)
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}}}, inner[1])
	assert.Equal(t, bson.D{{Key: "$limit", Value: 1}}, inner[2])

	sort := p[3][0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "latest_message.created_at", Value: -1}, sort[0])
}

func TestInboxPipeline_Limit(t *testing.T) {
	p := inboxPipeline("u1", "messages", 25)
	require.Len(t, p, 6)
	assert.Equal(t, "$limit", p[4][0].Key)
	assert.Equal(t, int64(25), p[4][0].Value)
	assert.Equal(t, "$project", p[5][0].Key)
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	phone := "12"
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"json tag", &appendInput{SenderID: "u1", Text: "hi"}, "conversation_id failed required"},
		{"json tag with options", &Profile{Phone: &phone}, "phone failed min=9"},
		{"untagged field", &struct {
			ReaderID string `validate:"required"`
		}{}, "ReaderID failed required"},
		{"ignored json name", &struct {
			Secret string `json:"-" validate:"required"`
		}{}, "Secret failed required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("hello"))

	err := ValidateText("")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "text failed required")
}
