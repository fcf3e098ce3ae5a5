package data

import (
	"context"
	"time"

	"github.com/PaulBabatuyi/jobboard-chat/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessagesStore provides message database operations.
type MessagesStore struct {
	// coll is reference to "messages" collection in MongoDB
	coll *mongo.Collection

	// now stamps created_at/updated_at; tests replace it to control ordering
	now func() time.Time
}

// NewMessagesStore returns a MessagesStore using given collection.
func NewMessagesStore(coll *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll, now: timestamp}
}

// appendInput carries the validated fields of a new message.
type appendInput struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	SenderID       string `json:"sender_id" validate:"required"`
	Text           string `json:"text" validate:"required"`
}

// ValidateText reports the ErrValidation Append would return for text, so a
// caller can reject a message before creating its conversation.
func ValidateText(text string) error {
	in := struct {
		Text string `json:"text" validate:"required"`
	}{Text: text}
	return validateStruct(&in)
}

// Append inserts an unread message into a conversation and returns the saved
// record. Whether the sender is a participant of the conversation is not
// checked here.
func (m *MessagesStore) Append(ctx context.Context, conversationID, senderID, text string) (*Message, error) {
	in := appendInput{
		ConversationID: normalize.ID(conversationID),
		SenderID:       normalize.ID(senderID),
		Text:           text,
	}
	// Validation happens before any write
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	now := m.now()
	msg := &Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Text:           in.Text,
		IsRead:         false,
		CreatedAt:      now, // Ordering key for every "newest first" read
		UpdatedAt:      now,
	}

	// InsertOne adds the message document; the driver generates the _id
	result, err := m.coll.InsertOne(ctx, msg)
	if err != nil {
		return nil, storageErr(err)
	}

	msg.ID = result.InsertedID.(bson.ObjectID)
	return msg, nil
}

// ListByConversation returns the messages of a conversation, newest first.
// A limit <= 0 returns every message. An unknown conversation yields an empty
// slice, not ErrNotFound.
func (m *MessagesStore) ListByConversation(ctx context.Context, conversationID string, limit int64) ([]*Message, error) {
	in := struct {
		ConversationID string `json:"conversation_id" validate:"required"`
	}{ConversationID: normalize.ID(conversationID)}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	// Sort matches the (conversation_id, created_at desc, _id desc) index, so
	// Mongo walks the index instead of sorting in memory. Messages stamped in
	// the same millisecond fall back to _id, which grows with insertion order.
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.coll.Find(ctx, bson.D{{Key: "conversation_id", Value: in.ConversationID}}, opts)
	if err != nil {
		return nil, storageErr(err)
	}
	defer cursor.Close(ctx)

	messages := make([]*Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, storageErr(err)
	}
	return messages, nil
}

// MarkRead flags every unread message in the conversation that was not sent
// by readerID as read, and returns how many documents changed. Each document
// is updated atomically; the batch as a whole is not. Messages appended while
// this runs may or may not be included.
func (m *MessagesStore) MarkRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	in := struct {
		ConversationID string `json:"conversation_id" validate:"required"`
		ReaderID       string `json:"reader_id" validate:"required"`
	}{
		ConversationID: normalize.ID(conversationID),
		ReaderID:       normalize.ID(readerID),
	}
	if err := validateStruct(&in); err != nil {
		return 0, err
	}

	filter := bson.D{
		{Key: "conversation_id", Value: in.ConversationID},
		// A reader's own messages keep their state; read status is a recipient concern
		{Key: "sender_id", Value: bson.D{{Key: "$ne", Value: in.ReaderID}}},
		// Already-read messages are excluded so a re-run reports 0
		{Key: "is_read", Value: false},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "is_read", Value: true},
		{Key: "updated_at", Value: m.now()},
	}}}

	result, err := m.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, storageErr(err)
	}
	return result.ModifiedCount, nil
}
