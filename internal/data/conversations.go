package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PaulBabatuyi/jobboard-chat/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ConversationsStore provides conversation database operations and the inbox
// aggregation, which joins against the messages collection.
type ConversationsStore struct {
	// coll is reference to "conversations" collection in MongoDB
	coll *mongo.Collection

	// messagesColl is the $lookup source; it must live in the same database
	messagesColl string

	now func() time.Time
}

// NewConversationsStore returns a ConversationsStore using the given
// collection and joining against the collection behind msgs.
func NewConversationsStore(coll *mongo.Collection, msgs *MessagesStore) *ConversationsStore {
	return &ConversationsStore{
		coll:         coll,
		messagesColl: msgs.coll.Name(),
		now:          timestamp,
	}
}

// FindOrCreate returns the conversation between a and b, creating it if it
// does not exist yet. The existence check and the insert are a single upsert
// keyed on the canonical id, and fields are only written on insert: an
// existing record comes back unmodified.
func (s *ConversationsStore) FindOrCreate(ctx context.Context, a, b string) (*Conversation, error) {
	pair, err := canonicalPair(a, b)
	if err != nil {
		return nil, err
	}
	id := pair[0] + idSeparator + pair[1]

	now := s.now()
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "participants", Value: bson.A{pair[0], pair[1]}},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conv Conversation
	err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv)
	if err == nil {
		return &conv, nil
	}

	// Two upserts racing on the same _id can both miss and both try to
	// insert; the loser gets E11000 and the winner's record is already there.
	if mongo.IsDuplicateKeyError(err) {
		return s.GetByID(ctx, id)
	}
	return nil, storageErr(err)
}

// GetByID returns a conversation by its canonical id.
func (s *ConversationsStore) GetByID(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: normalize.ID(id)}}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &conv, nil
}

// Save writes conv, re-deriving its id and participant order from the pair.
// updated_at is refreshed on every save; created_at is only set when the
// record is first inserted. conv is updated in place with the stored values.
func (s *ConversationsStore) Save(ctx context.Context, conv *Conversation) error {
	if len(conv.Participants) != 2 {
		return fmt.Errorf("%w: a conversation has exactly two participants, got %d", ErrInvalidParticipants, len(conv.Participants))
	}
	pair, err := canonicalPair(conv.Participants[0], conv.Participants[1])
	if err != nil {
		return err
	}
	id := pair[0] + idSeparator + pair[1]
	if conv.ID != "" && conv.ID != id {
		return fmt.Errorf("%w: id %q does not match participants", ErrInvalidParticipants, conv.ID)
	}

	now := s.now()
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "participants", Value: bson.A{pair[0], pair[1]}},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: now}}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(conv)
	if mongo.IsDuplicateKeyError(err) {
		// Lost an insert race; the record exists now, so the retry is an update
		err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(conv)
	}
	return storageErr(err)
}

// FindAllForUser returns one row per conversation userID takes part in, each
// carrying its newest message, ordered by that message's created_at
// descending. Conversations without messages have a nil LatestMessage and
// come last. A limit <= 0 returns every conversation.
//
// When two messages of a conversation share a created_at, the one inserted
// last is reported as latest.
func (s *ConversationsStore) FindAllForUser(ctx context.Context, userID string, limit int64) ([]*ConversationSummary, error) {
	in := struct {
		UserID string `json:"user_id" validate:"required"`
	}{UserID: normalize.ID(userID)}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	// One round trip for the whole inbox; no per-conversation queries
	cursor, err := s.coll.Aggregate(ctx, inboxPipeline(in.UserID, s.messagesColl, limit))
	if err != nil {
		return nil, storageErr(err)
	}
	defer cursor.Close(ctx)

	summaries := make([]*ConversationSummary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, storageErr(err)
	}
	return summaries, nil
}

// inboxPipeline builds the aggregation behind FindAllForUser.
func inboxPipeline(userID, messagesColl string, limit int64) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		// Stage 1: $match - conversations that list the user as a participant
		// (equality on an array field matches any element; uses the multikey index)
		bson.D{{Key: "$match", Value: bson.D{{Key: "participants", Value: userID}}}},

		// Stage 2: $lookup - newest message per conversation. The inner
		// pipeline is an equality on conversation_id plus a created_at, _id
		// descending sort, which the compound messages index answers directly,
		// and $limit keeps only the first document of the group.
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: messagesColl},
			{Key: "let", Value: bson.D{{Key: "cid", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$conversation_id", "$$cid"}},
				}}}}},
				bson.D{{Key: "$sort", Value: bson.D{
					{Key: "created_at", Value: -1},
					{Key: "_id", Value: -1},
				}}},
				bson.D{{Key: "$limit", Value: 1}},
			}},
			{Key: "as", Value: "latest_message"},
		}}},

		// Stage 3: $unwind - array of at most one element becomes a subdocument;
		// conversations with no messages are kept with the field absent
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$latest_message"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},

		// Stage 4: $sort - most recent activity first. A missing field sorts
		// below every date, so empty conversations land at the end; _id keeps
		// their relative order stable.
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "latest_message.created_at", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	if limit > 0 {
		// Stage 5 (optional): $limit - only the N most recent conversations
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	// Final stage: $project - id, participants and the latest message only
	return append(pipeline, bson.D{{Key: "$project", Value: bson.D{
		{Key: "participants", Value: 1},
		{Key: "latest_message", Value: 1},
	}}})
}
