// Package db manages MongoDB connections, collections and indexes.
package db

import (
	"context" // For connection timeout/cancellation
	"fmt"     // Error formatting
	"time"    // Duration for timeouts

	"go.mongodb.org/mongo-driver/v2/bson"           // Ordered index key documents
	"go.mongodb.org/mongo-driver/v2/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/v2/mongo/options"  // MongoDB options
	"go.mongodb.org/mongo-driver/v2/mongo/readpref" // MongoDB read preference
)

// Collection names shared by the stores and the seeder.
const (
	UsersCollectionName         = "users"
	ConversationsCollectionName = "conversations"
	MessagesCollectionName      = "messages"
)

// DefaultConnectTimeout bounds the initial connection when no timeout is configured.
const DefaultConnectTimeout = 10 * time.Second

// Client wraps mongo.Client and exposes collections.
type Client struct {
	// client is the underlying MongoDB connection (thread-safe, can be reused)
	client *mongo.Client

	// db is the application database; every collection is accessed through it
	db *mongo.Database
}

// New connects to MongoDB, verifies the connection with a ping and returns a
// Client bound to the named database.
func New(ctx context.Context, mongoURI, database string, connectTimeout time.Duration) (*Client, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	// SetConnectTimeout: fail fast if MongoDB is unreachable
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(connectTimeout)

	// Connect only validates options; the first round trip is the ping below
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	// Database is created lazily by MongoDB on first write
	return &Client{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Database returns the application database.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// UsersCollection returns the users collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection(UsersCollectionName)
}

// ConversationsCollection returns the conversations collection.
func (c *Client) ConversationsCollection() *mongo.Collection {
	return c.db.Collection(ConversationsCollectionName)
}

// MessagesCollection returns the messages collection.
func (c *Client) MessagesCollection() *mongo.Collection {
	return c.db.Collection(MessagesCollectionName)
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by the seeder and integration tests.
func (c *Client) Drop(ctx context.Context) error {
	return c.db.Drop(ctx)
}

// CreateIndexes creates the indexes every store relies on.
func (c *Client) CreateIndexes(ctx context.Context) error {
	if _, err := c.UsersCollection().Indexes().CreateMany(ctx, UserIndexes()); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	if _, err := c.ConversationsCollection().Indexes().CreateMany(ctx, ConversationIndexes()); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	if _, err := c.MessagesCollection().Indexes().CreateMany(ctx, MessageIndexes()); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}

	return nil
}

// UserIndexes returns the users collection indexes.
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// Login names are unique; duplicates surface as duplicate key errors on insert
			Keys:    bson.D{{Key: "user_name", Value: 1}},
			Options: options.Index().SetName("user_name_unique").SetUnique(true),
		},
		{
			// ListUsers filters by role
			Keys:    bson.D{{Key: "user_type", Value: 1}},
			Options: options.Index().SetName("user_type"),
		},
	}
}

// ConversationIndexes returns the conversations collection indexes. Pair
// uniqueness needs no index of its own: the canonical pair id is the _id.
func ConversationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// Multikey index over the participants array, used by the inbox $match
			Keys:    bson.D{{Key: "participants", Value: 1}},
			Options: options.Index().SetName("participants"),
		},
	}
}

// MessageIndexes returns the messages collection indexes.
func MessageIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// Serves both the conversation view and the inbox $lookup, which
			// read one conversation's messages newest first; _id orders
			// messages stamped in the same millisecond
			Keys: bson.D{
				{Key: "conversation_id", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("conversation_created_id_desc"),
		},
	}
}
