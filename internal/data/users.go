// Package data provides DB models and stores.
package data

import (
	"context" // Used for cancellation and timeouts
	"errors"  // Error handling
	"fmt"

	"github.com/PaulBabatuyi/jobboard-chat/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"          // MongoDB document queries
	"go.mongodb.org/mongo-driver/v2/mongo"         // MongoDB driver
	"go.mongodb.org/mongo-driver/v2/mongo/options" // Query options
)

// Registration is the plaintext sign-up input. It is validated before the
// password is hashed.
type Registration struct {
	UserName string `json:"user_name" validate:"required,min=6,max=30"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	UserType string `json:"user_type" validate:"required,oneof=recruiter applicant"`
}

// Validate checks the registration rules after normalizing the user name.
func (r *Registration) Validate() error {
	r.UserName = normalize.UserName(r.UserName)
	return validateStruct(r)
}

// Validate checks the profile update rules. Password is checked in plaintext,
// before it is replaced by its hash.
func (p *Profile) Validate() error {
	if p.Email != nil {
		e := normalize.Email(*p.Email)
		p.Email = &e
	}
	return validateStruct(p)
}

// withoutPassword keeps password hashes out of every read except login.
var withoutPassword = bson.D{{Key: "password", Value: 0}}

// UsersStore performs user DB operations.
type UsersStore struct {
	// coll is reference to "users" collection in MongoDB
	coll *mongo.Collection
}

// NewUsersStore returns a UsersStore using the provided collection.
func NewUsersStore(coll *mongo.Collection) *UsersStore {
	return &UsersStore{coll: coll} // Store reference to MongoDB collection
}

// CreateUser inserts a new user document with an already-hashed password.
func (u *UsersStore) CreateUser(ctx context.Context, userName, hashedPassword, userType string) (*User, error) {
	now := timestamp()
	user := &User{
		UserName:  normalize.UserName(userName), // Stored lower-cased; unique index enforces one account per name
		Password:  hashedPassword,               // Already hashed by auth.HashPassword()
		UserType:  userType,
		CreatedAt: now,
		UpdatedAt: now, // Initially same as CreatedAt
	}

	// InsertOne adds the document to the users collection
	result, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		// Duplicate user_name hits the unique index
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, storageErr(err)
	}

	// MongoDB auto-generates the _id field; it becomes the user id in tokens
	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

// GetUserByUserName finds a user by login name, including the password hash.
func (u *UsersStore) GetUserByUserName(ctx context.Context, userName string) (*User, error) {
	var user User

	err := u.coll.FindOne(ctx, bson.D{{Key: "user_name", Value: normalize.UserName(userName)}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}

	// Handler verifies Password with auth.CheckPassword()
	return &user, nil
}

// GetUserByID finds a user by ObjectID. The password hash is not loaded.
func (u *UsersStore) GetUserByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	var user User

	opts := options.FindOne().SetProjection(withoutPassword)
	err := u.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &user, nil
}

// UserExists checks if a user exists by id.
func (u *UsersStore) UserExists(ctx context.Context, id bson.ObjectID) (bool, error) {
	// Limit 1: only existence matters
	count, err := u.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, storageErr(err)
	}
	return count > 0, nil
}

// FindByUserType lists users with the given role, or every user when
// userType is empty, ordered by user name.
func (u *UsersStore) FindByUserType(ctx context.Context, userType string) ([]*User, error) {
	filter := bson.D{}
	if userType != "" {
		filter = bson.D{{Key: "user_type", Value: userType}}
	}

	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "user_name", Value: 1}})

	cursor, err := u.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr(err)
	}
	defer cursor.Close(ctx)

	users := make([]*User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

// UpdateProfile applies the non-nil fields of p to the user and returns the
// updated record. updated_at is always refreshed. A Password in p must
// already be hashed.
func (u *UsersStore) UpdateProfile(ctx context.Context, id bson.ObjectID, p Profile) (*User, error) {
	// Nil pointers are dropped by omitempty, leaving only the fields to change
	raw, err := bson.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	var set bson.D
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	set = append(set, bson.E{Key: "updated_at", Value: timestamp()})

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var user User
	err = u.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &user, nil
}

// DeleteUser removes a user. Conversations and messages that reference the
// user are kept.
func (u *UsersStore) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	result, err := u.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return storageErr(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
