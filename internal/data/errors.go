package data

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	// Returned errors wrap it together with the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidParticipants is returned for a self-pair or a missing/malformed
	// participant id.
	ErrInvalidParticipants = errors.New("invalid participants")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUserExists is returned when registering a user name that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrStorageUnavailable tags driver errors caused by an unreachable
	// database. The driver error stays in the chain.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageErr tags connectivity failures with ErrStorageUnavailable and
// returns every other error unchanged.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}
