package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/PaulBabatuyi/jobboard-chat/internal/normalize"
)

// idSeparator joins the two participant ids of a canonical conversation id.
// Participant ids must not contain it.
const idSeparator = "_"

// ConversationID returns the canonical id for the unordered pair (a, b): the
// two ids sorted by plain string comparison and joined with "_". It is
// commutative, so ConversationID(a, b) == ConversationID(b, a).
func ConversationID(a, b string) (string, error) {
	pair, err := canonicalPair(a, b)
	if err != nil {
		return "", err
	}
	return pair[0] + idSeparator + pair[1], nil
}

// ParticipantsFromID splits a canonical conversation id back into its two
// participants, in stored (ascending) order.
func ParticipantsFromID(id string) ([]string, error) {
	parts := strings.Split(normalize.ID(id), idSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" || parts[0] >= parts[1] {
		return nil, fmt.Errorf("%w: malformed conversation id %q", ErrValidation, id)
	}
	return parts, nil
}

// IsParticipant reports whether userID is one of the two ids encoded in the
// canonical conversation id.
func IsParticipant(conversationID, userID string) bool {
	parts, err := ParticipantsFromID(conversationID)
	if err != nil {
		return false
	}
	userID = normalize.ID(userID)
	return parts[0] == userID || parts[1] == userID
}

// canonicalPair validates both ids and returns them in ascending order.
func canonicalPair(a, b string) ([2]string, error) {
	a, b = normalize.ID(a), normalize.ID(b)

	if err := checkParticipant(a); err != nil {
		return [2]string{}, err
	}
	if err := checkParticipant(b); err != nil {
		return [2]string{}, err
	}
	if a == b {
		return [2]string{}, fmt.Errorf("%w: a conversation needs two distinct participants", ErrInvalidParticipants)
	}

	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return [2]string{a, b}, nil
}

func checkParticipant(id string) error {
	if id == "" {
		return fmt.Errorf("%w: participant id is required", ErrInvalidParticipants)
	}
	if strings.Contains(id, idSeparator) {
		return fmt.Errorf("%w: participant id %q contains %q", ErrInvalidParticipants, id, idSeparator)
	}
	return nil
}

// timestamp is the default clock for every store. MongoDB keeps millisecond
// precision, so values are truncated up front and the returned records match
// what a later read decodes.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
