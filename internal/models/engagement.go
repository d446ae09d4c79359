package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "sociogram/pkg/errors"
)

// ReactionType enumerates the typed reactions a user can leave on a target.
type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

var validReactionTypes = map[ReactionType]bool{
	ReactionLike:  true,
	ReactionLove:  true,
	ReactionHaha:  true,
	ReactionWow:   true,
	ReactionSad:   true,
	ReactionAngry: true,
}

// IsValid reports whether the reaction type is in the fixed enum.
func (r ReactionType) IsValid() bool {
	return validReactionTypes[r]
}

// Reaction is one user's typed reaction to a target. At most one per
// (target, user); reacting again with the same type removes it.
type Reaction struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      ReactionType       `bson:"type" json:"type"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ReactionOp describes which mutation a reaction toggle resolved to.
type ReactionOp int

const (
	ReactionOpAdd ReactionOp = iota
	ReactionOpReplace
	ReactionOpRemove
)

// ReactionOutcome is the result of applying a reaction toggle.
type ReactionOutcome struct {
	Reactions    []Reaction
	Op           ReactionOp
	// Emitted is true when the toggle is notification-worthy: a fresh
	// reaction or a type change, never a retraction.
	Emitted      bool
	PreviousType *ReactionType
}

// ToggleReaction applies the reaction state transition for one actor:
// no existing reaction appends one, an existing reaction of the same type
// is removed, a differing type is replaced in place. The input slice is
// not mutated.
func ToggleReaction(reactions []Reaction, userID primitive.ObjectID, reactionType ReactionType, now time.Time) (*ReactionOutcome, error) {
	if !reactionType.IsValid() {
		return nil, apperrors.NewInvalidReactionTypeError(string(reactionType))
	}

	for i := range reactions {
		if reactions[i].UserID != userID {
			continue
		}
		previous := reactions[i].Type

		if previous == reactionType {
			out := make([]Reaction, 0, len(reactions)-1)
			out = append(out, reactions[:i]...)
			out = append(out, reactions[i+1:]...)
			return &ReactionOutcome{
				Reactions:    out,
				Op:           ReactionOpRemove,
				Emitted:      false,
				PreviousType: &previous,
			}, nil
		}

		out := make([]Reaction, len(reactions))
		copy(out, reactions)
		out[i].Type = reactionType
		return &ReactionOutcome{
			Reactions:    out,
			Op:           ReactionOpReplace,
			Emitted:      true,
			PreviousType: &previous,
		}, nil
	}

	out := make([]Reaction, len(reactions), len(reactions)+1)
	copy(out, reactions)
	out = append(out, Reaction{UserID: userID, Type: reactionType, CreatedAt: now})
	return &ReactionOutcome{
		Reactions: out,
		Op:        ReactionOpAdd,
		Emitted:   true,
	}, nil
}

// ToggleMembership flips the user's membership in a set: present removes,
// absent adds. The input slice is not mutated.
func ToggleMembership(set []primitive.ObjectID, userID primitive.ObjectID) ([]primitive.ObjectID, bool) {
	for i, id := range set {
		if id == userID {
			out := make([]primitive.ObjectID, 0, len(set)-1)
			out = append(out, set[:i]...)
			out = append(out, set[i+1:]...)
			return out, false
		}
	}
	out := make([]primitive.ObjectID, len(set), len(set)+1)
	copy(out, set)
	return append(out, userID), true
}

// AddMembership adds the user to a set if absent. Used for one-way sets
// (views, monotonic shares) that are never drained by a toggle.
func AddMembership(set []primitive.ObjectID, userID primitive.ObjectID) ([]primitive.ObjectID, bool) {
	if HasMember(set, userID) {
		return set, false
	}
	out := make([]primitive.ObjectID, len(set), len(set)+1)
	copy(out, set)
	return append(out, userID), true
}

// HasMember reports set membership.
func HasMember(set []primitive.ObjectID, userID primitive.ObjectID) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}
