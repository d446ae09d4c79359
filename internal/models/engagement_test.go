package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleReaction_AddsWhenAbsent(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()

	outcome, err := ToggleReaction(nil, userID, ReactionLove, now)
	require.NoError(t, err)

	assert.Equal(t, ReactionOpAdd, outcome.Op)
	assert.True(t, outcome.Emitted)
	assert.Nil(t, outcome.PreviousType)
	require.Len(t, outcome.Reactions, 1)
	assert.Equal(t, userID, outcome.Reactions[0].UserID)
	assert.Equal(t, ReactionLove, outcome.Reactions[0].Type)
}

func TestToggleReaction_SameTypeRemoves(t *testing.T) {
	userID := primitive.NewObjectID()
	existing := []Reaction{{UserID: userID, Type: ReactionWow, CreatedAt: time.Now()}}

	outcome, err := ToggleReaction(existing, userID, ReactionWow, time.Now())
	require.NoError(t, err)

	assert.Equal(t, ReactionOpRemove, outcome.Op)
	assert.False(t, outcome.Emitted)
	require.NotNil(t, outcome.PreviousType)
	assert.Equal(t, ReactionWow, *outcome.PreviousType)
	assert.Empty(t, outcome.Reactions)
}

func TestToggleReaction_DifferentTypeReplaces(t *testing.T) {
	userID := primitive.NewObjectID()
	existing := []Reaction{{UserID: userID, Type: ReactionLove, CreatedAt: time.Now()}}

	outcome, err := ToggleReaction(existing, userID, ReactionAngry, time.Now())
	require.NoError(t, err)

	assert.Equal(t, ReactionOpReplace, outcome.Op)
	assert.True(t, outcome.Emitted)
	require.NotNil(t, outcome.PreviousType)
	assert.Equal(t, ReactionLove, *outcome.PreviousType)
	require.Len(t, outcome.Reactions, 1)
	assert.Equal(t, ReactionAngry, outcome.Reactions[0].Type)
}

func TestToggleReaction_PreservesOtherUsers(t *testing.T) {
	actor := primitive.NewObjectID()
	other := primitive.NewObjectID()
	existing := []Reaction{
		{UserID: other, Type: ReactionHaha, CreatedAt: time.Now()},
		{UserID: actor, Type: ReactionSad, CreatedAt: time.Now()},
	}

	outcome, err := ToggleReaction(existing, actor, ReactionSad, time.Now())
	require.NoError(t, err)

	require.Len(t, outcome.Reactions, 1)
	assert.Equal(t, other, outcome.Reactions[0].UserID)
	assert.Equal(t, ReactionHaha, outcome.Reactions[0].Type)
}

func TestToggleReaction_DoesNotMutateInput(t *testing.T) {
	userID := primitive.NewObjectID()
	existing := []Reaction{{UserID: userID, Type: ReactionLove, CreatedAt: time.Now()}}

	_, err := ToggleReaction(existing, userID, ReactionWow, time.Now())
	require.NoError(t, err)

	assert.Equal(t, ReactionLove, existing[0].Type)
}

func TestToggleReaction_InvalidType(t *testing.T) {
	outcome, err := ToggleReaction(nil, primitive.NewObjectID(), ReactionType("celebrate"), time.Now())
	assert.Error(t, err)
	assert.Nil(t, outcome)
}

func TestToggleReaction_Involution(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()

	first, err := ToggleReaction(nil, userID, ReactionLike, now)
	require.NoError(t, err)
	second, err := ToggleReaction(first.Reactions, userID, ReactionLike, now)
	require.NoError(t, err)

	assert.Empty(t, second.Reactions)
}

func TestToggleMembership(t *testing.T) {
	userID := primitive.NewObjectID()

	set, added := ToggleMembership(nil, userID)
	assert.True(t, added)
	assert.Len(t, set, 1)

	set, added = ToggleMembership(set, userID)
	assert.False(t, added)
	assert.Empty(t, set)
}

func TestAddMembership_Idempotent(t *testing.T) {
	userID := primitive.NewObjectID()

	set, added := AddMembership(nil, userID)
	assert.True(t, added)
	assert.Len(t, set, 1)

	set, added = AddMembership(set, userID)
	assert.False(t, added)
	assert.Len(t, set, 1)
}

func TestSharePolicyByKind(t *testing.T) {
	assert.Equal(t, ShareBidirectional, KindVideo.SharePolicy())

	for _, kind := range []TargetKind{KindPost, KindAlbum, KindReel, KindMovie} {
		assert.Equal(t, ShareMonotonic, kind.SharePolicy(), "kind %s", kind)
	}
}

func TestTargetKindFromParam(t *testing.T) {
	kind, ok := TargetKindFromParam("reels")
	assert.True(t, ok)
	assert.Equal(t, KindReel, kind)

	_, ok = TargetKindFromParam("stories")
	assert.False(t, ok)
}
