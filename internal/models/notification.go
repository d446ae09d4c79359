package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/pkg/constants"
)

type Notification struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientID    primitive.ObjectID  `bson:"recipient_id" json:"recipient_id"`
	Type           string              `bson:"type" json:"type"`
	Title          string              `bson:"title" json:"title"`
	Message        string              `bson:"message" json:"message"`
	RelatedUserID  *primitive.ObjectID `bson:"related_user_id,omitempty" json:"related_user_id,omitempty"`
	RelatedPostID  *primitive.ObjectID `bson:"related_post_id,omitempty" json:"related_post_id,omitempty"`
	RelatedGroupID *primitive.ObjectID `bson:"related_group_id,omitempty" json:"related_group_id,omitempty"`
	RelatedPageID  *primitive.ObjectID `bson:"related_page_id,omitempty" json:"related_page_id,omitempty"`
	IsRead         bool                `bson:"is_read" json:"is_read"`
	ReadAt         *time.Time          `bson:"read_at,omitempty" json:"read_at,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`

	// Populated fields
	RelatedUser *User `bson:"-" json:"related_user,omitempty"`
}

// Preference keys as stored in a user's settings document.
const (
	PrefSomeoneFollowedMe            = "someone_followed_me"
	PrefSomeoneLikedMyPosts          = "someone_liked_my_posts"
	PrefSomeoneCommentedOnMyPosts    = "someone_commented_on_my_posts"
	PrefSomeoneSharedMyPosts         = "someone_shared_my_posts"
	PrefSomeoneLikedMyPages          = "someone_liked_my_pages"
	PrefSomeoneVisitedMyProfile      = "someone_visited_my_profile"
	PrefSomeoneMentionedMe           = "someone_mentioned_me"
	PrefSomeoneJoinedMyGroups        = "someone_joined_my_groups"
	PrefSomeoneAcceptedFriendRequest = "someone_accepted_friend_request"
	PrefSomeonePostedOnMyTimeline    = "someone_posted_on_my_timeline"
)

var preferenceKeyByType = map[string]string{
	constants.NotificationFollow:                PrefSomeoneFollowedMe,
	constants.NotificationPostLike:              PrefSomeoneLikedMyPosts,
	constants.NotificationPostComment:           PrefSomeoneCommentedOnMyPosts,
	constants.NotificationPostShare:             PrefSomeoneSharedMyPosts,
	constants.NotificationPageLike:              PrefSomeoneLikedMyPages,
	constants.NotificationProfileVisit:          PrefSomeoneVisitedMyProfile,
	constants.NotificationMention:               PrefSomeoneMentionedMe,
	constants.NotificationGroupJoin:             PrefSomeoneJoinedMyGroups,
	constants.NotificationFriendRequestAccepted: PrefSomeoneAcceptedFriendRequest,
	constants.NotificationTimelinePost:          PrefSomeonePostedOnMyTimeline,
}

// PreferenceKeyForType maps a notification type to its settings key.
// Types without a mapping are always allowed by the gate.
func PreferenceKeyForType(notificationType string) (string, bool) {
	key, ok := preferenceKeyByType[notificationType]
	return key, ok
}

// NotificationPreferences holds a user's per-category enabled flags.
// A key absent from Settings counts as enabled.
type NotificationPreferences struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Settings  map[string]bool    `bson:"settings" json:"settings"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Allows reports whether the category key is enabled. Only an explicit
// false suppresses; a missing key allows.
func (p *NotificationPreferences) Allows(key string) bool {
	if p == nil || p.Settings == nil {
		return true
	}
	enabled, ok := p.Settings[key]
	if !ok {
		return true
	}
	return enabled
}

// DefaultNotificationPreferences returns an all-enabled settings document.
func DefaultNotificationPreferences(userID primitive.ObjectID) *NotificationPreferences {
	now := time.Now()
	return &NotificationPreferences{
		UserID: userID,
		Settings: map[string]bool{
			PrefSomeoneFollowedMe:            true,
			PrefSomeoneLikedMyPosts:          true,
			PrefSomeoneCommentedOnMyPosts:    true,
			PrefSomeoneSharedMyPosts:         true,
			PrefSomeoneLikedMyPages:          true,
			PrefSomeoneVisitedMyProfile:      true,
			PrefSomeoneMentionedMe:           true,
			PrefSomeoneJoinedMyGroups:        true,
			PrefSomeoneAcceptedFriendRequest: true,
			PrefSomeonePostedOnMyTimeline:    true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
