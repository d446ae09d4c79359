package constants

import "time"

// Application constants
const (
	AppName    = "Sociogram"
	AppVersion = "1.0.0"
	APIVersion = "v1"
)

// Server constants
const (
	DefaultPort     = "8080"
	ReadTimeout     = 30 * time.Second
	WriteTimeout    = 30 * time.Second
	IdleTimeout     = 60 * time.Second
	MaxHeaderBytes  = 1 << 20 // 1MB
	ShutdownTimeout = 30 * time.Second
)

// Database constants
const (
	DatabaseTimeout = 10 * time.Second
	MaxPoolSize     = 100
	MinPoolSize     = 5

	// Collection names
	UsersCollection                   = "users"
	PostsCollection                   = "posts"
	AlbumsCollection                  = "albums"
	ReelsCollection                   = "reels"
	VideosCollection                  = "videos"
	MoviesCollection                  = "movies"
	NotificationsCollection           = "notifications"
	NotificationPreferencesCollection = "notification_preferences"
)

// Redis keys
const (
	RedisKeyPrefix    = "sociogram:"
	TargetCachePrefix = RedisKeyPrefix + "cache:target:"
	UserCachePrefix   = RedisKeyPrefix + "cache:user:"
	RateLimitPrefix   = RedisKeyPrefix + "rate_limit:"
)

// Cache TTL
const (
	TargetCacheTTL = 30 * time.Minute
	UserCacheTTL   = 1 * time.Hour
	RateLimitTTL   = 1 * time.Minute
)

// Authentication constants
const (
	JWTIssuer           = "sociogram"
	JWTAudience         = "sociogram-users"
	DefaultAccessExpiry = 1 * time.Hour
)

// Share destinations
const (
	ShareDestinationTimeline = "timeline"
	ShareDestinationGroup    = "group"
	ShareDestinationPage     = "page"
)

// Content constants
const (
	MaxCommentLength       = 500
	MaxTargetContentLength = 5000
	MaxShareMessageLength  = 500
	MaxEngagementPerMinute = 60
)

// Notification types. These double as the preference-gate categories.
const (
	NotificationFollow                = "follow"
	NotificationPostLike              = "post_like"
	NotificationPostComment           = "post_comment"
	NotificationPostShare             = "post_share"
	NotificationPageLike              = "page_like"
	NotificationProfileVisit          = "profile_visit"
	NotificationMention               = "mention"
	NotificationGroupJoin             = "group_join"
	NotificationFriendRequestAccepted = "friend_request_accepted"
	NotificationTimelinePost          = "timeline_post"
)
