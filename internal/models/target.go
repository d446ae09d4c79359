package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/pkg/constants"
)

// TargetKind identifies which engagement-bearing entity a Target is.
type TargetKind string

const (
	KindPost  TargetKind = "post"
	KindAlbum TargetKind = "album"
	KindReel  TargetKind = "reel"
	KindVideo TargetKind = "video"
	KindMovie TargetKind = "movie"
)

// SharePolicy controls how the share toggle behaves for a kind.
type SharePolicy string

const (
	// ShareMonotonic: sharing again is a deduplicated no-op, shares are
	// never removed by the share endpoint.
	ShareMonotonic SharePolicy = "monotonic"
	// ShareBidirectional: sharing again removes the share.
	ShareBidirectional SharePolicy = "bidirectional"
)

var kindCollections = map[TargetKind]string{
	KindPost:  constants.PostsCollection,
	KindAlbum: constants.AlbumsCollection,
	KindReel:  constants.ReelsCollection,
	KindVideo: constants.VideosCollection,
	KindMovie: constants.MoviesCollection,
}

// Videos are the one kind with an un-share toggle; the rest only ever
// accumulate shares. The asymmetry is intentional and covered by tests.
var kindSharePolicies = map[TargetKind]SharePolicy{
	KindPost:  ShareMonotonic,
	KindAlbum: ShareMonotonic,
	KindReel:  ShareMonotonic,
	KindVideo: ShareBidirectional,
	KindMovie: ShareMonotonic,
}

var paramKinds = map[string]TargetKind{
	"posts":  KindPost,
	"albums": KindAlbum,
	"reels":  KindReel,
	"videos": KindVideo,
	"movies": KindMovie,
}

// TargetKindFromParam resolves a route segment ("posts", "reels", ...) to a kind.
func TargetKindFromParam(param string) (TargetKind, bool) {
	kind, ok := paramKinds[param]
	return kind, ok
}

// IsValid reports whether the kind is one of the five known entities.
func (k TargetKind) IsValid() bool {
	_, ok := kindCollections[k]
	return ok
}

// Collection returns the Mongo collection name backing the kind.
func (k TargetKind) Collection() string {
	return kindCollections[k]
}

// SharePolicy returns the share toggle policy for the kind.
func (k TargetKind) SharePolicy() SharePolicy {
	return kindSharePolicies[k]
}

// Target is the shared shape of all engagement-bearing documents. The
// membership arrays carry set semantics; the counters are denormalized
// mirrors of the array lengths and are updated atomically with them.
type Target struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Kind       TargetKind          `bson:"kind" json:"kind"`
	OwnerID    primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	Content    string              `bson:"content" json:"content" validate:"max=5000"`
	MediaURLs  []string            `bson:"media_urls,omitempty" json:"media_urls,omitempty"`
	SharedFrom *primitive.ObjectID `bson:"shared_from,omitempty" json:"shared_from,omitempty"`
	SharedTo   string              `bson:"shared_to,omitempty" json:"shared_to,omitempty"`

	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Reactions []Reaction           `bson:"reactions" json:"reactions"`
	Views     []primitive.ObjectID `bson:"views" json:"views"`
	Shares    []primitive.ObjectID `bson:"shares" json:"shares"`
	SavedBy   []primitive.ObjectID `bson:"saved_by" json:"saved_by"`
	Comments  []Comment            `bson:"comments" json:"comments"`

	LikesCount    int64 `bson:"likes_count" json:"likes_count"`
	ViewsCount    int64 `bson:"views_count" json:"views_count"`
	SharesCount   int64 `bson:"shares_count" json:"shares_count"`
	SavesCount    int64 `bson:"saves_count" json:"saves_count"`
	CommentsCount int64 `bson:"comments_count" json:"comments_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Populated fields (not stored in DB)
	IsLiked bool `bson:"-" json:"is_liked"`
	IsSaved bool `bson:"-" json:"is_saved"`
}

// Comment carries a snapshot of the author's name and avatar taken at
// comment time so history survives later profile edits.
type Comment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID     primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName   string             `bson:"author_name" json:"author_name"`
	AuthorAvatar string             `bson:"author_avatar" json:"author_avatar"`
	Text         string             `bson:"text" json:"text" validate:"required,max=500"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// FindComment returns the comment with the given id, or nil.
func (t *Target) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range t.Comments {
		if t.Comments[i].ID == commentID {
			return &t.Comments[i]
		}
	}
	return nil
}

// ReactionFor returns the actor's reaction entry, or nil.
func (t *Target) ReactionFor(userID primitive.ObjectID) *Reaction {
	for i := range t.Reactions {
		if t.Reactions[i].UserID == userID {
			return &t.Reactions[i]
		}
	}
	return nil
}
