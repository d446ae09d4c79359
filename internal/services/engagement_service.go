package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/models"
	"sociogram/internal/repository"
	"sociogram/internal/utils"
	"sociogram/pkg/constants"
	apperrors "sociogram/pkg/errors"
	"sociogram/pkg/logger"
)

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// ReactionResult reports the state after a reaction toggle.
type ReactionResult struct {
	Reacted      bool                 `json:"reacted"`
	ReactionType *models.ReactionType `json:"reaction_type,omitempty"`
	Reactions    []models.Reaction    `json:"reactions"`
}

// ShareResult reports the state after a share.
type ShareResult struct {
	Shared         bool                `json:"shared"`
	SharesCount    int64               `json:"shares_count"`
	SharedTargetID *primitive.ObjectID `json:"shared_target_id,omitempty"`
}

// SaveResult reports the state after a save toggle.
type SaveResult struct {
	Saved      bool  `json:"saved"`
	SavesCount int64 `json:"saves_count"`
}

// ViewResult reports the state after a view registration.
type ViewResult struct {
	Counted    bool  `json:"counted"`
	ViewsCount int64 `json:"views_count"`
}

var validShareDestinations = map[string]bool{
	constants.ShareDestinationTimeline: true,
	constants.ShareDestinationGroup:    true,
	constants.ShareDestinationPage:     true,
}

// CreateTargetRequest creates a new engagement target.
type CreateTargetRequest struct {
	Content   string   `json:"content" validate:"max=5000"`
	MediaURLs []string `json:"media_urls"`
}

// EngagementService implements the engagement pipeline for all target kinds:
// like, reaction, comment, share, save and view, each followed by its
// notification side effect. Notification failures never fail or roll back
// the engagement write.
type EngagementService interface {
	ToggleLike(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) (*LikeResult, error)
	React(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID, reactionType models.ReactionType) (*ReactionResult, error)
	AddComment(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, kind models.TargetKind, targetID, commentID, actorID primitive.ObjectID) error
	Share(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID, destination, message string) (*ShareResult, error)
	ToggleSave(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) (*SaveResult, error)
	AddView(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) (*ViewResult, error)

	CreateTarget(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, req *CreateTargetRequest) (*models.Target, error)
	GetTarget(ctx context.Context, kind models.TargetKind, targetID, viewerID primitive.ObjectID) (*models.Target, error)
	DeleteTarget(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) error
	GetByOwner(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error)
	GetLikers(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error)
}

type engagementService struct {
	targetRepo          repository.TargetRepository
	userRepo            repository.UserRepository
	notificationService NotificationService
	redis               *redis.Client
	logger              *logger.Logger
}

// NewEngagementService creates a new engagement service. The redis client is
// optional; a nil client disables target caching.
func NewEngagementService(
	targetRepo repository.TargetRepository,
	userRepo repository.UserRepository,
	notificationService NotificationService,
	redisClient *redis.Client,
) EngagementService {
	return &engagementService{
		targetRepo:          targetRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		redis:               redisClient,
		logger:              logger.NewComponentLogger("EngagementService"),
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) (*LikeResult, error) {
	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	added, err := s.targetRepo.AddLike(ctx, kind, targetID, actorID)
	if err != nil {
		return nil, err
	}

	result := &LikeResult{}
	if added {
		result.Liked = true
		result.LikesCount = target.LikesCount + 1

		s.notify(ctx, &CreateNotificationRequest{
			RecipientID:   target.OwnerID,
			ActorID:       actorID,
			Type:          constants.NotificationPostLike,
			RelatedPostID: &targetID,
		})
	} else {
		// Already a member, so the toggle removes.
		if _, err := s.targetRepo.RemoveLike(ctx, kind, targetID, actorID); err != nil {
			return nil, err
		}
		result.Liked = false
		result.LikesCount = target.LikesCount - 1
		if result.LikesCount < 0 {
			result.LikesCount = 0
		}
	}

	s.invalidateTargetCache(ctx, targetID)

	s.logger.WithFields(map[string]interface{}{
		"target_id": targetID,
		"kind":      kind,
		"actor_id":  actorID,
		"liked":     result.Liked,
	}).Info("Like toggled")

	return result, nil
}

func (s *engagementService) React(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID, reactionType models.ReactionType) (*ReactionResult, error) {
	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	outcome, err := models.ToggleReaction(target.Reactions, actorID, reactionType, time.Now())
	if err != nil {
		return nil, err
	}

	switch outcome.Op {
	case models.ReactionOpAdd:
		err = s.targetRepo.AddReaction(ctx, kind, targetID, models.Reaction{
			UserID:    actorID,
			Type:      reactionType,
			CreatedAt: time.Now(),
		})
	case models.ReactionOpReplace:
		err = s.targetRepo.UpdateReactionType(ctx, kind, targetID, actorID, reactionType)
	case models.ReactionOpRemove:
		err = s.targetRepo.RemoveReaction(ctx, kind, targetID, actorID)
	}
	if err != nil {
		return nil, err
	}

	// A type change re-notifies. Retractions stay silent.
	if outcome.Emitted {
		s.notify(ctx, &CreateNotificationRequest{
			RecipientID:   target.OwnerID,
			ActorID:       actorID,
			Type:          constants.NotificationPostLike,
			RelatedPostID: &targetID,
		})
	}

	s.invalidateTargetCache(ctx, targetID)

	result := &ReactionResult{
		Reacted:   outcome.Op != models.ReactionOpRemove,
		Reactions: outcome.Reactions,
	}
	if result.Reacted {
		result.ReactionType = &reactionType
	}
	return result, nil
}

func (s *engagementService) AddComment(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewEmptyCommentError()
	}
	if len(text) > constants.MaxCommentLength {
		return nil, apperrors.NewValidationError("Comment text is too long", map[string]interface{}{
			"max_length": constants.MaxCommentLength,
		})
	}

	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	// Snapshot the author's display info so the comment keeps its name
	// and avatar through later profile edits.
	info, err := s.userRepo.GetDisplayInfo(ctx, actorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:           primitive.NewObjectID(),
		AuthorID:     actorID,
		AuthorName:   info.Name,
		AuthorAvatar: info.Avatar,
		Text:         text,
		CreatedAt:    time.Now(),
	}

	if err := s.targetRepo.PushComment(ctx, kind, targetID, comment); err != nil {
		return nil, err
	}

	s.notify(ctx, &CreateNotificationRequest{
		RecipientID:   target.OwnerID,
		ActorID:       actorID,
		Type:          constants.NotificationPostComment,
		RelatedPostID: &targetID,
	})

	s.invalidateTargetCache(ctx, targetID)
	return comment, nil
}

func (s *engagementService) DeleteComment(ctx context.Context, kind models.TargetKind, targetID, commentID, actorID primitive.ObjectID) error {
	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return err
	}

	comment := target.FindComment(commentID)
	if comment == nil {
		return apperrors.NewCommentNotFoundError()
	}

	// Only the comment author or the target owner may delete.
	if comment.AuthorID != actorID && target.OwnerID != actorID {
		return apperrors.NewCommentDeleteForbiddenError()
	}

	if err := s.targetRepo.PullComment(ctx, kind, targetID, commentID); err != nil {
		return err
	}

	s.invalidateTargetCache(ctx, targetID)

	s.logger.WithFields(map[string]interface{}{
		"target_id":  targetID,
		"comment_id": commentID,
		"actor_id":   actorID,
	}).Info("Comment deleted")

	return nil
}

func (s *engagementService) Share(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID, destination, message string) (*ShareResult, error) {
	if destination == "" {
		destination = constants.ShareDestinationTimeline
	}
	if !validShareDestinations[destination] {
		return nil, apperrors.NewInvalidFieldError("destination", destination)
	}
	if len(message) > constants.MaxShareMessageLength {
		return nil, apperrors.NewValidationError("Share message is too long", map[string]interface{}{
			"max_length": constants.MaxShareMessageLength,
		})
	}

	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	added, err := s.targetRepo.AddShare(ctx, kind, targetID, actorID)
	if err != nil {
		return nil, err
	}

	result := &ShareResult{}
	switch {
	case added:
		result.Shared = true
		result.SharesCount = target.SharesCount + 1

		// The shared copy on the actor's profile is best effort: a
		// failure here leaves the share itself intact.
		shared := &models.Target{
			Kind:       kind,
			OwnerID:    actorID,
			Content:    strings.TrimSpace(message),
			SharedFrom: &targetID,
			SharedTo:   destination,
		}
		if err := s.targetRepo.Create(ctx, shared); err != nil {
			s.logger.WithError(err).WithField("target_id", targetID).Warn("Failed to create shared copy")
		} else {
			result.SharedTargetID = &shared.ID
		}

		s.notify(ctx, &CreateNotificationRequest{
			RecipientID:   target.OwnerID,
			ActorID:       actorID,
			Type:          constants.NotificationPostShare,
			RelatedPostID: &targetID,
		})

	case kind.SharePolicy() == models.ShareBidirectional:
		// Sharing again un-shares for kinds with a bidirectional policy.
		if _, err := s.targetRepo.RemoveShare(ctx, kind, targetID, actorID); err != nil {
			return nil, err
		}
		result.Shared = false
		result.SharesCount = target.SharesCount - 1
		if result.SharesCount < 0 {
			result.SharesCount = 0
		}

	default:
		// Monotonic kinds treat a repeat share as a deduplicated no-op.
		result.Shared = true
		result.SharesCount = target.SharesCount
	}

	s.invalidateTargetCache(ctx, targetID)
	return result, nil
}

func (s *engagementService) ToggleSave(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) (*SaveResult, error) {
	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	added, err := s.targetRepo.AddSave(ctx, kind, targetID, actorID)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{}
	if added {
		result.Saved = true
		result.SavesCount = target.SavesCount + 1
	} else {
		if _, err := s.targetRepo.RemoveSave(ctx, kind, targetID, actorID); err != nil {
			return nil, err
		}
		result.Saved = false
		result.SavesCount = target.SavesCount - 1
		if result.SavesCount < 0 {
			result.SavesCount = 0
		}
	}

	// Saves are private bookmarks; no notification is emitted.
	s.invalidateTargetCache(ctx, targetID)
	return result, nil
}

func (s *engagementService) AddView(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) (*ViewResult, error) {
	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	counted, err := s.targetRepo.AddView(ctx, kind, targetID, actorID)
	if err != nil {
		return nil, err
	}

	result := &ViewResult{Counted: counted, ViewsCount: target.ViewsCount}
	if counted {
		result.ViewsCount = target.ViewsCount + 1
		s.invalidateTargetCache(ctx, targetID)
	}
	return result, nil
}

func (s *engagementService) CreateTarget(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, req *CreateTargetRequest) (*models.Target, error) {
	if len(req.Content) > constants.MaxTargetContentLength {
		return nil, apperrors.NewValidationError("Content is too long", map[string]interface{}{
			"max_length": constants.MaxTargetContentLength,
		})
	}

	target := &models.Target{
		Kind:      kind,
		OwnerID:   ownerID,
		Content:   strings.TrimSpace(req.Content),
		MediaURLs: req.MediaURLs,
	}
	if err := s.targetRepo.Create(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *engagementService) GetTarget(ctx context.Context, kind models.TargetKind, targetID, viewerID primitive.ObjectID) (*models.Target, error) {
	target := s.getCachedTarget(ctx, targetID)
	if target == nil {
		var err error
		target, err = s.targetRepo.GetByID(ctx, kind, targetID)
		if err != nil {
			return nil, err
		}
		s.cacheTarget(ctx, target)
	}

	if !viewerID.IsZero() {
		target.IsLiked = models.HasMember(target.Likes, viewerID)
		target.IsSaved = models.HasMember(target.SavedBy, viewerID)
	}
	return target, nil
}

func (s *engagementService) DeleteTarget(ctx context.Context, kind models.TargetKind, targetID, actorID primitive.ObjectID) error {
	target, err := s.targetRepo.GetByID(ctx, kind, targetID)
	if err != nil {
		return err
	}
	if target.OwnerID != actorID {
		return apperrors.NewAuthorizationError("You can only delete your own content")
	}

	if err := s.targetRepo.Delete(ctx, kind, targetID); err != nil {
		return err
	}
	s.invalidateTargetCache(ctx, targetID)
	return nil
}

func (s *engagementService) GetByOwner(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	return s.targetRepo.GetByOwner(ctx, kind, ownerID, params)
}

func (s *engagementService) GetLikers(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	if _, err := s.targetRepo.GetByID(ctx, kind, targetID); err != nil {
		return nil, err
	}
	return s.targetRepo.GetLikers(ctx, kind, targetID, params)
}

// notify emits a notification for an engagement, skipping self-notification.
// Emission failures are logged and swallowed; the engagement write stands.
func (s *engagementService) notify(ctx context.Context, req *CreateNotificationRequest) {
	if req.RecipientID == req.ActorID {
		return
	}
	if _, err := s.notificationService.CreateNotification(ctx, req); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"recipient_id": req.RecipientID,
			"type":         req.Type,
		}).Error("Failed to create notification")
	}
}

// Target cache helpers

func (s *engagementService) getCachedTarget(ctx context.Context, targetID primitive.ObjectID) *models.Target {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, constants.TargetCachePrefix+targetID.Hex()).Result()
	if err != nil {
		return nil
	}
	var target models.Target
	if err := json.Unmarshal([]byte(data), &target); err != nil {
		return nil
	}
	return &target
}

func (s *engagementService) cacheTarget(ctx context.Context, target *models.Target) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(target)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, constants.TargetCachePrefix+target.ID.Hex(), data, constants.TargetCacheTTL).Err(); err != nil {
		s.logger.WithError(err).Debug("Failed to cache target")
	}
}

func (s *engagementService) invalidateTargetCache(ctx context.Context, targetID primitive.ObjectID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, constants.TargetCachePrefix+targetID.Hex()).Err(); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate target cache")
	}
}
