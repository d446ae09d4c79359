package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/models"
	"sociogram/internal/repository"
	"sociogram/internal/utils"
	"sociogram/pkg/constants"
	apperrors "sociogram/pkg/errors"
	"sociogram/pkg/logger"
)

// CreateNotificationRequest carries everything needed to emit one notification.
type CreateNotificationRequest struct {
	RecipientID    primitive.ObjectID
	ActorID        primitive.ObjectID
	Type           string
	RelatedPostID  *primitive.ObjectID
	RelatedGroupID *primitive.ObjectID
	RelatedPageID  *primitive.ObjectID
}

// NotificationCounts summarizes a user's notification state.
type NotificationCounts struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
}

// NotificationService gates, persists and serves notifications.
type NotificationService interface {
	// CreateNotification emits a notification unless the recipient has
	// disabled its category. It returns nil, nil when the gate suppressed
	// the emission.
	CreateNotification(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error)
	GetNotifications(ctx context.Context, userID primitive.ObjectID, filter *repository.NotificationFilter, params *utils.PaginationParams) (*utils.PaginationResult, error)
	GetNotificationCounts(ctx context.Context, userID primitive.ObjectID) (*NotificationCounts, error)
	MarkAsRead(ctx context.Context, notificationID, userID primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteNotification(ctx context.Context, notificationID, userID primitive.ObjectID) error
	ClearAll(ctx context.Context, userID primitive.ObjectID) (int64, error)

	GetPreferences(ctx context.Context, userID primitive.ObjectID) (*models.NotificationPreferences, error)
	UpdatePreferences(ctx context.Context, userID primitive.ObjectID, settings map[string]bool) (*models.NotificationPreferences, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger.NewComponentLogger("NotificationService"),
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error) {
	// Preference gate. A lookup failure falls through to allowed so a
	// flaky preferences read never drops user-facing notifications.
	if key, ok := models.PreferenceKeyForType(req.Type); ok {
		prefs, err := s.notificationRepo.GetPreferences(ctx, req.RecipientID)
		if err != nil {
			s.logger.WithError(err).WithField("recipient_id", req.RecipientID).
				Warn("Failed to load notification preferences, allowing notification")
		} else if !prefs.Allows(key) {
			s.logger.WithFields(map[string]interface{}{
				"recipient_id": req.RecipientID,
				"type":         req.Type,
			}).Debug("Notification suppressed by preferences")
			return nil, nil
		}
	}

	title, message := s.buildContent(ctx, req)

	actorID := req.ActorID
	notification := &models.Notification{
		RecipientID:    req.RecipientID,
		Type:           req.Type,
		Title:          title,
		Message:        message,
		RelatedUserID:  &actorID,
		RelatedPostID:  req.RelatedPostID,
		RelatedGroupID: req.RelatedGroupID,
		RelatedPageID:  req.RelatedPageID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// buildContent renders the notification title and message from the actor's
// display info. An unresolvable actor degrades to a generic "Someone".
func (s *notificationService) buildContent(ctx context.Context, req *CreateNotificationRequest) (string, string) {
	actorName := "Someone"
	if info, err := s.userRepo.GetDisplayInfo(ctx, req.ActorID); err == nil {
		actorName = info.Name
	} else {
		s.logger.WithError(err).WithField("actor_id", req.ActorID).Debug("Failed to resolve actor display info")
	}

	switch req.Type {
	case constants.NotificationPostLike:
		return "New like", actorName + " liked your post"
	case constants.NotificationPostComment:
		return "New comment", actorName + " commented on your post"
	case constants.NotificationPostShare:
		return "New share", actorName + " shared your post"
	case constants.NotificationFollow:
		return "New follower", actorName + " started following you"
	case constants.NotificationPageLike:
		return "New page like", actorName + " liked your page"
	case constants.NotificationProfileVisit:
		return "Profile visit", actorName + " visited your profile"
	case constants.NotificationMention:
		return "New mention", actorName + " mentioned you"
	case constants.NotificationGroupJoin:
		return "New group member", actorName + " joined your group"
	case constants.NotificationFriendRequestAccepted:
		return "Friend request accepted", actorName + " accepted your friend request"
	case constants.NotificationTimelinePost:
		return "New timeline post", actorName + " posted on your timeline"
	default:
		return "New notification", actorName + " interacted with you"
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID primitive.ObjectID, filter *repository.NotificationFilter, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	if filter != nil && filter.Type != "" {
		if _, ok := models.PreferenceKeyForType(filter.Type); !ok {
			return nil, apperrors.NewInvalidFieldError("type", filter.Type)
		}
	}
	return s.notificationRepo.GetByRecipient(ctx, userID, filter, params)
}

func (s *notificationService) GetNotificationCounts(ctx context.Context, userID primitive.ObjectID) (*NotificationCounts, error) {
	result, err := s.notificationRepo.GetByRecipient(ctx, userID, nil, &utils.PaginationParams{Page: 1, Limit: 1, Sort: "created_at", Order: "desc"})
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationCounts{Total: result.TotalCount, Unread: unread}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID, userID primitive.ObjectID) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) DeleteNotification(ctx context.Context, notificationID, userID primitive.ObjectID) error {
	return s.notificationRepo.Delete(ctx, notificationID, userID)
}

func (s *notificationService) ClearAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.DeleteAll(ctx, userID)
}

func (s *notificationService) GetPreferences(ctx context.Context, userID primitive.ObjectID) (*models.NotificationPreferences, error) {
	prefs, err := s.notificationRepo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return models.DefaultNotificationPreferences(userID), nil
	}
	return prefs, nil
}

func (s *notificationService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, settings map[string]bool) (*models.NotificationPreferences, error) {
	if settings == nil {
		return nil, apperrors.NewValidationError("Settings are required", nil)
	}

	// Merge onto the current view so a partial update does not silently
	// reset categories the caller did not send.
	current, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]bool, len(current.Settings)+len(settings))
	for key, enabled := range current.Settings {
		merged[key] = enabled
	}
	for key, enabled := range settings {
		merged[key] = enabled
	}

	prefs := &models.NotificationPreferences{
		UserID:    userID,
		Settings:  merged,
		CreatedAt: current.CreatedAt,
	}
	if err := s.notificationRepo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
