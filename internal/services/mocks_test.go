package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/models"
	"sociogram/internal/repository"
	"sociogram/internal/utils"
)

type mockTargetRepo struct {
	mock.Mock
}

func (m *mockTargetRepo) Create(ctx context.Context, target *models.Target) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

func (m *mockTargetRepo) GetByID(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (*models.Target, error) {
	args := m.Called(ctx, kind, targetID)
	if target := args.Get(0); target != nil {
		return target.(*models.Target), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTargetRepo) Delete(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) error {
	args := m.Called(ctx, kind, targetID)
	return args.Error(0)
}

func (m *mockTargetRepo) GetByOwner(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	args := m.Called(ctx, kind, ownerID, params)
	if result := args.Get(0); result != nil {
		return result.(*utils.PaginationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTargetRepo) AddLike(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) RemoveLike(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) AddSave(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) RemoveSave(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) AddView(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) AddShare(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) RemoveShare(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) AddReaction(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, reaction models.Reaction) error {
	args := m.Called(ctx, kind, targetID, reaction)
	return args.Error(0)
}

func (m *mockTargetRepo) UpdateReactionType(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID, reactionType models.ReactionType) error {
	args := m.Called(ctx, kind, targetID, userID, reactionType)
	return args.Error(0)
}

func (m *mockTargetRepo) RemoveReaction(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) error {
	args := m.Called(ctx, kind, targetID, userID)
	return args.Error(0)
}

func (m *mockTargetRepo) PushComment(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, comment *models.Comment) error {
	args := m.Called(ctx, kind, targetID, comment)
	return args.Error(0)
}

func (m *mockTargetRepo) PullComment(ctx context.Context, kind models.TargetKind, targetID, commentID primitive.ObjectID) error {
	args := m.Called(ctx, kind, targetID, commentID)
	return args.Error(0)
}

func (m *mockTargetRepo) GetLikers(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	args := m.Called(ctx, kind, targetID, params)
	if result := args.Get(0); result != nil {
		return result.(*utils.PaginationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, notificationID primitive.ObjectID) (*models.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID, filter *repository.NotificationFilter, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	args := m.Called(ctx, recipientID, filter, params)
	if result := args.Get(0); result != nil {
		return result.(*utils.PaginationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, notificationID, recipientID primitive.ObjectID) error {
	args := m.Called(ctx, notificationID, recipientID)
	return args.Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, notificationID, recipientID primitive.ObjectID) error {
	args := m.Called(ctx, notificationID, recipientID)
	return args.Error(0)
}

func (m *mockNotificationRepo) DeleteAll(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) GetPreferences(ctx context.Context, userID primitive.ObjectID) (*models.NotificationPreferences, error) {
	args := m.Called(ctx, userID)
	if prefs := args.Get(0); prefs != nil {
		return prefs.(*models.NotificationPreferences), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) UpsertPreferences(ctx context.Context, prefs *models.NotificationPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetDisplayInfo(ctx context.Context, userID primitive.ObjectID) (*models.DisplayInfo, error) {
	args := m.Called(ctx, userID)
	if info := args.Get(0); info != nil {
		return info.(*models.DisplayInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) CreateNotification(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error) {
	args := m.Called(ctx, req)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationService) GetNotifications(ctx context.Context, userID primitive.ObjectID, filter *repository.NotificationFilter, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	args := m.Called(ctx, userID, filter, params)
	if result := args.Get(0); result != nil {
		return result.(*utils.PaginationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationService) GetNotificationCounts(ctx context.Context, userID primitive.ObjectID) (*NotificationCounts, error) {
	args := m.Called(ctx, userID)
	if counts := args.Get(0); counts != nil {
		return counts.(*NotificationCounts), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationService) MarkAsRead(ctx context.Context, notificationID, userID primitive.ObjectID) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) DeleteNotification(ctx context.Context, notificationID, userID primitive.ObjectID) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *mockNotificationService) ClearAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) GetPreferences(ctx context.Context, userID primitive.ObjectID) (*models.NotificationPreferences, error) {
	args := m.Called(ctx, userID)
	if prefs := args.Get(0); prefs != nil {
		return prefs.(*models.NotificationPreferences), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, settings map[string]bool) (*models.NotificationPreferences, error) {
	args := m.Called(ctx, userID, settings)
	if prefs := args.Get(0); prefs != nil {
		return prefs.(*models.NotificationPreferences), args.Error(1)
	}
	return nil, args.Error(1)
}
