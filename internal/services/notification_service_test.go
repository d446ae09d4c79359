package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/models"
	"sociogram/pkg/constants"
	apperrors "sociogram/pkg/errors"
)

func likeRequest(recipient, actor primitive.ObjectID) *CreateNotificationRequest {
	return &CreateNotificationRequest{
		RecipientID: recipient,
		ActorID:     actor,
		Type:        constants.NotificationPostLike,
	}
}

func TestCreateNotification_NoPreferencesAllows(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	notificationRepo.On("GetPreferences", mock.Anything, recipient).Return(nil, nil)
	userRepo.On("GetDisplayInfo", mock.Anything, actor).Return(&models.DisplayInfo{Name: "Binta"}, nil)
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == recipient && n.Type == constants.NotificationPostLike && n.Message == "Binta liked your post"
	})).Return(nil)

	service := NewNotificationService(notificationRepo, userRepo)
	notification, err := service.CreateNotification(context.Background(), likeRequest(recipient, actor))

	require.NoError(t, err)
	require.NotNil(t, notification)
	require.NotNil(t, notification.RelatedUserID)
	assert.Equal(t, actor, *notification.RelatedUserID)
	notificationRepo.AssertExpectations(t)
}

func TestCreateNotification_ExplicitFalseSuppresses(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	prefs := &models.NotificationPreferences{
		UserID:   recipient,
		Settings: map[string]bool{models.PrefSomeoneLikedMyPosts: false},
	}
	notificationRepo.On("GetPreferences", mock.Anything, recipient).Return(prefs, nil)

	service := NewNotificationService(notificationRepo, userRepo)
	notification, err := service.CreateNotification(context.Background(), likeRequest(recipient, primitive.NewObjectID()))

	require.NoError(t, err)
	assert.Nil(t, notification)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNotification_MissingKeyAllows(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	prefs := &models.NotificationPreferences{
		UserID:   recipient,
		Settings: map[string]bool{models.PrefSomeoneFollowedMe: false},
	}
	notificationRepo.On("GetPreferences", mock.Anything, recipient).Return(prefs, nil)
	userRepo.On("GetDisplayInfo", mock.Anything, actor).Return(&models.DisplayInfo{Name: "Chet"}, nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewNotificationService(notificationRepo, userRepo)
	notification, err := service.CreateNotification(context.Background(), likeRequest(recipient, actor))

	require.NoError(t, err)
	assert.NotNil(t, notification)
}

func TestCreateNotification_UnmappedTypeSkipsGate(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	userRepo.On("GetDisplayInfo", mock.Anything, actor).Return(&models.DisplayInfo{Name: "Dee"}, nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewNotificationService(notificationRepo, userRepo)
	notification, err := service.CreateNotification(context.Background(), &CreateNotificationRequest{
		RecipientID: recipient,
		ActorID:     actor,
		Type:        "system_announcement",
	})

	require.NoError(t, err)
	assert.NotNil(t, notification)
	notificationRepo.AssertNotCalled(t, "GetPreferences", mock.Anything, mock.Anything)
}

func TestCreateNotification_PreferenceLookupFailureAllows(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	notificationRepo.On("GetPreferences", mock.Anything, recipient).
		Return(nil, apperrors.NewDatabaseError("read failed", nil))
	userRepo.On("GetDisplayInfo", mock.Anything, actor).Return(&models.DisplayInfo{Name: "Eli"}, nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewNotificationService(notificationRepo, userRepo)
	notification, err := service.CreateNotification(context.Background(), likeRequest(recipient, actor))

	require.NoError(t, err)
	assert.NotNil(t, notification)
}

func TestCreateNotification_StorageErrorPropagates(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	notificationRepo.On("GetPreferences", mock.Anything, recipient).Return(nil, nil)
	userRepo.On("GetDisplayInfo", mock.Anything, actor).Return(&models.DisplayInfo{Name: "Femi"}, nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.NewDatabaseError("write failed", nil))

	service := NewNotificationService(notificationRepo, userRepo)
	notification, err := service.CreateNotification(context.Background(), likeRequest(recipient, actor))

	require.Error(t, err)
	assert.Nil(t, notification)
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeDatabase, appErr.Type)
}

func TestCreateNotification_UnresolvableActorDegrades(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	recipient := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	notificationRepo.On("GetPreferences", mock.Anything, recipient).Return(nil, nil)
	userRepo.On("GetDisplayInfo", mock.Anything, actor).Return(nil, apperrors.NewUserNotFoundError())
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Message == "Someone liked your post"
	})).Return(nil)

	service := NewNotificationService(notificationRepo, userRepo)
	_, err := service.CreateNotification(context.Background(), likeRequest(recipient, actor))

	require.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

func TestGetPreferences_DefaultsWhenAbsent(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	userID := primitive.NewObjectID()
	notificationRepo.On("GetPreferences", mock.Anything, userID).Return(nil, nil)

	service := NewNotificationService(notificationRepo, userRepo)
	prefs, err := service.GetPreferences(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID, prefs.UserID)
	assert.True(t, prefs.Allows(models.PrefSomeoneSharedMyPosts))
	assert.Len(t, prefs.Settings, 10)
}

func TestUpdatePreferences_MergesPartialUpdate(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	userID := primitive.NewObjectID()
	existing := &models.NotificationPreferences{
		UserID: userID,
		Settings: map[string]bool{
			models.PrefSomeoneLikedMyPosts:     false,
			models.PrefSomeoneFollowedMe:       true,
			models.PrefSomeoneSharedMyPosts:    true,
			models.PrefSomeoneMentionedMe:      true,
			models.PrefSomeoneVisitedMyProfile: true,
		},
	}
	notificationRepo.On("GetPreferences", mock.Anything, userID).Return(existing, nil)
	notificationRepo.On("UpsertPreferences", mock.Anything, mock.MatchedBy(func(p *models.NotificationPreferences) bool {
		return p.Settings[models.PrefSomeoneLikedMyPosts] == false &&
			p.Settings[models.PrefSomeoneFollowedMe] == false &&
			p.Settings[models.PrefSomeoneSharedMyPosts] == true
	})).Return(nil)

	service := NewNotificationService(notificationRepo, userRepo)
	prefs, err := service.UpdatePreferences(context.Background(), userID, map[string]bool{
		models.PrefSomeoneFollowedMe: false,
	})

	require.NoError(t, err)
	assert.False(t, prefs.Allows(models.PrefSomeoneFollowedMe))
	assert.False(t, prefs.Allows(models.PrefSomeoneLikedMyPosts))
	notificationRepo.AssertExpectations(t)
}

func TestUpdatePreferences_NilSettingsRejected(t *testing.T) {
	notificationRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)

	service := NewNotificationService(notificationRepo, userRepo)
	_, err := service.UpdatePreferences(context.Background(), primitive.NewObjectID(), nil)

	require.Error(t, err)
	notificationRepo.AssertNotCalled(t, "UpsertPreferences", mock.Anything, mock.Anything)
}
