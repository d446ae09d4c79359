package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sociogram/internal/models"
	"sociogram/internal/utils"
	"sociogram/pkg/constants"
	apperrors "sociogram/pkg/errors"
	"sociogram/pkg/logger"
)

// NotificationFilter narrows notification listings.
type NotificationFilter struct {
	Type       string
	UnreadOnly bool
}

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, notificationID primitive.ObjectID) (*models.Notification, error)
	GetByRecipient(ctx context.Context, recipientID primitive.ObjectID, filter *NotificationFilter, params *utils.PaginationParams) (*utils.PaginationResult, error)
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, recipientID primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, notificationID, recipientID primitive.ObjectID) error
	DeleteAll(ctx context.Context, recipientID primitive.ObjectID) (int64, error)

	GetPreferences(ctx context.Context, userID primitive.ObjectID) (*models.NotificationPreferences, error)
	UpsertPreferences(ctx context.Context, prefs *models.NotificationPreferences) error
}

type notificationRepository struct {
	collection      *mongo.Collection
	prefsCollection *mongo.Collection
	logger          *logger.Logger
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(database *mongo.Database) NotificationRepository {
	return &notificationRepository{
		collection:      database.Collection(constants.NotificationsCollection),
		prefsCollection: database.Collection(constants.NotificationPreferencesCollection),
		logger:          logger.NewComponentLogger("NotificationRepository"),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		r.logger.WithError(err).Error("Failed to create notification")
		return apperrors.NewDatabaseError("Failed to create notification", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"notification_id": notification.ID,
		"recipient_id":    notification.RecipientID,
		"type":            notification.Type,
	}).Info("Notification created")

	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, notificationID primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": notificationID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotificationNotFoundError()
		}
		r.logger.WithError(err).Error("Failed to get notification")
		return nil, apperrors.NewDatabaseError("Failed to get notification", err)
	}
	return &notification, nil
}

func (r *notificationRepository) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID, filter *NotificationFilter, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	query := bson.M{"recipient_id": recipientID}
	if filter != nil {
		if filter.Type != "" {
			query["type"] = filter.Type
		}
		if filter.UnreadOnly {
			query["is_read"] = false
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to count notifications")
		return nil, apperrors.NewDatabaseError("Failed to count notifications", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetMongoOptions())
	if err != nil {
		r.logger.WithError(err).Error("Failed to list notifications")
		return nil, apperrors.NewDatabaseError("Failed to list notifications", err)
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		r.logger.WithError(err).Error("Failed to decode notifications")
		return nil, apperrors.NewDatabaseError("Failed to decode notifications", err)
	}

	return &utils.PaginationResult{
		Data:       notifications,
		Pagination: utils.CalculatePaginationMeta(params.Page, params.Limit, total),
		TotalCount: total,
	}, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"recipient_id": recipientID,
		"is_read":      false,
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to count unread notifications")
		return 0, apperrors.NewDatabaseError("Failed to count unread notifications", err)
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID, recipientID primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": notificationID, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_read": true, "read_at": now}},
	)
	if err != nil {
		r.logger.WithError(err).Error("Failed to mark notification as read")
		return apperrors.NewDatabaseError("Failed to mark notification as read", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotificationNotFoundError()
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	now := time.Now()
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": now}},
	)
	if err != nil {
		r.logger.WithError(err).Error("Failed to mark all notifications as read")
		return 0, apperrors.NewDatabaseError("Failed to mark notifications as read", err)
	}
	return result.ModifiedCount, nil
}

func (r *notificationRepository) Delete(ctx context.Context, notificationID, recipientID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":          notificationID,
		"recipient_id": recipientID,
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete notification")
		return apperrors.NewDatabaseError("Failed to delete notification", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NewNotificationNotFoundError()
	}
	return nil
}

func (r *notificationRepository) DeleteAll(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"recipient_id": recipientID})
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete notifications")
		return 0, apperrors.NewDatabaseError("Failed to delete notifications", err)
	}
	return result.DeletedCount, nil
}

// GetPreferences returns the stored preference document, or (nil, nil) when
// the user has never saved preferences.
func (r *notificationRepository) GetPreferences(ctx context.Context, userID primitive.ObjectID) (*models.NotificationPreferences, error) {
	var prefs models.NotificationPreferences
	err := r.prefsCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prefs)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		r.logger.WithError(err).Error("Failed to get notification preferences")
		return nil, apperrors.NewDatabaseError("Failed to get notification preferences", err)
	}
	return &prefs, nil
}

func (r *notificationRepository) UpsertPreferences(ctx context.Context, prefs *models.NotificationPreferences) error {
	now := time.Now()
	prefs.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"settings":   prefs.Settings,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    prefs.UserID,
			"created_at": now,
		},
	}

	_, err := r.prefsCollection.UpdateOne(ctx,
		bson.M{"user_id": prefs.UserID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		r.logger.WithError(err).Error("Failed to upsert notification preferences")
		return apperrors.NewDatabaseError("Failed to save notification preferences", err)
	}

	r.logger.WithField("user_id", prefs.UserID).Info("Notification preferences saved")
	return nil
}
