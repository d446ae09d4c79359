package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sociogram/internal/models"
	"sociogram/pkg/constants"
	apperrors "sociogram/pkg/errors"
	"sociogram/pkg/logger"
)

// UserRepository defines user lookup operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	GetDisplayInfo(ctx context.Context, userID primitive.ObjectID) (*models.DisplayInfo, error)
}

type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(database *mongo.Database) UserRepository {
	return &userRepository{
		collection: database.Collection(constants.UsersCollection),
		logger:     logger.NewComponentLogger("UserRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewUserNotFoundError()
		}
		r.logger.WithError(err).Error("Failed to get user")
		return nil, apperrors.NewDatabaseError("Failed to get user", err)
	}
	return &user, nil
}

func (r *userRepository) GetDisplayInfo(ctx context.Context, userID primitive.ObjectID) (*models.DisplayInfo, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := user.Display()
	return &info, nil
}
