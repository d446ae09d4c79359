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

// TargetRepository defines persistence for engagement targets of all kinds.
// Membership toggles are single atomic updates keyed by (target, user): the
// filter excludes or requires the member, and the matching counter is
// incremented in the same update, so concurrent toggles cannot lose writes.
type TargetRepository interface {
	Create(ctx context.Context, target *models.Target) error
	GetByID(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (*models.Target, error)
	Delete(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) error
	GetByOwner(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error)

	// Set membership operations. The bool result reports whether the
	// document changed (false means the member was already in / already
	// out of the set).
	AddLike(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	RemoveLike(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	AddSave(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	RemoveSave(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	AddView(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	AddShare(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	RemoveShare(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error)

	// Reaction operations, one entry per (target, user).
	AddReaction(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, reaction models.Reaction) error
	UpdateReactionType(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID, reactionType models.ReactionType) error
	RemoveReaction(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) error

	// Comment operations.
	PushComment(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, comment *models.Comment) error
	PullComment(ctx context.Context, kind models.TargetKind, targetID, commentID primitive.ObjectID) error

	GetLikers(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error)
}

type targetRepository struct {
	database *mongo.Database
	logger   *logger.Logger
}

// NewTargetRepository creates a new target repository.
func NewTargetRepository(database *mongo.Database) TargetRepository {
	return &targetRepository{
		database: database,
		logger:   logger.NewComponentLogger("TargetRepository"),
	}
}

func (r *targetRepository) collection(kind models.TargetKind) *mongo.Collection {
	return r.database.Collection(kind.Collection())
}

func (r *targetRepository) Create(ctx context.Context, target *models.Target) error {
	if target.ID.IsZero() {
		target.ID = primitive.NewObjectID()
	}
	now := time.Now()
	target.CreatedAt = now
	target.UpdatedAt = now

	// Membership arrays are stored non-null so $addToSet always has a
	// set to work with.
	if target.Likes == nil {
		target.Likes = []primitive.ObjectID{}
	}
	if target.Reactions == nil {
		target.Reactions = []models.Reaction{}
	}
	if target.Views == nil {
		target.Views = []primitive.ObjectID{}
	}
	if target.Shares == nil {
		target.Shares = []primitive.ObjectID{}
	}
	if target.SavedBy == nil {
		target.SavedBy = []primitive.ObjectID{}
	}
	if target.Comments == nil {
		target.Comments = []models.Comment{}
	}

	_, err := r.collection(target.Kind).InsertOne(ctx, target)
	if err != nil {
		r.logger.WithError(err).WithField("kind", target.Kind).Error("Failed to create target")
		return apperrors.NewDatabaseError("Failed to create target", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"target_id": target.ID,
		"kind":      target.Kind,
		"owner_id":  target.OwnerID,
	}).Info("Target created")

	return nil
}

func (r *targetRepository) GetByID(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) (*models.Target, error) {
	var target models.Target
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": targetID}).Decode(&target)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewTargetNotFoundError()
		}
		r.logger.WithError(err).Error("Failed to get target")
		return nil, apperrors.NewDatabaseError("Failed to get target", err)
	}
	return &target, nil
}

func (r *targetRepository) Delete(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID) error {
	result, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": targetID})
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete target")
		return apperrors.NewDatabaseError("Failed to delete target", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NewTargetNotFoundError()
	}
	return nil
}

func (r *targetRepository) GetByOwner(ctx context.Context, kind models.TargetKind, ownerID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	filter := bson.M{"owner_id": ownerID}
	coll := r.collection(kind)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.WithError(err).Error("Failed to count targets")
		return nil, apperrors.NewDatabaseError("Failed to count targets", err)
	}

	cursor, err := coll.Find(ctx, filter, params.GetMongoOptions())
	if err != nil {
		r.logger.WithError(err).Error("Failed to list targets")
		return nil, apperrors.NewDatabaseError("Failed to list targets", err)
	}
	defer cursor.Close(ctx)

	var targets []*models.Target
	if err := cursor.All(ctx, &targets); err != nil {
		r.logger.WithError(err).Error("Failed to decode targets")
		return nil, apperrors.NewDatabaseError("Failed to decode targets", err)
	}

	return &utils.PaginationResult{
		Data:       targets,
		Pagination: utils.CalculatePaginationMeta(params.Page, params.Limit, total),
		TotalCount: total,
	}, nil
}

// Set membership operations

func (r *targetRepository) AddLike(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.addMember(ctx, kind, targetID, userID, "likes", "likes_count")
}

func (r *targetRepository) RemoveLike(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.removeMember(ctx, kind, targetID, userID, "likes", "likes_count")
}

func (r *targetRepository) AddSave(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.addMember(ctx, kind, targetID, userID, "saved_by", "saves_count")
}

func (r *targetRepository) RemoveSave(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.removeMember(ctx, kind, targetID, userID, "saved_by", "saves_count")
}

func (r *targetRepository) AddView(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.addMember(ctx, kind, targetID, userID, "views", "views_count")
}

func (r *targetRepository) AddShare(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.addMember(ctx, kind, targetID, userID, "shares", "shares_count")
}

func (r *targetRepository) RemoveShare(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	return r.removeMember(ctx, kind, targetID, userID, "shares", "shares_count")
}

// addMember adds userID to the field's set and bumps the counter in one
// update. The filter requires the member to be absent, so the counter only
// moves when the set actually changes.
func (r *targetRepository) addMember(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID, field, counterField string) (bool, error) {
	filter := bson.M{
		"_id": targetID,
		field: bson.M{"$ne": userID},
	}
	update := bson.M{
		"$addToSet": bson.M{field: userID},
		"$inc":      bson.M{counterField: 1},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.WithError(err).WithField("field", field).Error("Failed to add set member")
		return false, apperrors.NewDatabaseError("Failed to update target", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *targetRepository) removeMember(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID, field, counterField string) (bool, error) {
	filter := bson.M{
		"_id": targetID,
		field: userID,
	}
	update := bson.M{
		"$pull": bson.M{field: userID},
		"$inc":  bson.M{counterField: -1},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.WithError(err).WithField("field", field).Error("Failed to remove set member")
		return false, apperrors.NewDatabaseError("Failed to update target", err)
	}

	return result.ModifiedCount > 0, nil
}

// Reaction operations

func (r *targetRepository) AddReaction(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, reaction models.Reaction) error {
	filter := bson.M{
		"_id":               targetID,
		"reactions.user_id": bson.M{"$ne": reaction.UserID},
	}
	update := bson.M{
		"$push": bson.M{"reactions": reaction},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.WithError(err).Error("Failed to add reaction")
		return apperrors.NewDatabaseError("Failed to add reaction", err)
	}
	if result.MatchedCount == 0 {
		// The user reacted concurrently; the one-reaction-per-user
		// invariant holds, so treat as done.
		r.logger.WithField("target_id", targetID).Debug("Reaction already present")
	}
	return nil
}

func (r *targetRepository) UpdateReactionType(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID, reactionType models.ReactionType) error {
	filter := bson.M{"_id": targetID}
	update := bson.M{
		"$set": bson.M{
			"reactions.$[entry].type": reactionType,
			"updated_at":              time.Now(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"entry.user_id": userID}},
	})

	_, err := r.collection(kind).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		r.logger.WithError(err).Error("Failed to update reaction type")
		return apperrors.NewDatabaseError("Failed to update reaction", err)
	}
	return nil
}

func (r *targetRepository) RemoveReaction(ctx context.Context, kind models.TargetKind, targetID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": targetID}
	update := bson.M{
		"$pull": bson.M{"reactions": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	_, err := r.collection(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.WithError(err).Error("Failed to remove reaction")
		return apperrors.NewDatabaseError("Failed to remove reaction", err)
	}
	return nil
}

// Comment operations

func (r *targetRepository) PushComment(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}

	filter := bson.M{"_id": targetID}
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$inc":  bson.M{"comments_count": 1},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.WithError(err).Error("Failed to push comment")
		return apperrors.NewDatabaseError("Failed to add comment", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewTargetNotFoundError()
	}

	r.logger.WithFields(map[string]interface{}{
		"target_id":  targetID,
		"comment_id": comment.ID,
		"author_id":  comment.AuthorID,
	}).Info("Comment added")

	return nil
}

func (r *targetRepository) PullComment(ctx context.Context, kind models.TargetKind, targetID, commentID primitive.ObjectID) error {
	filter := bson.M{"_id": targetID, "comments._id": commentID}
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$inc":  bson.M{"comments_count": -1},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.WithError(err).Error("Failed to pull comment")
		return apperrors.NewDatabaseError("Failed to delete comment", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewCommentNotFoundError()
	}
	return nil
}

func (r *targetRepository) GetLikers(ctx context.Context, kind models.TargetKind, targetID primitive.ObjectID, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": targetID}},
		{"$unwind": "$likes"},
		{
			"$lookup": bson.M{
				"from":         constants.UsersCollection,
				"localField":   "likes",
				"foreignField": "_id",
				"as":           "user",
			},
		},
		{"$unwind": "$user"},
		{"$replaceRoot": bson.M{"newRoot": "$user"}},
	}

	return r.aggregateWithPagination(ctx, r.collection(kind), pipeline, params)
}

func (r *targetRepository) aggregateWithPagination(ctx context.Context, collection *mongo.Collection, pipeline []bson.M, params *utils.PaginationParams) (*utils.PaginationResult, error) {
	countPipeline := append(append([]bson.M{}, pipeline...), bson.M{"$count": "total"})
	countCursor, err := collection.Aggregate(ctx, countPipeline)
	if err != nil {
		r.logger.WithError(err).Error("Failed to count documents")
		return nil, apperrors.NewDatabaseError("Failed to count documents", err)
	}
	defer countCursor.Close(ctx)

	var countResult []bson.M
	if err := countCursor.All(ctx, &countResult); err != nil {
		return nil, apperrors.NewDatabaseError("Failed to decode count", err)
	}

	var total int64
	if len(countResult) > 0 {
		if count, ok := countResult[0]["total"].(int32); ok {
			total = int64(count)
		}
	}

	pipeline = append(pipeline,
		bson.M{"$skip": params.Skip()},
		bson.M{"$limit": params.Limit},
	)

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.WithError(err).Error("Failed to aggregate documents")
		return nil, apperrors.NewDatabaseError("Failed to aggregate documents", err)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.WithError(err).Error("Failed to decode documents")
		return nil, apperrors.NewDatabaseError("Failed to decode documents", err)
	}

	return &utils.PaginationResult{
		Data:       results,
		Pagination: utils.CalculatePaginationMeta(params.Page, params.Limit, total),
		TotalCount: total,
	}, nil
}
