package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/models"
	"sociogram/internal/services"
	"sociogram/internal/utils"
	"sociogram/pkg/logger"
)

// EngagementHandler exposes the like, reaction, comment, share, save and
// view endpoints for every target kind.
type EngagementHandler struct {
	engagementService services.EngagementService
	logger            *logger.Logger
}

// NewEngagementHandler creates a new engagement handler.
func NewEngagementHandler(engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		logger:            logger.NewComponentLogger("EngagementHandler"),
	}
}

type reactRequest struct {
	Type string `json:"type" binding:"required"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

type shareRequest struct {
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// targetParams resolves the kind and target id route segments, or writes
// the error response and returns false.
func targetParams(c *gin.Context) (models.TargetKind, primitive.ObjectID, bool) {
	kind, ok := models.TargetKindFromParam(c.Param("kind"))
	if !ok {
		utils.BadRequest(c, "Invalid target kind")
		return "", primitive.NilObjectID, false
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("target_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid target ID")
		return "", primitive.NilObjectID, false
	}

	return kind, targetID, true
}

// currentUserID pulls the authenticated user from the request context, or
// writes the error response and returns false.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Authentication required")
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// ToggleLike handles POST /:kind/:target_id/like
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), kind, targetID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	message := "Like removed"
	if result.Liked {
		message = "Liked"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// React handles POST /:kind/:target_id/react
func (h *EngagementHandler) React(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.engagementService.React(c.Request.Context(), kind, targetID, userID, models.ReactionType(req.Type))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	message := "Reaction removed"
	if result.Reacted {
		message = "Reaction saved"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// AddComment handles POST /:kind/:target_id/comments
func (h *EngagementHandler) AddComment(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Comment text is required")
		return
	}

	comment, err := h.engagementService.AddComment(c.Request.Context(), kind, targetID, userID, req.Text)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Comment added", comment)
}

// DeleteComment handles DELETE /:kind/:target_id/comments/:comment_id
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.engagementService.DeleteComment(c.Request.Context(), kind, targetID, commentID, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment deleted", nil)
}

// Share handles POST /:kind/:target_id/share
func (h *EngagementHandler) Share(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req shareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.engagementService.Share(c.Request.Context(), kind, targetID, userID, req.Destination, req.Message)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	message := "Share removed"
	if result.Shared {
		message = "Shared"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// ToggleSave handles POST /:kind/:target_id/save
func (h *EngagementHandler) ToggleSave(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.engagementService.ToggleSave(c.Request.Context(), kind, targetID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	message := "Removed from saved"
	if result.Saved {
		message = "Saved"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// AddView handles POST /:kind/:target_id/view
func (h *EngagementHandler) AddView(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.engagementService.AddView(c.Request.Context(), kind, targetID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "View recorded", result)
}

// GetLikers handles GET /:kind/:target_id/likers
func (h *EngagementHandler) GetLikers(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.engagementService.GetLikers(c.Request.Context(), kind, targetID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, "Likers retrieved", result.Data, &utils.Meta{
		Pagination: result.Pagination,
		Total:      result.TotalCount,
	})
}
