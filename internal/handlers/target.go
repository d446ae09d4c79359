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

// TargetHandler exposes CRUD endpoints for engagement targets.
type TargetHandler struct {
	engagementService services.EngagementService
	logger            *logger.Logger
}

// NewTargetHandler creates a new target handler.
func NewTargetHandler(engagementService services.EngagementService) *TargetHandler {
	return &TargetHandler{
		engagementService: engagementService,
		logger:            logger.NewComponentLogger("TargetHandler"),
	}
}

// CreateTarget handles POST /:kind
func (h *TargetHandler) CreateTarget(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	target, err := h.engagementService.CreateTarget(c.Request.Context(), kind, userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Created", target)
}

// GetTarget handles GET /:kind/:target_id
func (h *TargetHandler) GetTarget(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}

	// Viewer is optional; anonymous requests skip the is_liked/is_saved
	// population.
	var viewerID primitive.ObjectID
	if value, exists := c.Get("user_id"); exists {
		if id, ok := value.(primitive.ObjectID); ok {
			viewerID = id
		}
	}

	target, err := h.engagementService.GetTarget(c.Request.Context(), kind, targetID, viewerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Retrieved", target)
}

// DeleteTarget handles DELETE /:kind/:target_id
func (h *TargetHandler) DeleteTarget(c *gin.Context) {
	kind, targetID, ok := targetParams(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.engagementService.DeleteTarget(c.Request.Context(), kind, targetID, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Deleted", nil)
}

// GetOwnTargets handles GET /:kind
func (h *TargetHandler) GetOwnTargets(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.engagementService.GetByOwner(c.Request.Context(), kind, userID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, "Retrieved", result.Data, &utils.Meta{
		Pagination: result.Pagination,
		Total:      result.TotalCount,
	})
}

func kindParam(c *gin.Context) (models.TargetKind, bool) {
	kind, ok := models.TargetKindFromParam(c.Param("kind"))
	if !ok {
		utils.BadRequest(c, "Invalid target kind")
		return "", false
	}
	return kind, true
}
