package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/application/service"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/request"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/response"
)

// StageHandler handles pipeline stage HTTP requests
type StageHandler struct {
	stageService *service.StageService
}

// NewStageHandler creates a new stage handler
func NewStageHandler(stageService *service.StageService) *StageHandler {
	return &StageHandler{stageService: stageService}
}

// List handles listing stages in board order
// @Summary List Stages
// @Description List pipeline stages ordered by position
// @Tags stages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /stages [get]
func (h *StageHandler) List(c *gin.Context) {
	stages, err := h.stageService.ListStages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stages retrieved successfully", gin.H{"stages": stages})
}

// Create handles stage creation
// @Summary Create Stage
// @Description Create a stage at the end of the board
// @Tags stages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateStageRequest true "Stage data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /stages [post]
func (h *StageHandler) Create(c *gin.Context) {
	var req request.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stage, err := h.stageService.CreateStage(c.Request.Context(), &service.CreateStageInput{
		Name:  req.Name,
		Type:  enum.StageType(req.Type),
		Color: req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stage created successfully", gin.H{"stage": stage})
}

// Update handles stage updates
// @Summary Update Stage
// @Description Update a stage's name, type and color
// @Tags stages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Stage ID"
// @Param request body request.UpdateStageRequest true "Stage data"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /stages/{id} [put]
func (h *StageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stage ID")
		return
	}

	var req request.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stage, err := h.stageService.UpdateStage(c.Request.Context(), id, &service.UpdateStageInput{
		Name:  req.Name,
		Type:  enum.StageType(req.Type),
		Color: req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stage updated successfully", gin.H{"stage": stage})
}

// Delete handles stage deletion
// @Summary Delete Stage
// @Description Delete a stage with no leads or tags
// @Tags stages
// @Security BearerAuth
// @Produce json
// @Param id path string true "Stage ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /stages/{id} [delete]
func (h *StageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stage ID")
		return
	}

	if err := h.stageService.DeleteStage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stage deleted successfully", nil)
}

// Reorder handles reordering the whole board
// @Summary Reorder Stages
// @Description Apply a complete new ordering of the stages
// @Tags stages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ReorderStagesRequest true "Ordered stage IDs"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /stages/reorder [put]
func (h *StageHandler) Reorder(c *gin.Context) {
	var req request.ReorderStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stages, err := h.stageService.ReorderStages(c.Request.Context(), req.Stages)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stages reordered successfully", gin.H{"stages": stages})
}
