package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/application/service"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/request"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/response"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List handles listing tags, optionally filtered by stage
// @Summary List Tags
// @Description List tags, optionally for a single stage
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param stage_id query string false "Stage ID filter"
// @Success 200 {object} response.APIResponse
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	var stageID *uuid.UUID
	if raw := c.Query("stage_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid stage ID")
			return
		}
		stageID = &id
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), stageID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tags retrieved successfully", gin.H{"tags": tags})
}

// Create handles tag creation
// @Summary Create Tag
// @Description Create a tag inside a stage
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateTagRequest true "Tag data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req request.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), &service.CreateTagInput{
		Name:    req.Name,
		Color:   req.Color,
		StageID: req.StageID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tag created successfully", gin.H{"tag": tag})
}

// Update handles tag updates
// @Summary Update Tag
// @Description Update a tag's name, color or stage
// @Tags tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body request.UpdateTagRequest true "Tag data"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	var req request.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), id, &service.UpdateTagInput{
		Name:    req.Name,
		Color:   req.Color,
		StageID: req.StageID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tag updated successfully", gin.H{"tag": tag})
}

// Delete handles tag deletion
// @Summary Delete Tag
// @Description Delete a tag not referenced by any lead
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tag deleted successfully", nil)
}
