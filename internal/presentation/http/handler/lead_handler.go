package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/application/service"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/request"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/response"
	"github.com/prospecta/prospecta-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService   *service.LeadService
	importService *service.LeadImportService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *service.LeadService, importService *service.LeadImportService) *LeadHandler {
	return &LeadHandler{leadService: leadService, importService: importService}
}

// List handles listing leads visible to the authenticated user
// @Summary List Leads
// @Description List leads with pagination and search
// @Tags leads
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by name, company or email"
// @Success 200 {object} response.APIResponse
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), actor, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Leads retrieved successfully", result)
}

// Create handles lead creation
// @Summary Create Lead
// @Description Create a new lead from the submitted form
// @Tags leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SaveLeadRequest true "Lead data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SaveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), saveInput(&req), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lead created successfully", gin.H{"lead": lead})
}

// Get handles fetching a single lead
// @Summary Get Lead
// @Description Get a lead by ID
// @Tags leads
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead retrieved successfully", gin.H{"lead": lead})
}

// Update handles a full form save on an existing lead
// @Summary Update Lead
// @Description Update a lead with the full form snapshot
// @Tags leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body request.SaveLeadRequest true "Lead data"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	var req request.SaveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), id, saveInput(&req), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead updated successfully", gin.H{"lead": lead})
}

// MoveToStage handles a board drag-and-drop stage change
// @Summary Move Lead
// @Description Move a lead to another stage
// @Tags leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body request.MoveLeadRequest true "Target stage"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /leads/{id}/status [put]
func (h *LeadHandler) MoveToStage(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	var req request.MoveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.MoveToStage(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead moved successfully", gin.H{"lead": lead})
}

// SaveBilling handles the billing modal for a won client
// @Summary Save Billing
// @Description Record client status and a month's billed flag
// @Tags leads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body request.SaveBillingRequest true "Billing data"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /leads/{id}/billing [put]
func (h *LeadHandler) SaveBilling(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	var req request.SaveBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.leadService.SaveBilling(c.Request.Context(), id, &service.SaveBillingInput{
		ClientStatus: enum.ClientStatus(req.ClientStatus),
		Month:        req.Month,
		Billed:       req.Billed,
	}, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing saved successfully", gin.H{"lead": lead})
}

// AckNotification handles a seller acknowledging a manager note
// @Summary Acknowledge Notification
// @Description Clear the seller notification flag on a lead
// @Tags leads
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.APIResponse
// @Router /leads/{id}/notifications/ack [post]
func (h *LeadHandler) AckNotification(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.AckSellerNotification(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notification acknowledged", gin.H{"lead": lead})
}

// Import handles a spreadsheet upload of leads
// @Summary Import Leads
// @Description Import leads from an Excel workbook
// @Tags leads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel workbook"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /leads/import [post]
func (h *LeadHandler) Import(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportLeads(c.Request.Context(), file, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}

// Template handles downloading the import template
// @Summary Import Template
// @Description Download the Excel template for lead imports
// @Tags leads
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Router /leads/template [get]
func (h *LeadHandler) Template(c *gin.Context) {
	f, err := h.importService.Template()
	if err != nil {
		response.Error(c, err)
		return
	}

	writeWorkbook(c, f, "plantilla-prospectos.xlsx")
}

// Export handles exporting the leads visible to the authenticated user
// @Summary Export Leads
// @Description Download visible leads as an Excel workbook
// @Tags leads
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Router /leads/export [get]
func (h *LeadHandler) Export(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	f, err := h.importService.ExportLeads(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("prospectos-%s.xlsx", time.Now().Format("2006-01-02"))
	writeWorkbook(c, f, name)
}

// BillingReport handles downloading the monthly billing report
// @Summary Billing Report
// @Description Download the billing report for won clients
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Router /reports/billing [get]
func (h *LeadHandler) BillingReport(c *gin.Context) {
	f, err := h.importService.BillingReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("facturacion-%s.xlsx", time.Now().Format("2006-01-02"))
	writeWorkbook(c, f, name)
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", excelContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func saveInput(req *request.SaveLeadRequest) *service.SaveLeadInput {
	return &service.SaveLeadInput{
		Name:            req.Name,
		Company:         req.Company,
		Email:           req.Email,
		Phone:           req.Phone,
		StatusID:        req.Status,
		TagID:           req.TagID,
		ProductIDs:      req.ProductIDs,
		ProviderID:      req.ProviderID,
		OwnerID:         req.OwnerID,
		AssignedOffice:  req.AssignedOffice,
		AffiliateNumber: req.AffiliateNumber,
		NewObservation:  req.NewObservation,
	}
}
