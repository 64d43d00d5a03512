package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rvega1204/job-manager/internal/auth"
	dom "github.com/rvega1204/job-manager/internal/domain"
	"github.com/rvega1204/job-manager/internal/dto"
	"github.com/rvega1204/job-manager/internal/service"
)

// JobHandler handles owner-scoped job CRUD.
type JobHandler struct {
	svc *service.JobService
}

// NewJobHandler returns a new JobHandler.
func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// List godoc
// @Summary      List the caller's jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListJobsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		renderError(c, err)
		return
	}
	jobs := jobsToResponses(list)
	c.JSON(http.StatusOK, dto.ListJobsResponse{Count: len(jobs), Jobs: jobs})
}

// Create godoc
// @Summary      Create a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateJobRequest  true  "Job body"
// @Success      201   {object}  dto.JobEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	j, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Company, req.Position, req.Status)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.JobEnvelope{Job: jobToResponse(j)})
}

// GetByID godoc
// @Summary      Get a job by ID
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  dto.JobEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	j, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.JobEnvelope{Job: jobToResponse(j)})
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Job ID"
// @Param        body  body      dto.UpdateJobRequest  true  "Partial update"
// @Success      200   {object}  dto.JobEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	j, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), req.Company, req.Position, req.Status)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.JobEnvelope{Job: jobToResponse(j)})
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func jobToResponse(j dom.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:        j.ID.Hex(),
		Company:   j.Company,
		Position:  j.Position,
		Status:    string(j.Status),
		CreatedBy: j.CreatedBy.Hex(),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func jobsToResponses(list []dom.Job) []dto.JobResponse {
	out := make([]dto.JobResponse, len(list))
	for i := range list {
		out[i] = jobToResponse(list[i])
	}
	return out
}
