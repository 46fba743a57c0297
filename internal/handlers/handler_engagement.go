package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/dto"
	"github.com/ledgerline/practice_backend/internal/middleware"
)

// engagementHandler handles HTTP requests for engagements, their task
// workflow, and PBC requests.
type engagementHandler struct {
	engagementService portssvc.EngagementSvcFacade
	documentService   portssvc.DocumentSvcFacade
}

func newEngagementHandler(es portssvc.EngagementSvcFacade, ds portssvc.DocumentSvcFacade) *engagementHandler {
	return &engagementHandler{engagementService: es, documentService: ds}
}

// registerEngagementRoutes registers routes related to engagements and tasks.
func registerEngagementRoutes(rg *gin.RouterGroup, engagementService portssvc.EngagementSvcFacade, documentService portssvc.DocumentSvcFacade) {
	h := newEngagementHandler(engagementService, documentService)

	engagements := rg.Group("/engagements")
	{
		engagements.POST("", h.createEngagement)
		engagements.GET("/:id", h.getEngagement)
		engagements.PUT("/:id", h.updateEngagement)
		engagements.GET("/:id/tasks", h.listTasks)
		engagements.POST("/:id/refresh-progress", h.refreshProgress)
		engagements.POST("/:id/pbc-requests", h.createPBCRequest)
		engagements.GET("/:id/pbc-requests", h.listPBCRequests)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.PUT("/:taskID/status", h.updateTaskStatus)
		tasks.POST("/:taskID/signoff/prepare", h.signOffPrepare)
		tasks.POST("/:taskID/signoff/review", h.signOffReview)
		tasks.DELETE("/:taskID", h.deleteTask)
	}

	pbc := rg.Group("/pbc-requests")
	{
		pbc.POST("/:requestID/submit", h.submitPBCRequest)
		pbc.POST("/:requestID/resolve", h.resolvePBCRequest)
	}
}

// createEngagement godoc
// @Summary Open a new engagement
// @Tags engagements
// @Accept  json
// @Produce  json
// @Param   engagement body dto.CreateEngagementRequest true "Engagement details"
// @Success 201 {object} dto.EngagementResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown client"
// @Security BearerAuth
// @Router /engagements [post]
func (h *engagementHandler) createEngagement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEngagement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	engagement, err := h.engagementService.CreateEngagement(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create engagement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create engagement"})
		}
		return
	}

	logger.Info("Engagement created", slog.String("engagement_id", engagement.EngagementID))
	c.JSON(http.StatusCreated, dto.ToEngagementResponse(engagement))
}

// getEngagement godoc
// @Summary Get an engagement by ID
// @Tags engagements
// @Produce  json
// @Param   id path string true "Engagement ID"
// @Success 200 {object} dto.EngagementResponse
// @Failure 404 {object} map[string]string "Engagement not found"
// @Security BearerAuth
// @Router /engagements/{id} [get]
func (h *engagementHandler) getEngagement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	engagementID := c.Param("id")

	engagement, err := h.engagementService.GetEngagementByID(c.Request.Context(), engagementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Engagement not found"})
		} else {
			logger.Error("Failed to get engagement", slog.String("engagement_id", engagementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve engagement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEngagementResponse(engagement))
}

// updateEngagement godoc
// @Summary Update an engagement
// @Description Applies the provided fields to an engagement; omitted fields are unchanged
// @Tags engagements
// @Accept  json
// @Produce  json
// @Param   id path string true "Engagement ID"
// @Param   engagement body dto.UpdateEngagementRequest true "Fields to update"
// @Success 200 {object} dto.EngagementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Engagement not found"
// @Security BearerAuth
// @Router /engagements/{id} [put]
func (h *engagementHandler) updateEngagement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	engagementID := c.Param("id")

	var req dto.UpdateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEngagement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	engagement, err := h.engagementService.UpdateEngagement(c.Request.Context(), engagementID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Engagement not found"})
		} else {
			logger.Error("Failed to update engagement", slog.String("engagement_id", engagementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update engagement"})
		}
		return
	}

	logger.Info("Engagement updated", slog.String("engagement_id", engagementID))
	c.JSON(http.StatusOK, dto.ToEngagementResponse(engagement))
}

// createTask godoc
// @Summary Add a task to an engagement
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task body dto.CreateTaskRequest true "Task details"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown engagement"
// @Security BearerAuth
// @Router /tasks [post]
func (h *engagementHandler) createTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTask", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.engagementService.CreateTask(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create task", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		}
		return
	}

	logger.Info("Task created", slog.String("task_id", task.TaskID))
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// listTasks godoc
// @Summary List an engagement's tasks
// @Tags tasks
// @Produce  json
// @Param   id path string true "Engagement ID"
// @Success 200 {array} dto.TaskResponse
// @Security BearerAuth
// @Router /engagements/{id}/tasks [get]
func (h *engagementHandler) listTasks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	engagementID := c.Param("id")

	tasks, err := h.engagementService.ListTasks(c.Request.Context(), engagementID)
	if err != nil {
		logger.Error("Failed to list tasks", slog.String("engagement_id", engagementID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaskResponse(tasks))
}

// updateTaskStatus godoc
// @Summary Move a task through its workflow states
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Param   status body dto.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID}/status [put]
func (h *engagementHandler) updateTaskStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTaskStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.engagementService.UpdateTaskStatus(c.Request.Context(), taskID, req.Status, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			logger.Error("Failed to update task status", slog.String("task_id", taskID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		}
		return
	}

	logger.Info("Task status updated", slog.String("task_id", taskID), slog.String("status", string(task.Status)))
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// signOffPrepare godoc
// @Summary Record first-level sign-off on a task
// @Description Marks the task prepared by the calling user and moves it to REVIEW
// @Tags tasks
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID}/signoff/prepare [post]
func (h *engagementHandler) signOffPrepare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.engagementService.SignOffPrepare(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			logger.Error("Failed to record prepare sign-off", slog.String("task_id", taskID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sign-off"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// signOffReview godoc
// @Summary Record second-level sign-off on a task
// @Description Marks the task reviewed and DONE; the reviewer must differ from the preparer
// @Tags tasks
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 409 {object} map[string]string "Task not prepared, or reviewer is the preparer"
// @Security BearerAuth
// @Router /tasks/{taskID}/signoff/review [post]
func (h *engagementHandler) signOffReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.engagementService.SignOffReview(c.Request.Context(), taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, domain.ErrNotPrepared), errors.Is(err, domain.ErrReviewerIsPreparer):
			logger.Warn("Review sign-off rejected", slog.String("task_id", taskID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record review sign-off", slog.String("task_id", taskID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sign-off"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// deleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID} [delete]
func (h *engagementHandler) deleteTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.engagementService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			logger.Error("Failed to delete task", slog.String("task_id", taskID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// refreshProgress godoc
// @Summary Recompute an engagement's completion percentage
// @Description Recounts DONE tasks and rewrites the denormalized percentage
// @Tags engagements
// @Produce  json
// @Param   id path string true "Engagement ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} map[string]string "Engagement not found"
// @Security BearerAuth
// @Router /engagements/{id}/refresh-progress [post]
func (h *engagementHandler) refreshProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	engagementID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	percentage, err := h.engagementService.RefreshProgress(c.Request.Context(), engagementID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Engagement not found"})
		} else {
			logger.Error("Failed to refresh progress", slog.String("engagement_id", engagementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh progress"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"completionPercentage": percentage})
}

// createPBCRequest godoc
// @Summary Raise a PBC request on an engagement
// @Tags pbc
// @Accept  json
// @Produce  json
// @Param   id path string true "Engagement ID"
// @Param   request body dto.CreatePBCRequest true "Request details"
// @Success 201 {object} dto.PBCRequestResponse
// @Security BearerAuth
// @Router /engagements/{id}/pbc-requests [post]
func (h *engagementHandler) createPBCRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePBCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPBCRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	// The path is authoritative for the engagement.
	req.EngagementID = c.Param("id")

	pbc, err := h.documentService.CreatePBCRequest(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create PBC request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PBC request"})
		}
		return
	}

	logger.Info("PBC request created", slog.String("request_id", pbc.RequestID))
	c.JSON(http.StatusCreated, dto.ToPBCRequestResponse(pbc))
}

// listPBCRequests godoc
// @Summary List an engagement's PBC requests
// @Tags pbc
// @Produce  json
// @Param   id path string true "Engagement ID"
// @Success 200 {array} dto.PBCRequestResponse
// @Security BearerAuth
// @Router /engagements/{id}/pbc-requests [get]
func (h *engagementHandler) listPBCRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	engagementID := c.Param("id")

	reqs, err := h.documentService.ListPBCRequests(c.Request.Context(), engagementID)
	if err != nil {
		logger.Error("Failed to list PBC requests", slog.String("engagement_id", engagementID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list PBC requests"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPBCRequestResponse(reqs))
}

// submitPBCRequest godoc
// @Summary Record the client's submission against a PBC request
// @Tags pbc
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   submission body dto.SubmitPBCRequest true "Storage key of the submitted file"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /pbc-requests/{requestID}/submit [post]
func (h *engagementHandler) submitPBCRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	var req dto.SubmitPBCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitPBCRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.documentService.SubmitPBCRequest(c.Request.Context(), requestID, req.AttachmentKey); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PBC request not found"})
		} else {
			logger.Error("Failed to submit PBC request", slog.String("request_id", requestID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit PBC request"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// resolvePBCRequest godoc
// @Summary Accept or reject a submitted PBC request
// @Tags pbc
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   resolution body dto.ResolvePBCRequest true "Whether the submission is accepted"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /pbc-requests/{requestID}/resolve [post]
func (h *engagementHandler) resolvePBCRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	var req dto.ResolvePBCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for resolvePBCRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.documentService.ResolvePBCRequest(c.Request.Context(), requestID, *req.Accepted); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PBC request not found"})
		} else {
			logger.Error("Failed to resolve PBC request", slog.String("request_id", requestID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve PBC request"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
