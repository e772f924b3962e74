package controller

import (
	"strconv"

	"learnlocal_backend/internal/service"
	"learnlocal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	ProgressService *service.ProgressService
}

func NewLearningController(progressService *service.ProgressService) *LearningController {
	return &LearningController{ProgressService: progressService}
}

// @Summary Record a lesson or quiz outcome
// @Description Upserts the lesson row and recomputes the module aggregate
// @Tags learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LessonOutcomeRequest true "outcome"
// @Success 200 {object} util.Response
// @Router /api/progress [post]
func (c *LearningController) RecordOutcome(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonOutcomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lp, err := c.ProgressService.RecordLessonOutcome(user.UserID, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, lp)
}

// @Summary Module progress for the current user
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/progress [get]
func (c *LearningController) GetModuleProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, ok := parseID(ctx)
	if !ok {
		return
	}

	view, err := c.ProgressService.GetModuleProgress(user.UserID, moduleID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Reset module progress
// @Description Removes the aggregate row and all lesson rows for the pair
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/progress [delete]
func (c *LearningController) ResetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, ok := parseID(ctx)
	if !ok {
		return
	}

	removed, err := c.ProgressService.Reset(user.UserID, moduleID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"rowsRemoved": removed})
}

// @Summary Whether the module is completed
// @Description Recomputed from counts, not the cached flag
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/completion [get]
func (c *LearningController) GetCompletion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, ok := parseID(ctx)
	if !ok {
		return
	}

	completed, err := c.ProgressService.IsModuleCompleted(user.UserID, moduleID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"completed": completed})
}

// @Summary Overall progress across all modules
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress/overview [get]
func (c *LearningController) GetOverview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProgressService.GetOverallProgress(user.UserID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}
