package controller

import (
	"strconv"

	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/service"
	"learnlocal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary List modules
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/modules [get]
func (c *ContentController) ListModules(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	summaries, total, err := c.ContentService.ListModules(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  summaries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Full module with content document
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ContentController) GetModule(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	module, err := c.ContentService.GetModule(id)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, module)
}

type CreateModuleRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Difficulty  string              `json:"difficulty"`
	Tags        model.Tags          `json:"tags"`
	Version     string              `json:"version"`
	Content     model.ModuleContent `json:"content"`
}

// @Summary Create a module
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateModuleRequest true "module"
// @Success 201 {object} util.Response
// @Router /api/admin/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	var req CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module := &model.Module{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
		Version:     req.Version,
		Content:     req.Content,
	}

	if err := c.ContentService.CreateModule(module); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, module)
}

// @Summary Update a module
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Param body body service.ModuleUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.ModuleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.UpdateModule(id, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, module)
}

// @Summary Delete a module and all dependent data
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.ContentService.DeleteModule(id); err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
