package controller

import (
	"course_forge_backend/internal/service"
	"course_forge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// CreateModule godoc
// @Summary 创建模块
// @Description 接受扁平文本或结构化块数组；块数组会先校验再序列化为正文
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CreateModuleRequest true "模块内容"
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 400 {object} util.Response
// @Router /api/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.CreateModule(claims.UserID, req)
	if err != nil {
		mapModuleError(ctx, err)
		return
	}

	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary 更新模块
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param request body service.UpdateModuleRequest true "模块内容"
// @Success 200 {object} util.Response{data=model.Module}
// @Router /api/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.UpdateModule(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		mapModuleError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Module updated successfully", module)
}

// DeleteModule godoc
// @Summary 删除模块
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ModuleService.DeleteModule(claims.UserID, ctx.Param("id")); err != nil {
		mapModuleError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Module deleted successfully", nil)
}

// GetModule godoc
// @Summary 模块详情
// @Tags modules
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	module, err := c.ModuleService.GetModule(ctx.Param("id"))
	if err != nil {
		mapModuleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// GetCourseModules godoc
// @Summary 课程的模块列表（按排序位升序）
// @Tags modules
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Router /api/courses/{id}/modules [get]
func (c *ModuleController) GetCourseModules(ctx *gin.Context) {
	modules, err := c.ModuleService.GetModulesByCourseID(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// ReorderModules godoc
// @Summary 批量重排模块
// @Description 所有排序位在同一事务内生效，任一失败则整体回滚
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param request body []service.ModuleOrder true "模块与新排序位"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/modules/reorder [put]
func (c *ModuleController) ReorderModules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var orders []service.ModuleOrder
	if err := ctx.ShouldBindJSON(&orders); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ModuleService.ReorderModules(claims.UserID, ctx.Param("id"), orders); err != nil {
		mapModuleError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Modules reordered successfully", nil)
}

// DuplicateModule godoc
// @Summary 复制模块
// @Description 名称加 " (Copy)" 后缀，排在课程现有最大排序位之后
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Success 201 {object} util.Response{data=model.Module}
// @Router /api/modules/{id}/duplicate [post]
func (c *ModuleController) DuplicateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	module, err := c.ModuleService.DuplicateModule(claims.UserID, ctx.Param("id"))
	if err != nil {
		mapModuleError(ctx, err)
		return
	}

	util.Created(ctx, module)
}

func mapModuleError(ctx *gin.Context, err error) {
	// 模块相关错误与课程共用同一映射
	mapCourseError(ctx, err)
}
