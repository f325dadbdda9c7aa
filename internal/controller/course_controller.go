package controller

import (
	"errors"
	"math"
	"strconv"

	"course_forge_backend/internal/repository"
	"course_forge_backend/internal/service"
	"course_forge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func mapCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrRankingNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidCategory),
		errors.Is(err, util.ErrModuleNotInCourse),
		errors.Is(err, util.ErrInvalidSections):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 创建课程并初始化配对的零值排名记录
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param request body service.UpdateCourseRequest true "更新字段"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.UpdateCourse(claims.UserID, ctx.Param("id"), req); err != nil {
		mapCourseError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Course updated successfully", nil)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 课程、排名、投票与模块在同一事务内删除
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(claims.UserID, ctx.Param("id")); err != nil {
		mapCourseError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Course deleted successfully", nil)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags courses
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("id"))
	if err != nil {
		mapCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetCourses godoc
// @Summary 公开课程列表
// @Description 支持分类/难度/关键词过滤，按最新或评分排序
// @Tags courses
// @Produce json
// @Param category query string false "分类"
// @Param difficulty query string false "难度" Enums(Beginner, Intermediate, Advanced)
// @Param search query string false "搜索词"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Param sortBy query string false "排序" Enums(createdAt, score)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	filter := repository.CourseFilter{
		Category:   ctx.Query("category"),
		Difficulty: ctx.Query("difficulty"),
		Search:     ctx.Query("search"),
		Page:       page,
		Limit:      limit,
		SortBy:     ctx.DefaultQuery("sortBy", repository.SortByCreatedAt),
	}

	courses, total, err := c.CourseService.GetCourses(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	util.Success(ctx, util.PageResponse{
		List:       courses,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	})
}

// ForkCourse godoc
// @Summary 分叉课程
// @Description 在新创建者名下复制课程元数据与全部模块，排名从零开始
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "源课程ID"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/courses/{id}/fork [post]
func (c *CourseController) ForkCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req struct {
		NewCourseID string `json:"newCourseId"`
	}
	// 请求体可省略，ID 省略时由服务端生成
	_ = ctx.ShouldBindJSON(&req)

	fork, err := c.CourseService.ForkCourse(claims.UserID, ctx.Param("id"), req.NewCourseID)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}

	util.Created(ctx, fork)
}

// GetMyCourses godoc
// @Summary 我创建的课程
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/my-courses [get]
func (c *CourseController) GetMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.GetUserCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetMyStats godoc
// @Summary 我的课程统计
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=repository.CreatorStats}
// @Router /api/my-courses/stats [get]
func (c *CourseController) GetMyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.CourseService.GetUserCourseStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetMyTopCourses godoc
// @Summary 我评分最高的课程
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/my-courses/top [get]
func (c *CourseController) GetMyTopCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	courses, err := c.CourseService.GetUserTopCourses(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetMyRecentActivity godoc
// @Summary 我最近更新的课程
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/my-courses/activity [get]
func (c *CourseController) GetMyRecentActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	courses, err := c.CourseService.GetUserRecentActivity(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
