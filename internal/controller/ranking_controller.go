package controller

import (
	"strconv"

	"course_forge_backend/internal/service"
	"course_forge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

type VoteRequest struct {
	IsUpvote *bool `json:"isUpvote" binding:"required"`
}

// Vote godoc
// @Summary 给课程投票
// @Description 同方向重复投票视为撤销，反方向投票视为改票
// @Tags ranking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param request body VoteRequest true "投票方向"
// @Success 200 {object} util.Response{data=model.CourseRanking}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/vote [post]
func (c *RankingController) Vote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ranking, err := c.RankingService.Vote(claims.UserID, ctx.Param("id"), *req.IsUpvote)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "Course ranking updated successfully", ranking)
}

// TopCourses godoc
// @Summary 评分最高的公开课程
// @Tags ranking
// @Produce json
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/top [get]
func (c *RankingController) TopCourses(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	courses, err := c.RankingService.TopCourses(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
