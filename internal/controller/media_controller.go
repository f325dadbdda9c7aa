package controller

import (
	"course_forge_backend/internal/service"
	"course_forge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// UploadMedia godoc
// @Summary 上传模块媒体或课程背景图
// @Description 接受图片/视频/PDF；视频会探测元数据并生成缩略图
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "媒体文件"
// @Success 201 {object} util.Response{data=service.MediaUploadResult}
// @Failure 400 {object} util.Response
// @Router /api/media/upload [post]
func (c *MediaController) UploadMedia(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	result, err := c.MediaService.UploadMedia(ctx.Request.Context(), file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, result)
}
