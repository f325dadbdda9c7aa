package controller

import (
	"errors"
	"net/http"
	"strconv"

	"course_forge_backend/internal/service"
	"course_forge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MarketplaceController 将链上市场与证书操作透传给网关
type MarketplaceController struct {
	Marketplace *service.MarketplaceService
}

func NewMarketplaceController(marketplace *service.MarketplaceService) *MarketplaceController {
	return &MarketplaceController{Marketplace: marketplace}
}

func (c *MarketplaceController) mapError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrMarketplaceDisabled) {
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		return
	}
	util.Error(ctx, http.StatusBadGateway, err.Error())
}

// ListCourse godoc
// @Summary 上架课程到链上市场
// @Tags marketplace
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ListCourseRequest true "上架参数"
// @Success 200 {object} util.Response{data=service.TxReceipt}
// @Failure 503 {object} util.Response
// @Router /api/marketplace/courses [post]
func (c *MarketplaceController) ListCourse(ctx *gin.Context) {
	var req service.ListCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	receipt, err := c.Marketplace.ListCourse(ctx.Request.Context(), req)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, receipt)
}

// PurchaseCourse godoc
// @Summary 购买链上课程
// @Tags marketplace
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.PurchaseRequest true "购买参数"
// @Success 200 {object} util.Response{data=service.TxReceipt}
// @Router /api/marketplace/purchase [post]
func (c *MarketplaceController) PurchaseCourse(ctx *gin.Context) {
	var req service.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	receipt, err := c.Marketplace.PurchaseCourse(ctx.Request.Context(), req)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, receipt)
}

// Withdraw godoc
// @Summary 提取售课收入
// @Tags marketplace
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TxReceipt}
// @Router /api/marketplace/withdraw [post]
func (c *MarketplaceController) Withdraw(ctx *gin.Context) {
	var req struct {
		Owner string `json:"owner" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	receipt, err := c.Marketplace.Withdraw(ctx.Request.Context(), req.Owner)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, receipt)
}

// GetCourse godoc
// @Summary 查询链上课程条目
// @Tags marketplace
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "链上课程ID"
// @Success 200 {object} util.Response{data=service.OnChainCourse}
// @Router /api/marketplace/courses/{id} [get]
func (c *MarketplaceController) GetCourse(ctx *gin.Context) {
	onChainID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid on-chain course id")
		return
	}

	course, err := c.Marketplace.GetCourse(ctx.Request.Context(), onChainID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// IssueCertificate godoc
// @Summary 颁发课程完成证书 NFT
// @Tags marketplace
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CertificateRequest true "证书参数"
// @Success 200 {object} util.Response{data=service.TxReceipt}
// @Router /api/marketplace/certificates [post]
func (c *MarketplaceController) IssueCertificate(ctx *gin.Context) {
	var req service.CertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	receipt, err := c.Marketplace.IssueCertificate(ctx.Request.Context(), req)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, receipt)
}
