package service

import (
	"context"
	"fmt"

	"course_forge_backend/internal/config"
	"course_forge_backend/internal/util"

	"github.com/go-resty/resty/v2"
)

// MarketplaceService reaches the on-chain course marketplace and certificate
// contracts through a relayer gateway that holds the signing keys. The
// contracts are opaque capability providers here: this service only forwards
// their published operations and returns the gateway's receipt. No chain
// state is modeled or cached.
type MarketplaceService struct {
	client  *resty.Client
	enabled bool
}

func NewMarketplaceService(cfg *config.MarketplaceConfig) *MarketplaceService {
	if cfg.GatewayURL == "" {
		return &MarketplaceService{enabled: false}
	}

	client := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("X-API-Key", cfg.APIKey)
	}
	return &MarketplaceService{client: client, enabled: true}
}

func (s *MarketplaceService) Enabled() bool {
	return s.enabled
}

// TxReceipt 网关返回的交易回执
type TxReceipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TxHash  string `json:"txHash,omitempty"`
}

type ListCourseRequest struct {
	CourseName string `json:"courseName" binding:"required"`
	Price      string `json:"price" binding:"required"` // wei, 十进制字符串
	Category   uint8  `json:"category"`
	Level      uint8  `json:"level"`
}

type PurchaseRequest struct {
	OnChainCourseID uint64 `json:"courseId" binding:"required"`
	Owner           string `json:"owner" binding:"required"`
}

type CertificateRequest struct {
	To          string `json:"to" binding:"required"`
	CourseName  string `json:"courseName" binding:"required"`
	MetadataURI string `json:"metadataUri"`
}

func (s *MarketplaceService) post(ctx context.Context, path string, body interface{}) (*TxReceipt, error) {
	if !s.enabled {
		return nil, util.ErrMarketplaceDisabled
	}

	var receipt TxReceipt
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&receipt).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("marketplace gateway: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("marketplace gateway: %s", resp.Status())
	}
	return &receipt, nil
}

// ListCourse 调用合约 createCourse 上架课程
func (s *MarketplaceService) ListCourse(ctx context.Context, req ListCourseRequest) (*TxReceipt, error) {
	return s.post(ctx, "/contract/course/create", req)
}

// PurchaseCourse 调用合约 buyCourse
func (s *MarketplaceService) PurchaseCourse(ctx context.Context, req PurchaseRequest) (*TxReceipt, error) {
	return s.post(ctx, "/contract/course/buy", req)
}

// Withdraw 创建者提取售课收入
func (s *MarketplaceService) Withdraw(ctx context.Context, owner string) (*TxReceipt, error) {
	return s.post(ctx, "/contract/course/withdraw", map[string]string{"owner": owner})
}

// IssueCertificate 铸造课程完成证书 NFT
func (s *MarketplaceService) IssueCertificate(ctx context.Context, req CertificateRequest) (*TxReceipt, error) {
	return s.post(ctx, "/contract/certificate/issue", req)
}

// OnChainCourse 合约里登记的课程条目
type OnChainCourse struct {
	CourseID   uint64 `json:"courseId"`
	CourseName string `json:"courseName"`
	Creator    string `json:"creator"`
	Price      string `json:"price"`
	Category   uint8  `json:"category"`
	Level      uint8  `json:"level"`
	Active     bool   `json:"active"`
}

// GetCourse 调用合约 getCourseByCourseId 读取上架条目
func (s *MarketplaceService) GetCourse(ctx context.Context, onChainID uint64) (*OnChainCourse, error) {
	if !s.enabled {
		return nil, util.ErrMarketplaceDisabled
	}

	var course OnChainCourse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&course).
		Get(fmt.Sprintf("/contract/course/%d", onChainID))
	if err != nil {
		return nil, fmt.Errorf("marketplace gateway: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("marketplace gateway: %s", resp.Status())
	}
	return &course, nil
}
