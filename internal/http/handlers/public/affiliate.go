package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateLinkRequest 跟踪链接签发请求
type GenerateLinkRequest struct {
	InfluencerID   string `json:"influencerID" binding:"required"`
	InfluencerName string `json:"influencerName"`
	CampaignID     uint   `json:"campaignID" binding:"required"`
}

// GenerateLink 为达人在指定活动下签发（或复用）跟踪链接
func (h *Handler) GenerateLink(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	var req GenerateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "influencerID and campaignID are required")
		return
	}

	result, err := h.LinkService.GenerateLink(service.GenerateLinkInput{
		InfluencerID:   req.InfluencerID,
		InfluencerName: req.InfluencerName,
		CampaignID:     req.CampaignID,
		ActorRole:      identity.Role,
		ActorCompanyID: identity.CompanyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.Fail(c, response.TypeDomainFailure, "Campaign not found")
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, "Access denied")
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to generate link", err)
		}
		return
	}

	if result.Existing {
		response.SuccessWithMsg(c, "Tracking link already exists.", result)
		return
	}
	response.Success(c, result)
}

// TrackClick 解析跟踪令牌并归因一次点击
func (h *Handler) TrackClick(c *gin.Context) {
	token := c.Param("token")

	result, err := h.LinkService.TrackClick(token, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			response.NotFound(c, "Link not found")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to track click", err)
		return
	}
	response.Success(c, result)
}

// CreateReportRequest 结算报表创建请求
type CreateReportRequest struct {
	InfluencerID uint `json:"influencerID"`
	CampaignID   uint `json:"campaignID" binding:"required"`

	TotalClicks int64 `json:"totalClicks"`
	TotalSales  int64 `json:"totalSales"`

	BrandCommissionRate        models.Money `json:"brandCommissionRate"`
	BrandCommissionAmount      models.Money `json:"brandCommissionAmount"`
	InfluencerCommissionRate   models.Money `json:"influencerCommissionRate"`
	InfluencerCommissionAmount models.Money `json:"influencerCommissionAmount"`
	OtherCostsRate             models.Money `json:"otherCostsRate"`
	MimedaCommissionRate       models.Money `json:"mimedaCommissionRate"`
	MimedaCommissionAmount     models.Money `json:"mimedaCommissionAmount"`
	AgencyCommissionRate       models.Money `json:"agencyCommissionRate"`
	AgencyCommissionAmount     models.Money `json:"agencyCommissionAmount"`
}

// CreateReport 创建结算报表。达人只能为自己报账。
func (h *Handler) CreateReport(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "campaignID is required")
		return
	}

	report, err := h.ReportService.CreateReport(service.CreateReportInput{
		InfluencerID:               req.InfluencerID,
		CampaignID:                 req.CampaignID,
		TotalClicks:                req.TotalClicks,
		TotalSales:                 req.TotalSales,
		BrandCommissionRate:        req.BrandCommissionRate,
		BrandCommissionAmount:      req.BrandCommissionAmount,
		InfluencerCommissionRate:   req.InfluencerCommissionRate,
		InfluencerCommissionAmount: req.InfluencerCommissionAmount,
		OtherCostsRate:             req.OtherCostsRate,
		MimedaCommissionRate:       req.MimedaCommissionRate,
		MimedaCommissionAmount:     req.MimedaCommissionAmount,
		AgencyCommissionRate:       req.AgencyCommissionRate,
		AgencyCommissionAmount:     req.AgencyCommissionAmount,
		ActorRole:                  identity.Role,
		ActorUserID:                identity.UserID,
	})
	if err != nil {
		respondWithMappedError(c, err, reportCreateErrorRules, response.TypeInternal, "Failed to create report")
		return
	}
	response.Success(c, report)
}

// GetReports 查询结算报表，附带命中集汇总字段。
func (h *Handler) GetReports(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	companyID := parseUintQuery(c, "companyId")
	result, err := h.ReportService.GetReports(service.ReportQueryInput{
		InfluencerID:   c.Query("influencerId"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
		CompanyID:      companyID,
		ActorRole:      identity.Role,
		ActorUserID:    identity.UserID,
		ActorCompanyID: identity.CompanyID,
	})
	if err != nil {
		respondWithMappedError(c, err, reportQueryErrorRules, response.TypeInternal, "Failed to load reports")
		return
	}

	// 汇总字段与列表同级返回，而不是嵌在 data 里。
	c.JSON(200, gin.H{
		"data":                      result.Reports,
		"isSuccess":                 true,
		"message":                   "",
		"type":                      response.TypeOK,
		"activeInfluencers":         result.ActiveInfluencers,
		"totalInfluencerCommission": result.TotalInfluencerCommission,
	})
}

// GetCampaigns 按角色作用域查询活动列表
func (h *Handler) GetCampaigns(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	page, pageSize := handlershared.NormalizePagination(
		int(parseUintQuery(c, "page")), int(parseUintQuery(c, "pageSize")))

	campaigns, total, err := h.CampaignService.ListCampaigns(service.CampaignQueryInput{
		Keyword:        c.Query("name"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
		Page:           page,
		PageSize:       pageSize,
		ActorRole:      identity.Role,
		ActorCompanyID: identity.CompanyID,
		CompanyID:      parseUintQuery(c, "companyId"),
	})
	if err != nil {
		respondWithMappedError(c, err, campaignListErrorRules, response.TypeInternal, "Failed to load campaigns")
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, campaigns, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetCampaign 查询单个活动
func (h *Handler) GetCampaign(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid campaign id")
		return
	}

	campaign, err := h.CampaignService.GetCampaign(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.Fail(c, response.TypeDomainFailure, "Campaign not found")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load campaign", err)
		return
	}

	// 公司只能查看自己的活动
	if identity.Role == constants.RoleCompany && (campaign.CompanyID == nil || *campaign.CompanyID != identity.CompanyID) {
		response.Forbidden(c, "Access denied")
		return
	}
	response.Success(c, campaign)
}

// ListInfluencers 查询达人列表，可按活动过滤。
func (h *Handler) ListInfluencers(c *gin.Context) {
	if _, ok := getIdentity(c); !ok {
		return
	}

	page, pageSize := handlershared.NormalizePagination(
		int(parseUintQuery(c, "page")), int(parseUintQuery(c, "pageSize")))

	influencers, total, err := h.InfluencerService.ListInfluencers(repository.InfluencerListFilter{
		Keyword:    c.Query("name"),
		CampaignID: parseUintQuery(c, "campaignId"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load influencers", err)
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, influencers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

func parseUintQuery(c *gin.Context, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}
