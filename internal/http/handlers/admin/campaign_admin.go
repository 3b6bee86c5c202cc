package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCampaignRequest 活动创建请求，日期使用 DD.MM.YYYY。
type CreateCampaignRequest struct {
	Name                     string       `json:"name" binding:"required"`
	Brief                    string       `json:"brief"`
	BrandingImage            string       `json:"brandingImage"`
	BrandCommissionRate      models.Money `json:"brandCampaignCommissionRate"`
	InfluencerCommissionRate models.Money `json:"influencerCommissionRate"`
	OtherCostsRate           models.Money `json:"otherCostsRate"`
	StartDate                string       `json:"startDate"`
	EndDate                  string       `json:"endDate"`
	CompanyID                uint         `json:"companyID"`
}

// CreateCampaign 创建本地推广活动
func (h *Handler) CreateCampaign(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}

	companyID := req.CompanyID
	if identity.Role == constants.RoleCompany {
		companyID = identity.CompanyID
	}

	input := service.CreateCampaignInput{
		Name:                     req.Name,
		Brief:                    req.Brief,
		BrandingImage:            req.BrandingImage,
		BrandCommissionRate:      req.BrandCommissionRate,
		InfluencerCommissionRate: req.InfluencerCommissionRate,
		OtherCostsRate:           req.OtherCostsRate,
		CompanyID:                companyID,
	}
	if raw := strings.TrimSpace(req.StartDate); raw != "" {
		start, err := time.Parse(constants.FilterDateLayout, raw)
		if err != nil {
			response.Fail(c, response.TypeDomainFailure, "Invalid StartDate")
			return
		}
		input.StartDate = &start
	}
	if raw := strings.TrimSpace(req.EndDate); raw != "" {
		end, err := time.Parse(constants.FilterDateLayout, raw)
		if err != nil {
			response.Fail(c, response.TypeDomainFailure, "Invalid EndDate")
			return
		}
		input.EndDate = &end
	}

	campaign, err := h.CampaignService.CreateCampaign(input)
	if err != nil {
		if errors.Is(err, service.ErrCompanyRequired) {
			response.BadRequest(c, "companyID is required")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to create campaign", err)
		return
	}
	response.Success(c, campaign)
}

// ImportCampaignsRequest 联盟平台活动导入请求
type ImportCampaignsRequest struct {
	Data      []service.ImportCampaignItem `json:"data" binding:"required"`
	CompanyID uint                         `json:"companyID"`
}

// ImportCampaigns 合并导入联盟平台活动数据。
// 整批在单事务内处理，任一条失败则全部回滚。
func (h *Handler) ImportCampaigns(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	var req ImportCampaignsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "data array is required")
		return
	}

	result, err := h.ImportService.ImportCampaigns(service.ImportCampaignsInput{
		Items:          req.Data,
		CompanyID:      req.CompanyID,
		ActorRole:      identity.Role,
		ActorCompanyID: identity.CompanyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, "Access denied")
		case errors.Is(err, service.ErrCompanyRequired):
			response.BadRequest(c, "companyID is required")
		case errors.Is(err, service.ErrImportPayload):
			response.BadRequest(c, "Invalid import payload")
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to import campaigns", err)
		}
		return
	}
	response.SuccessWithMsg(c,
		fmt.Sprintf("Imported/updated %d campaign(s).", result.Count),
		gin.H{"count": result.Count})
}
