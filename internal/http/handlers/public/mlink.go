package public

import (
	"net/http"
	"strconv"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/mlink"

	"github.com/gin-gonic/gin"
)

// MLinkGetCampaigns 透传联盟平台活动列表
func (h *Handler) MLinkGetCampaigns(c *gin.Context) {
	if _, ok := getIdentity(c); !ok {
		return
	}
	if !h.MLinkClient.Enabled() {
		response.Fail(c, response.TypeUpstream, "Partner integration is disabled")
		return
	}

	env, err := h.MLinkClient.GetCampaigns(c.Request.Context(), flattenQuery(c))
	if err != nil {
		handlershared.RespondFail(c, response.TypeUpstream, "Partner request failed", err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// MLinkGetReport 透传联盟平台结算报表
func (h *Handler) MLinkGetReport(c *gin.Context) {
	if _, ok := getIdentity(c); !ok {
		return
	}
	if !h.MLinkClient.Enabled() {
		response.Fail(c, response.TypeUpstream, "Partner integration is disabled")
		return
	}

	env, err := h.MLinkClient.GetReport(c.Request.Context(), flattenQuery(c))
	if err != nil {
		handlershared.RespondFail(c, response.TypeUpstream, "Partner request failed", err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// MLinkGenerateLinkRequest 联盟平台链接签发请求
type MLinkGenerateLinkRequest struct {
	InfluencerID   string `json:"influencerID"`
	InfluencerName string `json:"influencerName"`
	CampaignID     uint   `json:"campaignID" binding:"required"`
}

// MLinkGenerateLink 透传联盟平台链接签发。
// 达人调用时身份信息强制取自其档案，不接受请求体里的取值。
func (h *Handler) MLinkGenerateLink(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	if !h.MLinkClient.Enabled() {
		response.Fail(c, response.TypeUpstream, "Partner integration is disabled")
		return
	}

	var req MLinkGenerateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "campaignID is required")
		return
	}

	if identity.Role == constants.RoleInfluencer {
		influencer, err := h.InfluencerRepo.GetByUserID(identity.UserID)
		if err != nil {
			handlershared.RespondFail(c, response.TypeInternal, "Failed to load influencer profile", err)
			return
		}
		if influencer == nil {
			response.Fail(c, response.TypeDomainFailure, "Influencer profile not found")
			return
		}
		if influencer.MLinkID != nil && *influencer.MLinkID != "" {
			req.InfluencerID = *influencer.MLinkID
		} else {
			req.InfluencerID = strconv.FormatUint(uint64(influencer.ID), 10)
		}
		req.InfluencerName = influencer.DisplayName
	}

	env, err := h.MLinkClient.GenerateLink(c.Request.Context(), mlink.GenerateLinkRequest{
		InfluencerID:   req.InfluencerID,
		InfluencerName: req.InfluencerName,
		CampaignID:     req.CampaignID,
	})
	if err != nil {
		handlershared.RespondFail(c, response.TypeUpstream, "Partner request failed", err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func flattenQuery(c *gin.Context) map[string]string {
	params := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
