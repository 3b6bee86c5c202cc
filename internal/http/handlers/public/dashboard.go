package public

import (
	"errors"

	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboard 工作台汇总与最近动态
func (h *Handler) GetDashboard(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	overview, err := h.DashboardService.Overview(identity.Role, identity.CompanyID, parseUintQuery(c, "companyId"))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Forbidden(c, "Access denied")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load dashboard", err)
		return
	}
	response.Success(c, overview)
}
