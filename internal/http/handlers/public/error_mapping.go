package public

import (
	"errors"

	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			switch rule.code {
			case response.TypeForbidden:
				response.Forbidden(c, rule.msg)
			case response.TypeUnauthorized:
				response.Unauthorized(c, rule.msg)
			default:
				response.Fail(c, rule.code, rule.msg)
			}
			return
		}
	}
	handlershared.RespondFail(c, fallbackCode, fallbackMsg, err)
}

var reportQueryErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidStartDate, code: response.TypeDomainFailure, msg: "Invalid StartDate"},
	{target: service.ErrInvalidEndDate, code: response.TypeDomainFailure, msg: "Invalid EndDate"},
	{target: service.ErrInfluencerNotFound, code: response.TypeDomainFailure, msg: "Influencer profile not found"},
	{target: service.ErrForbidden, code: response.TypeForbidden, msg: "Access denied"},
}

var reportCreateErrorRules = []mappedHandlerError{
	{target: service.ErrForbidden, code: response.TypeForbidden, msg: "Access denied"},
	{target: service.ErrInfluencerRequired, code: response.TypeBadRequest, msg: "Influencer id is required"},
	{target: service.ErrInfluencerNotFound, code: response.TypeDomainFailure, msg: "Influencer profile not found"},
	{target: service.ErrCampaignNotFound, code: response.TypeDomainFailure, msg: "Campaign not found"},
}

var campaignListErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidStartDate, code: response.TypeDomainFailure, msg: "Invalid StartDate"},
	{target: service.ErrInvalidEndDate, code: response.TypeDomainFailure, msg: "Invalid EndDate"},
	{target: service.ErrForbidden, code: response.TypeForbidden, msg: "Access denied"},
}
