package shared

import (
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondFail 返回业务失败响应，并在有原始错误时记录日志。
func RespondFail(c *gin.Context, failType int, msg string, err error) {
	appErr := response.WrapError(failType, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"type", appErr.Type,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Fail(c, appErr.Type, appErr.Message)
}
