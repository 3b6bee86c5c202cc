package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应结构
type Envelope struct {
	Data      interface{} `json:"data"`      // 数据内容
	IsSuccess bool        `json:"isSuccess"` // 是否成功
	Message   string      `json:"message"`   // 提示消息
	Type      int         `json:"type"`      // 业务状态分类，0 为成功
}

// PageEnvelope 分页响应结构
type PageEnvelope struct {
	Data       interface{} `json:"data"`
	IsSuccess  bool        `json:"isSuccess"`
	Message    string      `json:"message"`
	Type       int         `json:"type"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, "", data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Data:      data,
		IsSuccess: true,
		Message:   message,
		Type:      TypeOK,
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageEnvelope{
		Data:       data,
		IsSuccess:  true,
		Message:    "",
		Type:       TypeOK,
		Pagination: pagination,
	})
}

// Fail 业务失败响应，HTTP 状态保持 200。
func Fail(c *gin.Context, failType int, message string) {
	FailWithData(c, failType, message, nil)
}

// FailWithData 业务失败响应（带数据）
// 业务失败的 data 保持调用方给定的值（通常为 null），请求 ID 走响应头。
func FailWithData(c *gin.Context, failType int, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Data:      data,
		IsSuccess: false,
		Message:   message,
		Type:      failType,
	})
}

// NotFound 资源不存在
func NotFound(c *gin.Context, message string) {
	Fail(c, TypeNotFound, message)
}

// Unauthorized 未认证，HTTP 401。
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Envelope{
		Data:      attachRequestID(c, nil),
		IsSuccess: false,
		Message:   message,
		Type:      TypeUnauthorized,
	})
}

// Forbidden 权限不足，HTTP 403。
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Envelope{
		Data:      attachRequestID(c, nil),
		IsSuccess: false,
		Message:   message,
		Type:      TypeForbidden,
	})
}

// BadRequest 请求参数错误
func BadRequest(c *gin.Context, message string) {
	Fail(c, TypeBadRequest, message)
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := data.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{
			"request_id": requestID,
			"data":       data,
		}
	}
}
