package shared

import (
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Identity 鉴权中间件写入上下文的调用方身份
type Identity struct {
	UserID    uint
	Role      string
	CompanyID uint
}

// GetIdentity 从上下文读取调用方身份并统一处理错误响应。
func GetIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := getContextUint(c, "user_id")
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return Identity{}, false
	}
	roleValue, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, "Not authenticated")
		return Identity{}, false
	}
	role, ok := roleValue.(string)
	if !ok || strings.TrimSpace(role) == "" {
		response.Unauthorized(c, "Not authenticated")
		return Identity{}, false
	}
	companyID, _ := getContextUint(c, "company_id")
	return Identity{UserID: userID, Role: role, CompanyID: companyID}, true
}

func getContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
