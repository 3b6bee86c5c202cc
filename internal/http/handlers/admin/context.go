package admin

import (
	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getIdentity(c *gin.Context) (handlershared.Identity, bool) {
	return handlershared.GetIdentity(c)
}
