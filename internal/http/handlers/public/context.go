package public

import (
	handlershared "github.com/tweetboard/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getTweetIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}
