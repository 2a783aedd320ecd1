package shared

import (
	"strconv"
	"strings"

	"github.com/tweetboard/internal/constants"
	"github.com/tweetboard/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 读取路径参数中的正整数 ID，并统一处理错误响应。
func ParseUintParam(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(key))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, constants.ErrorNameInvalidRequest, "invalid "+key, nil)
		return 0, false
	}
	return uint(value), true
}
