package public

import (
	"github.com/tweetboard/internal/cache"
	"github.com/tweetboard/internal/constants"
	handlershared "github.com/tweetboard/internal/http/handlers/shared"
	"github.com/tweetboard/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMetrics 获取计数器快照
func (h *Handler) GetMetrics(c *gin.Context) {
	if h.MetricsReader == nil {
		respondError(c, response.CodeUnavailable, constants.ErrorNameUnavailable, "metrics are not readable", nil)
		return
	}
	snapshot, err := h.MetricsReader.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeUnavailable, constants.ErrorNameUnavailable, "metrics are not readable", err)
		return
	}
	response.Success(c, gin.H{
		"sink":     h.MetricsMode,
		"counters": snapshot,
	})
}

// Healthz 存活检查，Redis 异常只体现在返回数据里
func (h *Handler) Healthz(c *gin.Context) {
	redisState := "disabled"
	if cache.Enabled() {
		redisState = "ok"
		if err := cache.Ping(c.Request.Context()); err != nil {
			redisState = "down"
			handlershared.RequestLog(c).Warnw("healthz_redis_ping_failed", "error", err)
		}
	}
	response.Success(c, gin.H{"status": "ok", "redis": redisState})
}
