package router

import (
	"github.com/tweetboard/internal/config"
	"github.com/tweetboard/internal/constants"
	publichandlers "github.com/tweetboard/internal/http/handlers/public"
	handlershared "github.com/tweetboard/internal/http/handlers/shared"
	"github.com/tweetboard/internal/http/response"
	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	return SetupRouterWithLogger(cfg, c, logger.Z())
}

// SetupRouterWithLogger 使用指定的请求日志实例初始化路由
func SetupRouterWithLogger(cfg *config.Config, c *provider.Container, log *zap.Logger) *gin.Engine {
	r := gin.New()

	publicHandler := publichandlers.New(c)

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 推文接口
	r.GET("/tweet", publicHandler.ListTweets)
	r.POST("/tweet", publicHandler.PublishTweet)
	r.GET("/tweet/:id", publicHandler.GetTweet)
	r.GET("/discarded", publicHandler.ListDiscardedTweets)
	r.POST("/discarded", publicHandler.DiscardTweet)

	// 运维接口
	r.GET("/metrics", publicHandler.GetMetrics)
	r.GET("/healthz", publicHandler.Healthz)

	r.NoRoute(func(ctx *gin.Context) {
		handlershared.RespondError(ctx, response.CodeNotFound, constants.ErrorNameNotFound, "route not found", nil)
	})

	return r
}
