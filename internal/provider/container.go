package provider

import (
	"strings"

	"github.com/tweetboard/internal/cache"
	"github.com/tweetboard/internal/config"
	"github.com/tweetboard/internal/constants"
	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/metrics"
	"github.com/tweetboard/internal/models"
	"github.com/tweetboard/internal/queue"
	"github.com/tweetboard/internal/repository"
	"github.com/tweetboard/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	TweetRepo repository.TweetRepository

	// Metrics
	// MetricsStore 实际保存计数的存储，worker 消费任务时写入这里
	MetricsStore metrics.Sink
	// MetricsSink 业务服务使用的计数入口，queue 模式下为 QueueSink
	MetricsSink   metrics.Sink
	MetricsReader metrics.Reader
	MetricsMode   string

	// Services
	TweetService *service.TweetService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时返回禁用状态的客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化计数器
	c.initMetrics()

	// 3. 初始化 Services
	c.initServices()

	return c
}

// Close 释放队列与缓存连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.TweetRepo = repository.NewTweetRepository(db)
}

func (c *Container) initMetrics() {
	mode := strings.ToLower(strings.TrimSpace(c.Config.Metrics.Sink))

	var store metrics.Sink
	switch mode {
	case constants.MetricsSinkMemory:
		store = metrics.NewMemorySink()
	case constants.MetricsSinkRedis, constants.MetricsSinkQueue:
		if cache.Enabled() {
			store = metrics.NewRedisSink(cache.Client(), cache.Prefix())
		} else {
			// worker 与 api 分进程部署时内存计数无法共享，queue 模式同样退回进程内直写
			logger.Warnw("provider_metrics_redis_disabled", "sink", mode, "fallback", constants.MetricsSinkMemory)
			mode = constants.MetricsSinkMemory
			store = metrics.NewMemorySink()
		}
	default:
		logger.Warnw("provider_metrics_sink_unknown", "sink", mode, "fallback", constants.MetricsSinkMemory)
		mode = constants.MetricsSinkMemory
		store = metrics.NewMemorySink()
	}

	c.MetricsMode = mode
	c.MetricsStore = store
	c.MetricsSink = store
	if mode == constants.MetricsSinkQueue {
		if !c.QueueClient.Enabled() {
			logger.Warnw("provider_metrics_queue_disabled", "fallback", "direct")
		}
		c.MetricsSink = metrics.NewQueueSink(c.QueueClient, store)
	}
	if reader, ok := store.(metrics.Reader); ok {
		c.MetricsReader = reader
	}
}

func (c *Container) initServices() {
	c.TweetService = service.NewTweetService(c.TweetRepo, c.MetricsSink)
}
