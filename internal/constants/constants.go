package constants

// 推文长度限制（去除链接后的字符数必须严格小于该值）
const (
	TweetMaxLength = 140
)

// 指标计数器名称
const (
	MetricTweetsPublished = "published"
	MetricTweetsDiscarded = "discarded"
	MetricTweetsQueried   = "queried"
)

// MetricNames 全部已知计数器，按固定顺序输出
var MetricNames = []string{MetricTweetsPublished, MetricTweetsDiscarded, MetricTweetsQueried}

// 指标输出方式常量
const (
	MetricsSinkMemory = "memory"
	MetricsSinkRedis  = "redis"
	MetricsSinkQueue  = "queue"
)

// 接口错误名称常量
const (
	ErrorNameEmptyPublisher   = "EmptyPublisher"
	ErrorNameEmptyText        = "EmptyText"
	ErrorNameTooLong          = "TooLong"
	ErrorNameNotFound         = "NotFound"
	ErrorNameAlreadyDiscarded = "AlreadyDiscarded"
	ErrorNameInvalidRequest   = "InvalidRequest"
	ErrorNameStorageFailure   = "StorageFailure"
	ErrorNameUnavailable      = "Unavailable"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskMetricsIncrement   = "metrics:increment"
	MetricsSnapshotCronDef = "@every 1m"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "tb"
)
