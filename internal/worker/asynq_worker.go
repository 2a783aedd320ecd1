package worker

import (
	"context"
	"errors"

	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/provider"
	"github.com/tweetboard/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMetricIncrement, c.handleMetricIncrement)
}

func (c *Consumer) handleMetricIncrement(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_metric_increment_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseMetricIncrementPayload(task.Payload())
	if err != nil {
		logger.Debugw("worker_metric_increment_skip_invalid_payload", "error", err)
		return nil
	}
	if c.MetricsStore == nil {
		logger.Warnw("worker_metric_increment_skip_store_nil", "metric", payload.Name)
		return nil
	}
	if err := c.MetricsStore.Increment(ctx, payload.Name, payload.Amount); err != nil {
		logger.Warnw("worker_metric_increment_failed",
			"metric", payload.Name,
			"amount", payload.Amount,
			"error", err,
		)
		return err
	}
	return nil
}

// snapshotMetrics 读取并记录当前计数
func (c *Consumer) snapshotMetrics(ctx context.Context) (map[string]int64, error) {
	if c == nil || c.Container == nil || c.MetricsReader == nil {
		return nil, errors.New("metrics reader not configured")
	}
	snapshot, err := c.MetricsReader.Snapshot(ctx)
	if err != nil {
		logger.Warnw("worker_metrics_snapshot_failed", "error", err)
		return nil, err
	}
	kv := make([]interface{}, 0, len(snapshot)*2)
	for name, value := range snapshot {
		kv = append(kv, name, value)
	}
	logger.Infow("worker_metrics_snapshot", kv...)
	return snapshot, nil
}
