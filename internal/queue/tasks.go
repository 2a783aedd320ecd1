package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/tweetboard/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskMetricIncrement 计数器累加任务
	TaskMetricIncrement = constants.TaskMetricsIncrement
)

// ErrInvalidPayload 任务载荷不合法
var ErrInvalidPayload = errors.New("invalid task payload")

// MetricIncrementPayload 计数器累加任务载荷
type MetricIncrementPayload struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Validate 校验计数器名称与增量
func (p MetricIncrementPayload) Validate() error {
	if !slices.Contains(constants.MetricNames, p.Name) {
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidPayload, p.Name)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidPayload, p.Amount)
	}
	return nil
}

// NewMetricIncrementTask 创建计数器累加任务
func NewMetricIncrementTask(payload MetricIncrementPayload) (*asynq.Task, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMetricIncrement, body), nil
}

// ParseMetricIncrementPayload 解析并校验任务载荷
func ParseMetricIncrementPayload(body []byte) (MetricIncrementPayload, error) {
	var payload MetricIncrementPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err := payload.Validate(); err != nil {
		return payload, err
	}
	return payload, nil
}
