// Package metrics 提供推文业务计数器的输出端。
package metrics

import (
	"context"
	"errors"
)

// ErrSinkUnavailable 输出端未就绪
var ErrSinkUnavailable = errors.New("metrics sink unavailable")

// Sink 计数器输出端
type Sink interface {
	Increment(ctx context.Context, name string, amount int64) error
}

// Reader 可读取计数快照的输出端
type Reader interface {
	Snapshot(ctx context.Context) (map[string]int64, error)
}
