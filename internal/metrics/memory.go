package metrics

import (
	"context"
	"sync"
)

// MemorySink 进程内计数器
type MemorySink struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMemorySink 创建进程内计数器
func NewMemorySink() *MemorySink {
	return &MemorySink{counters: make(map[string]int64)}
}

// Increment 累加计数
func (s *MemorySink) Increment(_ context.Context, name string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name] += amount
	return nil
}

// Get 读取单个计数
func (s *MemorySink) Get(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[name]
}

// Snapshot 返回计数副本
func (s *MemorySink) Snapshot(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counters))
	for name, value := range s.counters {
		out[name] = value
	}
	return out, nil
}
