package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/tweetboard/internal/config"
	"github.com/tweetboard/internal/constants"
)

func TestNewMetricIncrementTask(t *testing.T) {
	task, err := NewMetricIncrementTask(MetricIncrementPayload{Name: constants.MetricTweetsPublished, Amount: 1})
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	if task.Type() != TaskMetricIncrement {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseMetricIncrementPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.Name != constants.MetricTweetsPublished || payload.Amount != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestMetricIncrementPayloadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "broken json", body: "{"},
		{name: "unknown metric", body: `{"name":"likes","amount":1}`},
		{name: "zero amount", body: `{"name":"published","amount":0}`},
		{name: "negative amount", body: `{"name":"queried","amount":-2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseMetricIncrementPayload([]byte(tc.body)); !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
	if _, err := NewMetricIncrementTask(MetricIncrementPayload{Name: "likes", Amount: 1}); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected invalid task to be rejected, got %v", err)
	}
}

func TestDisabledClient(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client must be disabled")
	}
	if err := client.EnqueueMetricIncrement(context.Background(), constants.MetricTweetsQueried, 1); err != nil {
		t.Fatalf("enqueue on disabled client must be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client must not be enabled")
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected default addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected default server config: %+v", cfg)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{
		Host:        " redis.local ",
		Port:        6380,
		DB:          2,
		Concurrency: 4,
		Queues:      map[string]int{"default": 3},
	})
	if opt.Addr != "redis.local:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 4 || cfg.Queues["default"] != 3 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
