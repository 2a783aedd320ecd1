package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tweetboard/internal/config"
	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/provider"

	"go.uber.org/zap"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      sync.Mutex
	stopped bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeService) wasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	first := &fakeService{name: "first", block: true}
	second := &fakeService{name: "second", block: true}
	runner := NewRunner(first, second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, time.Second, zap.NewNop().Sugar())
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled run must return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if !first.wasStopped() || !second.wasStopped() {
		t.Fatalf("all services must be stopped")
	}
}

func TestRunnerReturnsServiceError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &fakeService{name: "http", startErr: boom}
	blocking := &fakeService{name: "worker", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !blocking.wasStopped() {
		t.Fatalf("remaining services must be stopped")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
	if err := RunWithOptions(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil runner")
	}
}

func TestBuildRunnerModes(t *testing.T) {
	previous := logger.L
	logger.L = zap.NewNop()
	t.Cleanup(func() {
		logger.L = previous
	})

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Queue:  config.QueueConfig{Enabled: false},
	}
	container := &provider.Container{Config: cfg}

	runner, err := BuildRunner(cfg, container, ModeAPI)
	if err != nil {
		t.Fatalf("build api runner failed: %v", err)
	}
	if len(runner.services) != 1 || runner.services[0].Name() != "http" {
		t.Fatalf("api mode must only run http, got %d services", len(runner.services))
	}

	runner, err = BuildRunner(cfg, container, ModeAll)
	if err != nil {
		t.Fatalf("build all runner failed: %v", err)
	}
	if len(runner.services) != 1 {
		t.Fatalf("all mode with disabled queue must skip worker, got %d services", len(runner.services))
	}

	if _, err := BuildRunner(cfg, container, ModeWorker); err == nil {
		t.Fatalf("worker mode requires an enabled queue")
	}
	if _, err := BuildRunner(cfg, container, "cron"); err == nil {
		t.Fatalf("unknown mode must fail")
	}
	if _, err := BuildRunner(nil, container, ModeAPI); err == nil {
		t.Fatalf("nil config must fail")
	}
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{Config: &config.Config{Server: config.ServerConfig{ShutdownTimeoutSeconds: 3}}})
	if opts.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout want 3s got %v", opts.ShutdownTimeout)
	}
	if opts.Mode != ModeAll || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if normalizeOptions(Options{}).ShutdownTimeout != 10*time.Second {
		t.Fatalf("default shutdown timeout must be 10s")
	}
}

func TestHTTPServiceStartStop(t *testing.T) {
	svc := NewHTTPService("127.0.0.1:0", nil)
	done := make(chan error, 1)
	go func() {
		done <- svc.Start(context.Background())
	}()

	// 等待监听建立后再关闭
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start must return nil after shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("http service did not stop")
	}
}
