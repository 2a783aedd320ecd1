package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tweetboard/internal/config"
	"github.com/tweetboard/internal/constants"
	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/queue"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

const (
	snapshotTimeout = 5 * time.Second
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	cron     *cron.Cron
}

// NewService 创建异步队列服务，snapshotSpec 为空时使用默认周期
func NewService(cfg *config.QueueConfig, consumer *Consumer, snapshotSpec string) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	scheduler, err := newSnapshotScheduler(consumer, snapshotSpec)
	if err != nil {
		return nil, err
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = logger.S()
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		cron:     scheduler,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.cron != nil {
		s.cron.Start()
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if s.cron != nil {
		select {
		case <-s.cron.Stop().Done():
		case <-ctx.Done():
			logger.Warnw("worker_cron_stop_timeout", "error", ctx.Err())
		}
	}
	s.server.Shutdown()
	return nil
}

// newSnapshotScheduler 注册定时打印计数快照的任务
func newSnapshotScheduler(consumer *Consumer, spec string) (*cron.Cron, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = constants.MetricsSnapshotCronDef
	}
	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		_, _ = consumer.snapshotMetrics(ctx)
	})
	if err != nil {
		return nil, err
	}
	return scheduler, nil
}
