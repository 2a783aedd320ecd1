package service

import (
	"context"
	"errors"
	"time"

	"github.com/tweetboard/internal/constants"
	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/metrics"
	"github.com/tweetboard/internal/models"
	"github.com/tweetboard/internal/repository"
)

// TweetService 推文业务服务
type TweetService struct {
	repo repository.TweetRepository
	sink metrics.Sink
	now  func() time.Time
}

// NewTweetService 创建推文服务
func NewTweetService(repo repository.TweetRepository, sink metrics.Sink) *TweetService {
	return &TweetService{
		repo: repo,
		sink: sink,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Publish 校验并发布推文，返回已持久化的推文
func (s *TweetService) Publish(ctx context.Context, publisher, text string) (*models.Tweet, error) {
	if err := ValidateTweet(publisher, text); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{
		Publisher:   publisher,
		Text:        text,
		Discarded:   false,
		PublishedAt: s.now(),
	}
	if err := s.repo.Create(tweet); err != nil {
		return nil, wrapStorageError("create tweet", err)
	}

	s.increment(ctx, constants.MetricTweetsPublished)
	logger.Debugw("tweet_published", "tweet_id", tweet.ID, "publisher", tweet.Publisher)
	return tweet, nil
}

// Discard 撤回推文，每条推文只能撤回一次
func (s *TweetService) Discard(ctx context.Context, id uint) error {
	tweet, err := s.repo.GetByID(id)
	if err != nil {
		return wrapStorageError("get tweet", err)
	}
	if tweet == nil {
		return ErrTweetNotFound
	}
	if !tweet.IsActive() {
		return ErrTweetAlreadyDiscarded
	}

	discardedAt := s.now()
	tweet.Discarded = true
	tweet.DiscardedAt = &discardedAt
	if err := s.repo.Update(tweet); err != nil {
		if errors.Is(err, repository.ErrTweetStateConflict) {
			return ErrTweetAlreadyDiscarded
		}
		return wrapStorageError("update tweet", err)
	}

	s.increment(ctx, constants.MetricTweetsDiscarded)
	logger.Debugw("tweet_discarded", "tweet_id", tweet.ID)
	return nil
}

// ListActive 获取未撤回推文，按发布时间倒序
func (s *TweetService) ListActive(ctx context.Context) ([]models.Tweet, error) {
	tweets, err := s.repo.ListActive()
	if err != nil {
		return nil, wrapStorageError("list active tweets", err)
	}
	s.increment(ctx, constants.MetricTweetsQueried)
	return tweets, nil
}

// ListDiscarded 获取已撤回推文，按撤回时间倒序
func (s *TweetService) ListDiscarded(ctx context.Context) ([]models.Tweet, error) {
	tweets, err := s.repo.ListDiscarded()
	if err != nil {
		return nil, wrapStorageError("list discarded tweets", err)
	}
	s.increment(ctx, constants.MetricTweetsQueried)
	return tweets, nil
}

// Get 获取单条推文（含已撤回）
func (s *TweetService) Get(_ context.Context, id uint) (*models.Tweet, error) {
	tweet, err := s.repo.GetByID(id)
	if err != nil {
		return nil, wrapStorageError("get tweet", err)
	}
	if tweet == nil {
		return nil, ErrTweetNotFound
	}
	return tweet, nil
}

func (s *TweetService) increment(ctx context.Context, name string) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Increment(ctx, name, 1); err != nil {
		logger.Warnw("tweet_metric_increment_failed", "metric", name, "error", err)
	}
}
