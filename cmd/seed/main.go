package main

import (
	"context"
	"errors"

	"github.com/tweetboard/internal/config"
	"github.com/tweetboard/internal/logger"
	"github.com/tweetboard/internal/models"
	"github.com/tweetboard/internal/provider"
	"github.com/tweetboard/internal/service"

	"github.com/joho/godotenv"
)

type seedTweet struct {
	Publisher string
	Text      string
	Discard   bool
}

var seedTweets = []seedTweet{
	{Publisher: "Yo", Text: "How are you?"},
	{Publisher: "Prospect", Text: "Breaking the law"},
	{Publisher: "Schibsted Spain", Text: "We are hiring! https://www.schibsted.es/ #golang"},
	{Publisher: "Newsroom", Text: "This one was posted by mistake", Discard: true},
}

func main() {
	_ = godotenv.Load()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Server.Mode, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer func() {
		_ = models.CloseDB(models.DB)
	}()

	// 自动迁移
	if err := models.AutoMigrate(models.DB); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	container := provider.NewContainer(cfg)
	defer container.Close()

	ctx := context.Background()
	published, discarded := 0, 0
	for _, item := range seedTweets {
		tweet, err := container.TweetService.Publish(ctx, item.Publisher, item.Text)
		if err != nil {
			if service.IsValidationError(err) {
				logger.Warnw("seed_tweet_invalid", "publisher", item.Publisher, "error", err)
				continue
			}
			stdLog.Fatalf("Failed to publish seed tweet: %v", err)
		}
		published++
		if !item.Discard {
			continue
		}
		if err := container.TweetService.Discard(ctx, tweet.ID); err != nil && !errors.Is(err, service.ErrTweetAlreadyDiscarded) {
			stdLog.Fatalf("Failed to discard seed tweet %d: %v", tweet.ID, err)
		}
		discarded++
	}

	logger.Infow("seed_completed", "published", published, "discarded", discarded)
}
