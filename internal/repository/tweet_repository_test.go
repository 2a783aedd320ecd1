package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tweetboard/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTweetRepositoryTest(t *testing.T) (*GormTweetRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:tweet_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Tweet{}); err != nil {
		t.Fatalf("auto migrate tweet failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return NewTweetRepository(db), db
}

func newTestTweet(idx int, publishedAt time.Time) *models.Tweet {
	return &models.Tweet{
		Publisher:   fmt.Sprintf("publisher%d", idx),
		Text:        fmt.Sprintf("tweet number: %d", idx),
		PublishedAt: publishedAt,
	}
}

func TestTweetRepositoryCreateAssignsID(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	first := newTestTweet(0, time.Now().UTC())
	second := newTestTweet(1, time.Now().UTC())
	if err := repo.Create(first); err != nil {
		t.Fatalf("create first tweet failed: %v", err)
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("create second tweet failed: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatalf("expected ids to be assigned, got %d and %d", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("expected unique ids, both got %d", first.ID)
	}
}

func TestTweetRepositoryGetByIDMissing(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	got, err := repo.GetByID(42)
	if err != nil {
		t.Fatalf("get missing tweet failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing tweet, got %+v", got)
	}

	got, err = repo.GetByID(0)
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for zero id, got %+v, %v", got, err)
	}
}

func TestTweetRepositoryListActiveOrderedByPublishedDesc(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	total := 20
	for i := 0; i < total; i++ {
		if err := repo.Create(newTestTweet(i, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("create tweet %d failed: %v", i, err)
		}
	}

	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != total {
		t.Fatalf("active count want %d got %d", total, len(active))
	}
	if active[0].Text != fmt.Sprintf("tweet number: %d", total-1) {
		t.Fatalf("first active tweet want newest, got %q", active[0].Text)
	}
	if active[total-1].Text != "tweet number: 0" {
		t.Fatalf("last active tweet want oldest, got %q", active[total-1].Text)
	}

	discarded, err := repo.ListDiscarded()
	if err != nil {
		t.Fatalf("list discarded failed: %v", err)
	}
	if len(discarded) != 0 {
		t.Fatalf("expected no discarded tweets, got %d", len(discarded))
	}
}

func TestTweetRepositoryListDiscardedOrderedByDiscardedDesc(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	total := 20
	for i := 0; i < total; i++ {
		tweet := newTestTweet(i, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(tweet); err != nil {
			t.Fatalf("create tweet %d failed: %v", i, err)
		}
		discardedAt := base.Add(time.Duration(i+20) * time.Minute)
		tweet.Discarded = true
		tweet.DiscardedAt = &discardedAt
		if err := repo.Update(tweet); err != nil {
			t.Fatalf("discard tweet %d failed: %v", i, err)
		}
	}

	discarded, err := repo.ListDiscarded()
	if err != nil {
		t.Fatalf("list discarded failed: %v", err)
	}
	if len(discarded) != total {
		t.Fatalf("discarded count want %d got %d", total, len(discarded))
	}
	if discarded[0].Text != fmt.Sprintf("tweet number: %d", total-1) {
		t.Fatalf("first discarded tweet want latest discard, got %q", discarded[0].Text)
	}
	if discarded[total-1].Text != "tweet number: 0" {
		t.Fatalf("last discarded tweet want earliest discard, got %q", discarded[total-1].Text)
	}
	for _, tweet := range discarded {
		if !tweet.Discarded || tweet.DiscardedAt == nil {
			t.Fatalf("discarded tweet %d must carry discarded_at", tweet.ID)
		}
	}

	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active tweets, got %d", len(active))
	}
}

func TestTweetRepositoryListTieBreakByIDDesc(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	same := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	ids := make([]uint, 0, 3)
	for i := 0; i < 3; i++ {
		tweet := newTestTweet(i, same)
		if err := repo.Create(tweet); err != nil {
			t.Fatalf("create tweet %d failed: %v", i, err)
		}
		ids = append(ids, tweet.ID)
	}

	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("active count want 3 got %d", len(active))
	}
	for i, tweet := range active {
		if tweet.ID != ids[len(ids)-1-i] {
			t.Fatalf("position %d want id %d got %d", i, ids[len(ids)-1-i], tweet.ID)
		}
	}
}

func TestTweetRepositoryUpdateRejectsAlreadyDiscarded(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	published := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tweet := newTestTweet(0, published)
	if err := repo.Create(tweet); err != nil {
		t.Fatalf("create tweet failed: %v", err)
	}

	firstDiscard := published.Add(time.Hour)
	tweet.Discarded = true
	tweet.DiscardedAt = &firstDiscard
	if err := repo.Update(tweet); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	secondDiscard := published.Add(2 * time.Hour)
	tweet.DiscardedAt = &secondDiscard
	if err := repo.Update(tweet); !errors.Is(err, ErrTweetStateConflict) {
		t.Fatalf("expected ErrTweetStateConflict, got %v", err)
	}

	stored, err := repo.GetByID(tweet.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload tweet failed: %v", err)
	}
	if stored.DiscardedAt == nil || !stored.DiscardedAt.Equal(firstDiscard) {
		t.Fatalf("discarded_at must keep first value, got %v", stored.DiscardedAt)
	}
	if !stored.PublishedAt.Equal(published) {
		t.Fatalf("published_at must not change, got %v", stored.PublishedAt)
	}
}

func TestTweetRepositoryUpdateMissingTweet(t *testing.T) {
	repo, _ := setupTweetRepositoryTest(t)

	now := time.Now().UTC()
	err := repo.Update(&models.Tweet{ID: 99, Publisher: "p", Text: "t", Discarded: true, DiscardedAt: &now})
	if !errors.Is(err, ErrTweetStateConflict) {
		t.Fatalf("expected ErrTweetStateConflict for missing row, got %v", err)
	}
	if err := repo.Update(&models.Tweet{}); !errors.Is(err, gorm.ErrMissingWhereClause) {
		t.Fatalf("expected ErrMissingWhereClause for zero id update, got %v", err)
	}
	if err := repo.Update(nil); !errors.Is(err, gorm.ErrMissingWhereClause) {
		t.Fatalf("expected ErrMissingWhereClause for nil tweet, got %v", err)
	}
}
