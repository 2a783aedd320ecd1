package repository

import (
	"errors"

	"github.com/tweetboard/internal/models"

	"gorm.io/gorm"
)

// ErrTweetStateConflict 条件更新未命中（推文已被并发撤回）
var ErrTweetStateConflict = errors.New("tweet state changed concurrently")

// TweetRepository 推文数据访问接口
type TweetRepository interface {
	Create(tweet *models.Tweet) error
	GetByID(id uint) (*models.Tweet, error)
	Update(tweet *models.Tweet) error
	ListActive() ([]models.Tweet, error)
	ListDiscarded() ([]models.Tweet, error)
}

// GormTweetRepository GORM 实现
type GormTweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository 创建推文仓库
func NewTweetRepository(db *gorm.DB) *GormTweetRepository {
	return &GormTweetRepository{db: db}
}

// Create 创建推文，写入后 tweet.ID 由数据库分配
func (r *GormTweetRepository) Create(tweet *models.Tweet) error {
	return r.db.Create(tweet).Error
}

// GetByID 根据 ID 获取推文，不存在时返回 nil, nil
func (r *GormTweetRepository) GetByID(id uint) (*models.Tweet, error) {
	if id == 0 {
		return nil, nil
	}
	var tweet models.Tweet
	result := r.db.Where("id = ?", id).Limit(1).Find(&tweet)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &tweet, nil
}

// Update 以 ID 为键整体替换可变字段。
// 只有库中记录仍为未撤回状态时才会写入，否则返回 ErrTweetStateConflict；
// published_at 不参与更新。
func (r *GormTweetRepository) Update(tweet *models.Tweet) error {
	if tweet == nil || tweet.ID == 0 {
		return gorm.ErrMissingWhereClause
	}
	result := r.db.Model(&models.Tweet{}).
		Where("id = ? AND discarded = ?", tweet.ID, false).
		Updates(map[string]interface{}{
			"publisher":    tweet.Publisher,
			"tweet":        tweet.Text,
			"discarded":    tweet.Discarded,
			"discarded_at": tweet.DiscardedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTweetStateConflict
	}
	return nil
}

// ListActive 未撤回推文，按发布时间倒序
func (r *GormTweetRepository) ListActive() ([]models.Tweet, error) {
	return r.list(false, "published_at DESC, id DESC")
}

// ListDiscarded 已撤回推文，按撤回时间倒序
func (r *GormTweetRepository) ListDiscarded() ([]models.Tweet, error) {
	return r.list(true, "discarded_at DESC, id DESC")
}

func (r *GormTweetRepository) list(discarded bool, orderBy string) ([]models.Tweet, error) {
	tweets := make([]models.Tweet, 0)
	if err := r.db.Where("discarded = ?", discarded).Order(orderBy).Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}
