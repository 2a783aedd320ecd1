package models

import (
	"time"
)

// Tweet 推文表
// 仅有 active -> discarded 一次性状态迁移，记录从不物理删除
type Tweet struct {
	ID          uint       `gorm:"primarykey" json:"id"`                                   // 主键
	Publisher   string     `gorm:"not null" json:"publisher"`                              // 发布者
	Text        string     `gorm:"column:tweet;type:text;not null" json:"tweet"`           // 推文内容
	Discarded   bool       `gorm:"not null;default:false;index:idx_tweets_state" json:"-"` // 是否已撤回
	PublishedAt time.Time  `gorm:"not null;index:idx_tweets_state" json:"-"`               // 发布时间（创建后不可变）
	DiscardedAt *time.Time `gorm:"index" json:"-"`                                         // 撤回时间
}

// TableName 指定表名
func (Tweet) TableName() string {
	return "tweets"
}

// IsActive 是否仍处于发布状态
func (t *Tweet) IsActive() bool {
	return t != nil && !t.Discarded
}
