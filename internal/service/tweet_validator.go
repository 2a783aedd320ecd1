package service

import (
	"regexp"
	"unicode/utf8"

	"github.com/tweetboard/internal/constants"
)

// 链接不计入推文长度；结尾字符集不含 . , ; : ! ?，句末标点仍计入长度
var tweetURLPattern = regexp.MustCompile(`https?://[-a-zA-Z0-9+&@#/%?=~_|!:,.;]*[-a-zA-Z0-9+&@#/%=~_|]`)

// ValidateTweet 校验发布者与推文内容，按顺序返回第一个错误
func ValidateTweet(publisher, text string) error {
	if publisher == "" {
		return ErrPublisherEmpty
	}
	if text == "" {
		return ErrTweetTextEmpty
	}
	if EffectiveLength(text) >= constants.TweetMaxLength {
		return ErrTweetTooLong
	}
	return nil
}

// EffectiveLength 去除全部链接后的字符数
func EffectiveLength(text string) int {
	return utf8.RuneCountInString(tweetURLPattern.ReplaceAllString(text, ""))
}
