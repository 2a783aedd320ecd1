package service

import (
	"errors"
	"fmt"
)

// 推文校验错误
var (
	ErrPublisherEmpty = errors.New("publisher must not be null or empty")
	ErrTweetTextEmpty = errors.New("tweet text must not be null or empty")
	ErrTweetTooLong   = errors.New("tweet must be shorter than 140 characters")
)

// 推文状态错误
var (
	ErrTweetNotFound         = errors.New("tweet does not exist")
	ErrTweetAlreadyDiscarded = errors.New("tweet already discarded")
)

// ErrStorage 存储层失败，原始错误通过 %w 一并保留
var ErrStorage = errors.New("tweet storage failure")

// IsValidationError 判断是否为发布校验错误
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPublisherEmpty) ||
		errors.Is(err, ErrTweetTextEmpty) ||
		errors.Is(err, ErrTweetTooLong)
}

func wrapStorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
