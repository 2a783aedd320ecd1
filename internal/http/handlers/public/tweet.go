package public

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/tweetboard/internal/http/response"

	"github.com/gin-gonic/gin"
)

var errTweetIDInvalid = errors.New("tweet id must be a positive integer")

// PublishTweetRequest 发布推文请求
type PublishTweetRequest struct {
	Publisher string `json:"publisher"`
	Tweet     string `json:"tweet"`
}

// DiscardTweetRequest 撤回推文请求
type DiscardTweetRequest struct {
	Tweet TweetID `json:"tweet"`
}

// TweetID 推文 ID，兼容数字与数字字符串
type TweetID uint

// UnmarshalJSON 解析数字或数字字符串
func (id *TweetID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*id = 0
		return nil
	}
	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return errTweetIDInvalid
		}
	}
	value, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return errTweetIDInvalid
	}
	*id = TweetID(value)
	return nil
}

// ListTweets 获取未撤回推文
func (h *Handler) ListTweets(c *gin.Context) {
	tweets, err := h.TweetService.ListActive(c.Request.Context())
	if err != nil {
		respondTweetError(c, err)
		return
	}
	response.Success(c, tweets)
}

// PublishTweet 发布推文
func (h *Handler) PublishTweet(c *gin.Context) {
	var req PublishTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "invalid request body")
		return
	}
	tweet, err := h.TweetService.Publish(c.Request.Context(), req.Publisher, req.Tweet)
	if err != nil {
		respondTweetPublishError(c, err)
		return
	}
	response.Created(c, gin.H{"id": tweet.ID})
}

// GetTweet 获取单条推文
func (h *Handler) GetTweet(c *gin.Context) {
	id, ok := getTweetIDParam(c)
	if !ok {
		return
	}
	tweet, err := h.TweetService.Get(c.Request.Context(), id)
	if err != nil {
		respondTweetGetError(c, err)
		return
	}
	response.Success(c, tweet)
}

// ListDiscardedTweets 获取已撤回推文
func (h *Handler) ListDiscardedTweets(c *gin.Context) {
	tweets, err := h.TweetService.ListDiscarded(c.Request.Context())
	if err != nil {
		respondTweetError(c, err)
		return
	}
	response.Success(c, tweets)
}

// DiscardTweet 撤回推文
func (h *Handler) DiscardTweet(c *gin.Context) {
	var req DiscardTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, "invalid request body")
		return
	}
	if req.Tweet == 0 {
		respondInvalidRequest(c, errTweetIDInvalid.Error())
		return
	}
	if err := h.TweetService.Discard(c.Request.Context(), uint(req.Tweet)); err != nil {
		respondTweetDiscardError(c, err)
		return
	}
	response.Success(c, nil)
}
