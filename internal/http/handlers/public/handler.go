package public

import "github.com/tweetboard/internal/provider"

// Handler 公开接口处理器入口
// 说明：推文发布、撤回与查询均无需登录。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
