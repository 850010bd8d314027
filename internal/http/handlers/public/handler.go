package public

import "github.com/phillyslice/phillyslice/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：菜单、报价、购物车、结账均为游客可用，不做用户鉴权。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
