package public

import (
	"github.com/phillyslice/phillyslice/internal/http/response"

	"github.com/gin-gonic/gin"
)

const sessionTokenContextKey = "cart_session_token"

// getSessionToken 读取会话中间件写入的购物车会话标识
func getSessionToken(c *gin.Context) (string, bool) {
	value, ok := c.Get(sessionTokenContextKey)
	if !ok {
		respondError(c, response.CodeInternal, "cart session missing", nil)
		return "", false
	}
	token, ok := value.(string)
	if !ok || token == "" {
		respondError(c, response.CodeInternal, "cart session missing", nil)
		return "", false
	}
	return token, true
}
