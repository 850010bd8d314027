package public

import (
	"github.com/phillyslice/phillyslice/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SubmitCheckout 提交结账：定格购物车快照并推送下游任务
func (h *Handler) SubmitCheckout(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	result, err := h.CheckoutService.Submit(token)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	requestLog(c).Infow("checkout_accepted", "order_no", result.OrderNo, "total", result.Total.String())
	response.Success(c, result)
}
