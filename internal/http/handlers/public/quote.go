package public

import (
	"github.com/phillyslice/phillyslice/internal/http/response"
	"github.com/phillyslice/phillyslice/internal/service"

	"github.com/gin-gonic/gin"
)

// QuoteRequest 报价请求
type QuoteRequest struct {
	SizeID    uint                   `json:"size_id" binding:"required"`
	Toppings  []service.ToppingInput `json:"toppings"`
	Quantity  int                    `json:"quantity"`
	CrustType string                 `json:"crust_type"`
}

// QuoteItem 对一份配置即时计价（不落购物车）
func (h *Handler) QuoteItem(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	quote, err := h.QuoteService.Compute(c.Param("slug"), service.QuoteInput{
		SizeID:    req.SizeID,
		Toppings:  req.Toppings,
		Quantity:  req.Quantity,
		CrustType: req.CrustType,
	})
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	response.Success(c, quote)
}
