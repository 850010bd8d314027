package public

import (
	"github.com/phillyslice/phillyslice/internal/http/response"
	"github.com/phillyslice/phillyslice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddCartLineRequest 加入购物车请求
type AddCartLineRequest struct {
	ItemID              uint                   `json:"item_id" binding:"required"`
	SizeID              uint                   `json:"size_id" binding:"required"`
	Toppings            []service.ToppingInput `json:"toppings"`
	Quantity            int                    `json:"quantity"`
	CrustType           string                 `json:"crust_type"`
	SpecialInstructions string                 `json:"special_instructions"`
}

// UpdateQuantityRequest 更新行数量请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateToppingsRequest 更新行配料请求
type UpdateToppingsRequest struct {
	Toppings []service.ToppingInput `json:"toppings"`
}

// UpdateInstructionsRequest 更新行备注请求
type UpdateInstructionsRequest struct {
	SpecialInstructions string `json:"special_instructions"`
}

// SetDiscountRequest 设置折扣请求
type SetDiscountRequest struct {
	DiscountType string          `json:"discount_type" binding:"required"`
	Percent      decimal.Decimal `json:"percent"`
}

// GetCart 获取当前会话购物车汇总
func (h *Handler) GetCart(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(token)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// AddCartLine 加入购物车
func (h *Handler) AddCartLine(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	cart, err := h.CartService.AddLine(token, service.AddLineInput{
		ItemID:              req.ItemID,
		SizeID:              req.SizeID,
		Toppings:            req.Toppings,
		Quantity:            req.Quantity,
		CrustType:           req.CrustType,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// RemoveCartLine 移除购物车行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	cart, err := h.CartService.RemoveLine(token, c.Param("cart_id"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// UpdateCartLineQuantity 更新购物车行数量
func (h *Handler) UpdateCartLineQuantity(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	cart, err := h.CartService.UpdateQuantity(token, c.Param("cart_id"), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// UpdateCartLineToppings 更新购物车行配料
func (h *Handler) UpdateCartLineToppings(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	var req UpdateToppingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	cart, err := h.CartService.UpdateToppings(token, c.Param("cart_id"), req.Toppings)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// UpdateCartLineInstructions 更新购物车行备注
func (h *Handler) UpdateCartLineInstructions(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	var req UpdateInstructionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	cart, err := h.CartService.UpdateInstructions(token, c.Param("cart_id"), req.SpecialInstructions)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(token); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// SetCartDiscount 设置购物车折扣
func (h *Handler) SetCartDiscount(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	var req SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	cart, err := h.CartService.SetDiscount(token, req.DiscountType, req.Percent)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}

// ClearCartDiscount 移除购物车折扣
func (h *Handler) ClearCartDiscount(c *gin.Context) {
	token, ok := getSessionToken(c)
	if !ok {
		return
	}
	cart, err := h.CartService.ClearDiscount(token)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, h.CartService.Summarize(cart))
}
