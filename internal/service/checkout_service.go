package service

import (
	"fmt"
	"time"

	"github.com/phillyslice/phillyslice/internal/logger"
	"github.com/phillyslice/phillyslice/internal/models"
	"github.com/phillyslice/phillyslice/internal/queue"

	"github.com/google/uuid"
)

// CheckoutService 结账边界服务：固化购物车快照并交给下游处理，
// 支付与履约不在此层。
type CheckoutService struct {
	cartService *CartService
	queueClient *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(cartService *CartService, queueClient *queue.Client) *CheckoutService {
	return &CheckoutService{cartService: cartService, queueClient: queueClient}
}

// CheckoutResult 结账提交结果
type CheckoutResult struct {
	OrderNo     string       `json:"order_no"`
	ItemCount   int          `json:"item_count"`
	Subtotal    models.Money `json:"subtotal"`
	Total       models.Money `json:"total"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

// Submit 提交结账：对当前购物车定格计价快照，推送下游任务后清空购物车。
// 空购物车拒绝提交。
func (s *CheckoutService) Submit(sessionToken string) (*CheckoutResult, error) {
	cart, err := s.cartService.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	summary := s.cartService.Summarize(cart)
	now := time.Now()
	orderNo := fmt.Sprintf("PS%s%s", now.Format("20060102150405"), uuid.NewString()[:8])

	payload := queue.CheckoutSubmitPayload{
		OrderNo:         orderNo,
		SessionToken:    sessionToken,
		Lines:           cart.Lines,
		DiscountType:    cart.DiscountType,
		DiscountPercent: cart.DiscountPercent,
		Subtotal:        summary.Subtotal,
		Total:           summary.Total,
		SubmittedAt:     now.Unix(),
	}
	if err := s.queueClient.EnqueueCheckoutSubmit(payload); err != nil {
		return nil, err
	}

	if err := s.cartService.Clear(sessionToken); err != nil {
		logger.Warnw("clear cart after checkout failed", "session", sessionToken, "error", err)
	}

	logger.Infow("checkout submitted",
		"order_no", orderNo,
		"lines", len(cart.Lines),
		"total", summary.Total.String(),
	)
	return &CheckoutResult{
		OrderNo:     orderNo,
		ItemCount:   summary.ItemCount,
		Subtotal:    summary.Subtotal,
		Total:       summary.Total,
		SubmittedAt: now,
	}, nil
}
