package queue

import (
	"encoding/json"

	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/models"

	"github.com/hibiken/asynq"
)

const (
	// TaskCheckoutSubmit 结账提交任务
	TaskCheckoutSubmit = constants.TaskCheckoutSubmit
)

// CheckoutSubmitPayload 结账提交任务载荷：下单瞬间的购物车快照与计价结果
type CheckoutSubmitPayload struct {
	OrderNo         string           `json:"order_no"`
	SessionToken    string           `json:"session_token"`
	Lines           models.CartLines `json:"lines"`
	DiscountType    string           `json:"discount_type,omitempty"`
	DiscountPercent models.Money     `json:"discount_percent"`
	Subtotal        models.Money     `json:"subtotal"`
	Total           models.Money     `json:"total"`
	SubmittedAt     int64            `json:"submitted_at"`
}

// NewCheckoutSubmitTask 创建结账提交任务
func NewCheckoutSubmitTask(payload CheckoutSubmitPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutSubmit, body), nil
}
