package worker

import (
	"context"
	"encoding/json"

	"github.com/phillyslice/phillyslice/internal/logger"
	"github.com/phillyslice/phillyslice/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct{}

// NewConsumer 创建消费者
func NewConsumer() *Consumer {
	return &Consumer{}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutSubmit, c.handleCheckoutSubmit)
}

// handleCheckoutSubmit 消费结账提交任务。当前下游只做落日志，
// TODO: 接入门店打单系统后在此转发快照。
func (c *Consumer) handleCheckoutSubmit(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_submit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CheckoutSubmitPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_checkout_submit_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderNo == "" {
		logger.Debugw("worker_checkout_submit_skip_invalid_payload")
		return nil
	}
	logger.Infow("worker_checkout_submit_received",
		"order_no", payload.OrderNo,
		"lines", len(payload.Lines),
		"discount_type", payload.DiscountType,
		"subtotal", payload.Subtotal.String(),
		"total", payload.Total.String(),
		"submitted_at", payload.SubmittedAt,
	)
	return nil
}
