package service

import (
	"time"

	"github.com/phillyslice/phillyslice/internal/models"
	"github.com/phillyslice/phillyslice/internal/repository"
)

// QuoteService 无状态报价服务：对一份配置即时计价，不触碰购物车
type QuoteService struct {
	itemRepo    repository.ItemRepository
	toppingRepo repository.ToppingRepository
}

// NewQuoteService 创建报价服务
func NewQuoteService(itemRepo repository.ItemRepository, toppingRepo repository.ToppingRepository) *QuoteService {
	return &QuoteService{itemRepo: itemRepo, toppingRepo: toppingRepo}
}

// QuoteInput 报价输入
type QuoteInput struct {
	SizeID    uint
	Toppings  []ToppingInput
	Quantity  int
	CrustType string
}

// Quote 报价结果
type Quote struct {
	ItemID     uint                     `json:"item_id"`
	ItemName   string                   `json:"item_name"`
	Size       models.SizeSnapshot      `json:"size"`
	Multiplier string                   `json:"multiplier"`
	Toppings   []models.SelectedTopping `json:"toppings"`
	Quantity   int                      `json:"quantity"`
	UnitPrice  models.Money             `json:"unit_price"`
	LineTotal  models.Money             `json:"line_total"`
}

// Compute 按单品 slug 与配置计算报价。校验规则与加入购物车一致，
// 金额只在出口处收敛到 2 位小数。
func (s *QuoteService) Compute(slug string, input QuoteInput) (*Quote, error) {
	item, err := s.itemRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !item.IsActive {
		return nil, ErrItemNotAvailable
	}
	size, err := s.itemRepo.GetSize(item.ID, input.SizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrSizeNotFound
	}
	selected, err := resolveToppings(s.toppingRepo, item, input.Toppings)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	line := models.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		BasePrice: item.BasePrice,
		Size: models.SizeSnapshot{
			ID:              size.ID,
			Name:            size.Name,
			PriceAdjustment: size.PriceAdjustment,
		},
		Toppings:  selected,
		Quantity:  quantity,
		CrustType: input.CrustType,
		CreatedAt: time.Now(),
	}

	return &Quote{
		ItemID:     item.ID,
		ItemName:   item.Name,
		Size:       line.Size,
		Multiplier: SizeMultiplier(size.Name).String(),
		Toppings:   selected,
		Quantity:   quantity,
		UnitPrice:  models.NewMoneyFromDecimal(LineUnitPrice(line)),
		LineTotal:  models.NewMoneyFromDecimal(LineTotal(line)),
	}, nil
}
