package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/models"
	"github.com/phillyslice/phillyslice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService 购物车业务服务
type CartService struct {
	cartRepo    repository.CartRepository
	itemRepo    repository.ItemRepository
	toppingRepo repository.ToppingRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository, toppingRepo repository.ToppingRepository) *CartService {
	return &CartService{cartRepo: cartRepo, itemRepo: itemRepo, toppingRepo: toppingRepo}
}

// ToppingInput 加入购物车时的配料选择输入
type ToppingInput struct {
	ToppingID uint  `json:"topping_id"`
	IsGrilled *bool `json:"is_grilled,omitempty"`
}

// AddLineInput 加入购物车输入
type AddLineInput struct {
	ItemID              uint
	SizeID              uint
	Toppings            []ToppingInput
	Quantity            int
	CrustType           string
	SpecialInstructions string
}

// Get 获取会话购物车（不存在时返回未持久化的空购物车）
func (s *CartService) Get(sessionToken string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetBySessionToken(sessionToken)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{SessionToken: sessionToken, Lines: models.CartLines{}}
	}
	return cart, nil
}

// AddLine 加入购物车。相同配置（单品+规格+饼底+配料做法集合，配料顺序无关）
// 合并为一行累加数量，不同配置新增一行。
func (s *CartService) AddLine(sessionToken string, input AddLineInput) (*models.Cart, error) {
	item, size, err := s.resolveItemAndSize(input.ItemID, input.SizeID)
	if err != nil {
		return nil, err
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
		CartID:    uuid.NewString(),
		ItemID:    item.ID,
		Name:      item.Name,
		BasePrice: item.BasePrice,
		Size: models.SizeSnapshot{
			ID:              size.ID,
			Name:            size.Name,
			PriceAdjustment: size.PriceAdjustment,
		},
		Toppings:            selected,
		Quantity:            quantity,
		CrustType:           input.CrustType,
		SpecialInstructions: strings.TrimSpace(input.SpecialInstructions),
		CreatedAt:           time.Now(),
	}

	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}

	signature := lineSignature(line)
	merged := false
	for i := range cart.Lines {
		if lineSignature(cart.Lines[i]) == signature {
			cart.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine 移除购物车行（行不存在时幂等无操作）
func (s *CartService) RemoveLine(sessionToken, cartID string) (*models.Cart, error) {
	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	idx, _ := cart.FindLine(cartID)
	if idx < 0 {
		return cart, nil
	}
	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity 更新行数量。数量下限为 1：小于 1 的请求静默保持原值。
// 行不存在时幂等无操作。
func (s *CartService) UpdateQuantity(sessionToken, cartID string, quantity int) (*models.Cart, error) {
	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	idx, line := cart.FindLine(cartID)
	if idx < 0 || quantity < 1 {
		return cart, nil
	}
	line.Quantity = quantity
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateToppings 原地替换行配料。编辑后即使配置与其他行相同也不重新合并，
// 行ID 与数量保持不变。
func (s *CartService) UpdateToppings(sessionToken, cartID string, toppings []ToppingInput) (*models.Cart, error) {
	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	idx, line := cart.FindLine(cartID)
	if idx < 0 {
		return cart, nil
	}
	item, err := s.itemRepo.GetByID(line.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	selected, err := resolveToppings(s.toppingRepo, item, toppings)
	if err != nil {
		return nil, err
	}
	line.Toppings = selected
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateInstructions 更新行备注（行不存在时幂等无操作）
func (s *CartService) UpdateInstructions(sessionToken, cartID, instructions string) (*models.Cart, error) {
	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	idx, line := cart.FindLine(cartID)
	if idx < 0 {
		return cart, nil
	}
	line.SpecialInstructions = strings.TrimSpace(instructions)
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear 清空会话购物车
func (s *CartService) Clear(sessionToken string) error {
	return s.cartRepo.DeleteBySessionToken(sessionToken)
}

// SetDiscount 设置购物车折扣。百分比收敛到 [0,100]，只作用于聚合合计。
func (s *CartService) SetDiscount(sessionToken, discountType string, percent decimal.Decimal) (*models.Cart, error) {
	switch discountType {
	case constants.DiscountTypePromo, constants.DiscountTypeLoyalty, constants.DiscountTypeEmployee:
	default:
		return nil, ErrDiscountInvalid
	}
	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	cart.DiscountType = discountType
	cart.DiscountPercent = models.NewMoneyFromDecimal(ClampDiscountPercent(percent))
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearDiscount 移除购物车折扣
func (s *CartService) ClearDiscount(sessionToken string) (*models.Cart, error) {
	cart, err := s.Get(sessionToken)
	if err != nil {
		return nil, err
	}
	cart.DiscountType = ""
	cart.DiscountPercent = models.NewMoneyFromDecimal(decimal.Zero)
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CartLineView 购物车行视图（含计算价格）
type CartLineView struct {
	models.CartLine
	UnitPrice models.Money `json:"unit_price"`
	LineTotal models.Money `json:"line_total"`
}

// CartSummary 购物车汇总视图
type CartSummary struct {
	Lines           []CartLineView `json:"lines"`
	ItemCount       int            `json:"item_count"`
	Subtotal        models.Money   `json:"subtotal"`
	DiscountType    string         `json:"discount_type,omitempty"`
	DiscountPercent models.Money   `json:"discount_percent"`
	Total           models.Money   `json:"total"`
}

// Summarize 基于购物车计算汇总视图。所有金额只在此处收敛到 2 位小数。
func (s *CartService) Summarize(cart *models.Cart) CartSummary {
	summary := CartSummary{
		Lines:           make([]CartLineView, 0, len(cart.Lines)),
		DiscountType:    cart.DiscountType,
		DiscountPercent: cart.DiscountPercent,
		Subtotal:        models.NewMoneyFromDecimal(CartSubtotal(cart.Lines)),
		Total:           models.NewMoneyFromDecimal(CartTotal(cart)),
	}
	for _, line := range cart.Lines {
		summary.ItemCount += line.Quantity
		summary.Lines = append(summary.Lines, CartLineView{
			CartLine:  line,
			UnitPrice: models.NewMoneyFromDecimal(LineUnitPrice(line)),
			LineTotal: models.NewMoneyFromDecimal(LineTotal(line)),
		})
	}
	return summary
}

func (s *CartService) resolveItemAndSize(itemID, sizeID uint) (*models.Item, *models.ItemSize, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrItemNotFound
	}
	if !item.IsActive {
		return nil, nil, ErrItemNotAvailable
	}
	size, err := s.itemRepo.GetSize(item.ID, sizeID)
	if err != nil {
		return nil, nil, err
	}
	if size == nil {
		return nil, nil, ErrSizeNotFound
	}
	return item, size, nil
}

// resolveToppings 在配料进入引擎的边界完成校验：存在、上架、品类匹配、
// 做法合法，并在此处固化含前缀的展示名。
func resolveToppings(repo repository.ToppingRepository, item *models.Item, inputs []ToppingInput) ([]models.SelectedTopping, error) {
	if len(inputs) == 0 {
		return []models.SelectedTopping{}, nil
	}
	ids := make([]uint, 0, len(inputs))
	for _, input := range inputs {
		ids = append(ids, input.ToppingID)
	}
	toppings, err := repo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Topping, len(toppings))
	for _, topping := range toppings {
		byID[topping.ID] = topping
	}

	selected := make([]models.SelectedTopping, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, input := range inputs {
		if seen[input.ToppingID] {
			continue
		}
		seen[input.ToppingID] = true

		topping, ok := byID[input.ToppingID]
		if !ok {
			return nil, ErrToppingNotFound
		}
		if !topping.IsActive {
			return nil, ErrToppingNotAvailable
		}
		if topping.ItemType != item.ItemType && topping.ItemType != constants.ItemTypeBoth {
			return nil, ErrToppingTypeMismatch
		}
		if input.IsGrilled != nil && !topping.HasDualState() {
			return nil, ErrVariantNotSupported
		}
		selected = append(selected, models.SelectedTopping{
			ToppingID: topping.ID,
			Name:      SelectedToppingLabel(topping, input.IsGrilled, item.DefaultToppingIDs),
			Price:     topping.Price,
			IsGrilled: input.IsGrilled,
		})
	}
	return selected, nil
}

// lineSignature 计算行配置签名：单品、规格、饼底与按 ID 排序的配料做法集合。
// 配料先排序再编码，签名与配料选择顺序无关。
func lineSignature(line models.CartLine) string {
	toppings := make([]models.SelectedTopping, len(line.Toppings))
	copy(toppings, line.Toppings)
	sort.Slice(toppings, func(i, j int) bool {
		return toppings[i].ToppingID < toppings[j].ToppingID
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d|%s", line.ItemID, line.Size.ID, line.CrustType)
	for _, topping := range toppings {
		grilled := topping.IsGrilled != nil && *topping.IsGrilled
		fmt.Fprintf(&b, "|%d:%t", topping.ToppingID, grilled)
	}
	return b.String()
}
