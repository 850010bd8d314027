package service

import (
	"context"
	"time"

	"github.com/phillyslice/phillyslice/internal/cache"
	"github.com/phillyslice/phillyslice/internal/logger"
	"github.com/phillyslice/phillyslice/internal/models"
	"github.com/phillyslice/phillyslice/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogService 菜单目录业务服务
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	toppingRepo  repository.ToppingRepository
	menuTTL      time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	toppingRepo repository.ToppingRepository,
	menuTTL time.Duration,
) *CatalogService {
	if menuTTL <= 0 {
		menuTTL = 5 * time.Minute
	}
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		toppingRepo:  toppingRepo,
		menuTTL:      menuTTL,
	}
}

// ToppingView 配料展示视图（未选中状态下的标签）
type ToppingView struct {
	models.Topping
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
}

// ItemDetail 单品详情（含按分类分组的可选配料）
type ItemDetail struct {
	Item     models.Item              `json:"item"`
	Toppings map[string][]ToppingView `json:"toppings"`
}

// Categories 获取分类列表（经缓存）
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, cache.MenuCategoriesKey(), &cached); err != nil {
		logger.Warnw("menu cache read failed", "key", cache.MenuCategoriesKey(), "error", err)
	} else if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cache.MenuCategoriesKey(), categories, s.menuTTL); err != nil {
		logger.Warnw("menu cache write failed", "key", cache.MenuCategoriesKey(), "error", err)
	}
	return categories, nil
}

// Items 获取上架单品列表（categorySlug 为空时返回全部，经缓存）
func (s *CatalogService) Items(ctx context.Context, categorySlug string) ([]models.Item, error) {
	var categoryID uint
	if categorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(categorySlug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return []models.Item{}, nil
		}
		categoryID = category.ID
	}

	key := cache.MenuItemsKey(categoryID)
	var cached []models.Item
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("menu cache read failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	items, err := s.itemRepo.List(categoryID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.normalizeItem(&items[i])
	}
	if err := cache.SetJSON(ctx, key, items, s.menuTTL); err != nil {
		logger.Warnw("menu cache write failed", "key", key, "error", err)
	}
	return items, nil
}

// ItemDetail 获取单品详情与其可选配料（经缓存）
func (s *CatalogService) ItemDetail(ctx context.Context, slug string) (*ItemDetail, error) {
	key := cache.MenuItemKey(slug)
	var cached ItemDetail
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("menu cache read failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	item, err := s.itemRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive {
		return nil, ErrItemNotFound
	}
	s.normalizeItem(item)

	toppings, err := s.toppingsForItemType(ctx, item.ItemType)
	if err != nil {
		return nil, err
	}

	detail := &ItemDetail{
		Item:     *item,
		Toppings: map[string][]ToppingView{},
	}
	// 缓存中的配料列表可能晚于下架生效，出口前再过滤一次
	for category, group := range GroupByCategory(FilterForItem(toppings, item.ItemType)) {
		views := make([]ToppingView, 0, len(group))
		for _, topping := range group {
			views = append(views, ToppingView{
				Topping:   topping,
				Label:     ToppingLabel(topping, nil, item.DefaultToppingIDs),
				IsDefault: item.DefaultToppingIDs.Contains(topping.ID),
			})
		}
		detail.Toppings[category] = views
	}

	if err := cache.SetJSON(ctx, key, detail, s.menuTTL); err != nil {
		logger.Warnw("menu cache write failed", "key", key, "error", err)
	}
	return detail, nil
}

func (s *CatalogService) toppingsForItemType(ctx context.Context, itemType string) ([]models.Topping, error) {
	key := cache.MenuToppingsKey(itemType)
	var cached []models.Topping
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("menu cache read failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	toppings, err := s.toppingRepo.ListActiveForItemType(itemType)
	if err != nil {
		return nil, err
	}
	for i := range toppings {
		toppings[i].Price = s.normalizeMoney(toppings[i].Price, "topping_price", toppings[i].ID)
	}
	if err := cache.SetJSON(ctx, key, toppings, s.menuTTL); err != nil {
		logger.Warnw("menu cache write failed", "key", key, "error", err)
	}
	return toppings, nil
}

// normalizeItem 在目录数据进入引擎的边界收敛坏价格：负数按 0 处理并告警
func (s *CatalogService) normalizeItem(item *models.Item) {
	item.BasePrice = s.normalizeMoney(item.BasePrice, "base_price", item.ID)
	for i := range item.Sizes {
		item.Sizes[i].PriceAdjustment = s.normalizeMoney(item.Sizes[i].PriceAdjustment, "price_adjustment", item.Sizes[i].ID)
	}
}

func (s *CatalogService) normalizeMoney(m models.Money, field string, id uint) models.Money {
	if m.Decimal.LessThan(decimal.Zero) {
		logger.Warnw("negative catalog price coerced to zero", "field", field, "id", id, "value", m.String())
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	return m
}
