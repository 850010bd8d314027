package service

import (
	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/models"
)

// SelectedTopping 配置中的已选配料。IsGrilled 仅对 veggie_state=both 的配料有意义。
type SelectedTopping struct {
	Topping   models.Topping
	IsGrilled *bool
}

// ToppingSelection 单次配置过程中的配料选择状态，按配料 ID 去重，保留选择顺序。
type ToppingSelection struct {
	entries []SelectedTopping
}

// NewToppingSelection 创建空的配料选择状态
func NewToppingSelection() *ToppingSelection {
	return &ToppingSelection{}
}

// Toggle 切换配料选择状态。契约是双态的：
//   - isGrilled 为 nil：未选中则加入，已选中则移除（复选框语义）；
//   - isGrilled 非 nil：未选中则带做法加入，已选中则只更新做法、绝不移除
//     （双态配料的二选一单选语义）。
func (s *ToppingSelection) Toggle(topping models.Topping, isGrilled *bool) {
	for i := range s.entries {
		if s.entries[i].Topping.ID != topping.ID {
			continue
		}
		if isGrilled == nil {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
		s.entries[i].IsGrilled = isGrilled
		return
	}
	s.entries = append(s.entries, SelectedTopping{Topping: topping, IsGrilled: isGrilled})
}

// IsSelected 判断配料是否已选中
func (s *ToppingSelection) IsSelected(toppingID uint) bool {
	for _, entry := range s.entries {
		if entry.Topping.ID == toppingID {
			return true
		}
	}
	return false
}

// GrilledState 返回配料的烤制状态（未选中或未指定时为 false，即生鲜）
func (s *ToppingSelection) GrilledState(toppingID uint) bool {
	for _, entry := range s.entries {
		if entry.Topping.ID == toppingID {
			return entry.IsGrilled != nil && *entry.IsGrilled
		}
	}
	return false
}

// Len 返回已选配料数量
func (s *ToppingSelection) Len() int {
	return len(s.entries)
}

// Snapshot 返回当前选择的副本（选择顺序）
func (s *ToppingSelection) Snapshot() []SelectedTopping {
	snapshot := make([]SelectedTopping, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// FilterForItem 过滤出指定品类可选的配料：仅保留上架且品类匹配（或通用）的配料
func FilterForItem(toppings []models.Topping, itemType string) []models.Topping {
	filtered := make([]models.Topping, 0, len(toppings))
	for _, topping := range toppings {
		if !topping.IsActive {
			continue
		}
		if topping.ItemType != itemType && topping.ItemType != constants.ItemTypeBoth {
			continue
		}
		filtered = append(filtered, topping)
	}
	return filtered
}

// GroupByCategory 按配料分类分组（cheese/meat/veggie），分组内保持入参顺序
func GroupByCategory(toppings []models.Topping) map[string][]models.Topping {
	grouped := map[string][]models.Topping{
		constants.ToppingCategoryCheese: {},
		constants.ToppingCategoryMeat:   {},
		constants.ToppingCategoryVeggie: {},
	}
	for _, topping := range toppings {
		grouped[topping.Category] = append(grouped[topping.Category], topping)
	}
	return grouped
}

// ToppingLabel 计算配料展示标签。标签是（选择状态, 默认配料集合）的纯函数，
// 每次展示重新计算，不缓存、不入库：
//   - 已选中且烤制 → 前缀 "Grilled "；
//   - 已选中且属于默认配料 → 再前缀 "XTRA-"（基础价已含，重选即加料收费）；
//   - 价格大于 0 → 追加 " (+$X.XX)"。
func ToppingLabel(topping models.Topping, selection *ToppingSelection, defaultToppingIDs models.UintArray) string {
	label := topping.Name
	if selection != nil && selection.IsSelected(topping.ID) {
		if selection.GrilledState(topping.ID) {
			label = constants.LabelPrefixGrilled + label
		}
		if defaultToppingIDs.Contains(topping.ID) {
			label = constants.LabelPrefixExtra + label
		}
	}
	if topping.Price.Decimal.IsPositive() {
		label += " (+$" + topping.Price.String() + ")"
	}
	return label
}

// SelectedToppingLabel 基于单条已选记录计算标签（加入购物车时解析行内配料名）
func SelectedToppingLabel(topping models.Topping, isGrilled *bool, defaultToppingIDs models.UintArray) string {
	label := topping.Name
	if isGrilled != nil && *isGrilled {
		label = constants.LabelPrefixGrilled + label
	}
	if defaultToppingIDs.Contains(topping.ID) {
		label = constants.LabelPrefixExtra + label
	}
	return label
}
