package service

import (
	"testing"

	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/models"

	"github.com/shopspring/decimal"
)

func boolPtr(b bool) *bool {
	return &b
}

func testTopping(t *testing.T, id uint, name, category, price string) models.Topping {
	t.Helper()
	return models.Topping{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    money(t, price),
		ItemType: constants.ItemTypeBoth,
		IsActive: true,
	}
}

func TestToggleIsSelfInverse(t *testing.T) {
	sel := NewToppingSelection()
	mushrooms := testTopping(t, 1, "Mushrooms", constants.ToppingCategoryVeggie, "1.50")

	sel.Toggle(mushrooms, nil)
	if !sel.IsSelected(mushrooms.ID) {
		t.Fatal("topping should be selected after first toggle")
	}
	sel.Toggle(mushrooms, nil)
	if sel.IsSelected(mushrooms.ID) {
		t.Fatal("topping should be deselected after second toggle")
	}
	if sel.Len() != 0 {
		t.Fatalf("expected empty selection, got: %d entries", sel.Len())
	}
}

func TestToggleVariantNeverRemoves(t *testing.T) {
	sel := NewToppingSelection()
	onions := models.Topping{
		ID:          2,
		Name:        "Onions",
		Category:    constants.ToppingCategoryVeggie,
		Price:       money(t, "1.00"),
		ItemType:    constants.ItemTypeBoth,
		VeggieState: constants.VeggieStateBoth,
		IsActive:    true,
	}

	sel.Toggle(onions, boolPtr(true))
	if !sel.IsSelected(onions.ID) || !sel.GrilledState(onions.ID) {
		t.Fatal("expected onions selected as grilled")
	}

	// 同一配料再次带显式做法切换，只更新做法，不反选
	sel.Toggle(onions, boolPtr(false))
	if !sel.IsSelected(onions.ID) {
		t.Fatal("explicit variant toggle must never remove the topping")
	}
	if sel.GrilledState(onions.ID) {
		t.Fatal("expected grilled state switched to false")
	}

	// 无参切换仍是复选框语义，此时移除
	sel.Toggle(onions, nil)
	if sel.IsSelected(onions.ID) {
		t.Fatal("bare toggle on a selected topping should remove it")
	}
}

func TestSnapshotPreservesSelectionOrder(t *testing.T) {
	sel := NewToppingSelection()
	first := testTopping(t, 3, "Provolone", constants.ToppingCategoryCheese, "1.00")
	second := testTopping(t, 1, "Mushrooms", constants.ToppingCategoryVeggie, "1.50")
	sel.Toggle(first, nil)
	sel.Toggle(second, nil)

	snapshot := sel.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 entries, got: %d", len(snapshot))
	}
	if snapshot[0].Topping.ID != 3 || snapshot[1].Topping.ID != 1 {
		t.Fatalf("expected selection order [3 1], got: [%d %d]", snapshot[0].Topping.ID, snapshot[1].Topping.ID)
	}

	// 快照是副本，修改不回写选择状态
	snapshot[0].Topping.ID = 99
	if sel.Snapshot()[0].Topping.ID != 3 {
		t.Fatal("mutating the snapshot must not affect the selection")
	}
}

func TestFilterForItem(t *testing.T) {
	toppings := []models.Topping{
		testTopping(t, 1, "Mushrooms", constants.ToppingCategoryVeggie, "1.50"),
		{ID: 2, Name: "Pepperoni", Category: constants.ToppingCategoryMeat, Price: money(t, "2.00"), ItemType: constants.ItemTypePizza, IsActive: true},
		{ID: 3, Name: "Ribeye", Category: constants.ToppingCategoryMeat, Price: money(t, "3.00"), ItemType: constants.ItemTypeCheesesteak, IsActive: true},
		{ID: 4, Name: "Ghost Pepper", Category: constants.ToppingCategoryVeggie, Price: money(t, "1.00"), ItemType: constants.ItemTypeBoth, IsActive: false},
	}

	filtered := FilterForItem(toppings, constants.ItemTypePizza)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 toppings for pizza, got: %d", len(filtered))
	}
	for _, topping := range filtered {
		if topping.ID == 3 || topping.ID == 4 {
			t.Fatalf("unexpected topping in pizza filter: %d", topping.ID)
		}
	}
}

func TestGroupByCategoryAlwaysHasAllBuckets(t *testing.T) {
	grouped := GroupByCategory([]models.Topping{
		testTopping(t, 1, "Mushrooms", constants.ToppingCategoryVeggie, "1.50"),
	})
	for _, category := range []string{
		constants.ToppingCategoryCheese,
		constants.ToppingCategoryMeat,
		constants.ToppingCategoryVeggie,
	} {
		if _, ok := grouped[category]; !ok {
			t.Fatalf("missing category bucket: %s", category)
		}
	}
	if len(grouped[constants.ToppingCategoryVeggie]) != 1 {
		t.Fatalf("expected 1 veggie topping, got: %d", len(grouped[constants.ToppingCategoryVeggie]))
	}
}

func TestToppingLabel(t *testing.T) {
	mushrooms := testTopping(t, 1, "Mushrooms", constants.ToppingCategoryVeggie, "1.50")
	onions := models.Topping{
		ID:          2,
		Name:        "Onions",
		Category:    constants.ToppingCategoryVeggie,
		Price:       money(t, "1.00"),
		ItemType:    constants.ItemTypeBoth,
		VeggieState: constants.VeggieStateBoth,
		IsActive:    true,
	}
	freeCheese := models.Topping{
		ID:       3,
		Name:     "Whiz",
		Category: constants.ToppingCategoryCheese,
		Price:    models.NewMoneyFromDecimal(decimal.Zero),
		ItemType: constants.ItemTypeCheesesteak,
		IsActive: true,
	}
	defaults := models.UintArray{1}

	t.Run("unselected keeps plain name", func(t *testing.T) {
		sel := NewToppingSelection()
		if got := ToppingLabel(mushrooms, sel, defaults); got != "Mushrooms (+$1.50)" {
			t.Fatalf("unexpected label: %q", got)
		}
	})

	t.Run("selected default gets extra prefix", func(t *testing.T) {
		sel := NewToppingSelection()
		sel.Toggle(mushrooms, nil)
		if got := ToppingLabel(mushrooms, sel, defaults); got != "XTRA-Mushrooms (+$1.50)" {
			t.Fatalf("unexpected label: %q", got)
		}
	})

	t.Run("selected non-default keeps plain name", func(t *testing.T) {
		sel := NewToppingSelection()
		sel.Toggle(onions, nil)
		if got := ToppingLabel(onions, sel, defaults); got != "Onions (+$1.00)" {
			t.Fatalf("unexpected label: %q", got)
		}
	})

	t.Run("grilled default stacks both prefixes", func(t *testing.T) {
		sel := NewToppingSelection()
		sel.Toggle(onions, boolPtr(true))
		grilledDefaults := models.UintArray{2}
		if got := ToppingLabel(onions, sel, grilledDefaults); got != "XTRA-Grilled Onions (+$1.00)" {
			t.Fatalf("unexpected label: %q", got)
		}
	})

	t.Run("zero price omits price suffix", func(t *testing.T) {
		sel := NewToppingSelection()
		sel.Toggle(freeCheese, nil)
		if got := ToppingLabel(freeCheese, sel, nil); got != "Whiz" {
			t.Fatalf("unexpected label: %q", got)
		}
	})
}
