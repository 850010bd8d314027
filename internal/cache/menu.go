package cache

import (
	"context"
	"fmt"
)

// 菜单缓存键。目录数据读多写少，按查询维度分键，写入走整体失效。
const (
	keyMenuCategories = "menu:categories"
)

// MenuCategoriesKey 分类列表缓存键
func MenuCategoriesKey() string {
	return keyMenuCategories
}

// MenuItemsKey 单品列表缓存键（按分类）
func MenuItemsKey(categoryID uint) string {
	return fmt.Sprintf("menu:items:%d", categoryID)
}

// MenuItemKey 单品详情缓存键（按 slug）
func MenuItemKey(slug string) string {
	return fmt.Sprintf("menu:item:%s", slug)
}

// MenuToppingsKey 配料列表缓存键（按品类）
func MenuToppingsKey(itemType string) string {
	return fmt.Sprintf("menu:toppings:%s", itemType)
}

// InvalidateMenu 失效菜单缓存。分键无法穷举，按前缀批量删除。
func InvalidateMenu(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	client := Client()
	iter := client.Scan(ctx, 0, buildKey("menu:*"), 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}
