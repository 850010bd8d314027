package models

import (
	"time"

	"gorm.io/gorm"
)

// Item 菜单单品表（披萨 / 芝士牛肉堡）
type Item struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                    // 主键
	CategoryID        uint           `gorm:"not null;index" json:"category_id"`                       // 分类ID
	Slug              string         `gorm:"uniqueIndex;not null" json:"slug"`                        // 唯一标识
	Name              string         `gorm:"type:varchar(200);not null" json:"name"`                  // 名称
	Description       string         `gorm:"type:text" json:"description"`                            // 描述
	BasePrice         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"` // 基础价格
	ItemType          string         `gorm:"type:varchar(20);not null;index" json:"item_type"`        // 品类（pizza/cheesesteak）
	ImageURL          string         `gorm:"type:varchar(500)" json:"image_url"`                      // 图片地址
	DefaultToppingIDs UintArray      `gorm:"type:json" json:"default_topping_ids"`                    // 基础价已包含的配料ID
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`                     // 是否上架
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`                       // 排序权重
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	// 关联
	Category Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Sizes    []ItemSize `gorm:"foreignKey:ItemID" json:"sizes,omitempty"`        // 规格列表
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

// ItemSize 单品规格表（规格名称文本编码配料价格档位）
type ItemSize struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	ItemID          uint           `gorm:"not null;index" json:"item_id"`                                 // 单品ID
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`                        // 规格名称
	PriceAdjustment Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_adjustment"` // 基础价加价（不参与配料倍率）
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                             // 排序权重
	CreatedAt       time.Time      `json:"created_at"`                                                    // 创建时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (ItemSize) TableName() string {
	return "item_sizes"
}
