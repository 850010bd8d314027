package models

import (
	"time"

	"gorm.io/gorm"
)

// Topping 配料表
type Topping struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`             // 名称
	Category    string         `gorm:"type:varchar(20);not null;index" json:"category"`    // 分类（cheese/meat/veggie）
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价（按规格倍率缩放）
	ItemType    string         `gorm:"type:varchar(20);not null;index" json:"item_type"`   // 适用品类（pizza/cheesesteak/both）
	VeggieState string         `gorm:"type:varchar(20)" json:"veggie_state,omitempty"`     // 做法（natural/grilled/both，非蔬菜为空）
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                // 是否可选
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Topping) TableName() string {
	return "toppings"
}

// HasDualState 判断配料是否同时支持生鲜/烤制两种做法
func (t Topping) HasDualState() bool {
	return t.VeggieState == "both"
}
