package repository

import (
	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/models"

	"gorm.io/gorm"
)

// ToppingRepository 配料数据访问接口
type ToppingRepository interface {
	ListActiveForItemType(itemType string) ([]models.Topping, error)
	GetByIDs(ids []uint) ([]models.Topping, error)
}

// GormToppingRepository GORM 实现
type GormToppingRepository struct {
	db *gorm.DB
}

// NewToppingRepository 创建配料仓库
func NewToppingRepository(db *gorm.DB) *GormToppingRepository {
	return &GormToppingRepository{db: db}
}

// ListActiveForItemType 获取指定品类可用的配料（含通用配料）
func (r *GormToppingRepository) ListActiveForItemType(itemType string) ([]models.Topping, error) {
	var toppings []models.Topping
	err := r.db.
		Where("is_active = ?", true).
		Where("item_type = ? OR item_type = ?", itemType, constants.ItemTypeBoth).
		Order("category asc, sort_order asc, id asc").
		Find(&toppings).Error
	if err != nil {
		return nil, err
	}
	return toppings, nil
}

// GetByIDs 按 ID 集合获取配料
func (r *GormToppingRepository) GetByIDs(ids []uint) ([]models.Topping, error) {
	if len(ids) == 0 {
		return []models.Topping{}, nil
	}
	var toppings []models.Topping
	if err := r.db.Where("id IN ?", ids).Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}
