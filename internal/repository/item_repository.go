package repository

import (
	"errors"

	"github.com/phillyslice/phillyslice/internal/models"

	"gorm.io/gorm"
)

// ItemRepository 单品数据访问接口
type ItemRepository interface {
	List(categoryID uint) ([]models.Item, error)
	GetByID(id uint) (*models.Item, error)
	GetBySlug(slug string) (*models.Item, error)
	GetSize(itemID, sizeID uint) (*models.ItemSize, error)
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建单品仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// List 获取上架单品（categoryID 为 0 时不过滤分类）
func (r *GormItemRepository) List(categoryID uint) ([]models.Item, error) {
	query := r.db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_sizes.sort_order asc, item_sizes.id asc")
	}).Preload("Category").Where("is_active = ?", true)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	var items []models.Item
	if err := query.Order("sort_order asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 按 ID 获取单品（含规格）
func (r *GormItemRepository) GetByID(id uint) (*models.Item, error) {
	return r.getBy("id = ?", id)
}

// GetBySlug 按 slug 获取单品（含规格）
func (r *GormItemRepository) GetBySlug(slug string) (*models.Item, error) {
	return r.getBy("slug = ?", slug)
}

func (r *GormItemRepository) getBy(cond string, arg interface{}) (*models.Item, error) {
	var item models.Item
	err := r.db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_sizes.sort_order asc, item_sizes.id asc")
	}).Preload("Category").Where(cond, arg).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetSize 获取单品下的指定规格
func (r *GormItemRepository) GetSize(itemID, sizeID uint) (*models.ItemSize, error) {
	var size models.ItemSize
	err := r.db.Where("item_id = ? AND id = ?", itemID, sizeID).First(&size).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &size, nil
}
