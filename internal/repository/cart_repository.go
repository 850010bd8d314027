package repository

import (
	"errors"

	"github.com/phillyslice/phillyslice/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetBySessionToken(token string) (*models.Cart, error)
	Save(cart *models.Cart) error
	DeleteBySessionToken(token string) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetBySessionToken 按会话标识获取购物车（不存在时返回 nil）
func (r *GormCartRepository) GetBySessionToken(token string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("session_token = ?", token).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save 保存购物车快照（整体后写覆盖）
func (r *GormCartRepository) Save(cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	return r.db.Save(cart).Error
}

// DeleteBySessionToken 删除会话购物车
func (r *GormCartRepository) DeleteBySessionToken(token string) error {
	return r.db.Where("session_token = ?", token).Delete(&models.Cart{}).Error
}
