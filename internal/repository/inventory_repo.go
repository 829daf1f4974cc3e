package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/gorm"
)

type InventoryRepository interface {
	WithTx(tx *gorm.DB) InventoryRepository
	Create(item *model.InventoryItem) error
	FindAll(username string) ([]model.InventoryItem, error)
	FindByID(id uint) (*model.InventoryItem, error)
	FindByIDs(ids []uint) ([]model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	Delete(id uint) error
	Count() (int64, error)
}

type inventoryRepo struct {
	crud[model.InventoryItem]
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{crud[model.InventoryItem]{db}}
}

func (r *inventoryRepo) WithTx(tx *gorm.DB) InventoryRepository {
	return NewInventoryRepo(tx)
}

func (r *inventoryRepo) FindAll(username string) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Scopes(OwnedBy(username)).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByIDs(ids []uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&items).Error
	return items, err
}
