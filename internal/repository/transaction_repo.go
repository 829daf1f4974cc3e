package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Create(tx *model.InventoryTransaction) error
	FindAll(productID *uint) ([]model.InventoryTransaction, error)
	FindByID(id uint) (*model.InventoryTransaction, error)
	Update(tx *model.InventoryTransaction) error
	Delete(id uint) error
	DeleteByProduct(productID uint) (int64, error)
	FindWithProduct() ([]model.InventoryTransaction, error)
	Count() (int64, error)
}

type transactionRepo struct {
	crud[model.InventoryTransaction]
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{crud[model.InventoryTransaction]{db}}
}

func (r *transactionRepo) WithTx(tx *gorm.DB) TransactionRepository {
	return NewTransactionRepo(tx)
}

func (r *transactionRepo) FindAll(productID *uint) ([]model.InventoryTransaction, error) {
	var txs []model.InventoryTransaction
	err := r.db.Scopes(whereRef("product_id", productID)).Order("id ASC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) DeleteByProduct(productID uint) (int64, error) {
	res := r.db.Where("product_id = ?", productID).Delete(&model.InventoryTransaction{})
	return res.RowsAffected, res.Error
}

// FindWithProduct loads every transaction joined to its current item row.
func (r *transactionRepo) FindWithProduct() ([]model.InventoryTransaction, error) {
	var txs []model.InventoryTransaction
	err := r.db.Joins("Product").Find(&txs).Error
	return txs, err
}
