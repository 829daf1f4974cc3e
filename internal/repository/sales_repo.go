package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/gorm"
)

type SaleStockRepository interface {
	WithTx(tx *gorm.DB) SaleStockRepository
	Create(stock *model.SaleStock) error
	FindAll(username string) ([]model.SaleStock, error)
	FindByID(id uint) (*model.SaleStock, error)
	Update(stock *model.SaleStock) error
	Delete(id uint) error
	Count() (int64, error)
}

type saleStockRepo struct {
	crud[model.SaleStock]
}

func NewSaleStockRepo(db *gorm.DB) SaleStockRepository {
	return &saleStockRepo{crud[model.SaleStock]{db}}
}

func (r *saleStockRepo) WithTx(tx *gorm.DB) SaleStockRepository {
	return NewSaleStockRepo(tx)
}

func (r *saleStockRepo) FindAll(username string) ([]model.SaleStock, error) {
	var stocks []model.SaleStock
	err := r.db.Scopes(OwnedBy(username)).Order("id ASC").Find(&stocks).Error
	return stocks, err
}

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll(username string) ([]model.Sale, error)
	FindByID(id uint) (*model.Sale, error)
	Update(sale *model.Sale) error
	Delete(id uint) error
	Count() (int64, error)
}

type saleRepo struct {
	crud[model.Sale]
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{crud[model.Sale]{db}}
}

func (r *saleRepo) FindAll(username string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Scopes(OwnedBy(username)).Order("id ASC").Find(&sales).Error
	return sales, err
}

type SaleStockTransactionRepository interface {
	WithTx(tx *gorm.DB) SaleStockTransactionRepository
	Create(t *model.SaleStockTransaction) error
	FindAll(saleStockID *uint) ([]model.SaleStockTransaction, error)
	FindByID(id uint) (*model.SaleStockTransaction, error)
	Update(t *model.SaleStockTransaction) error
	Delete(id uint) error
	DeleteByStock(saleStockID uint) (int64, error)
	Count() (int64, error)
}

type saleStockTxRepo struct {
	crud[model.SaleStockTransaction]
}

func NewSaleStockTransactionRepo(db *gorm.DB) SaleStockTransactionRepository {
	return &saleStockTxRepo{crud[model.SaleStockTransaction]{db}}
}

func (r *saleStockTxRepo) WithTx(tx *gorm.DB) SaleStockTransactionRepository {
	return NewSaleStockTransactionRepo(tx)
}

func (r *saleStockTxRepo) FindAll(saleStockID *uint) ([]model.SaleStockTransaction, error) {
	var txs []model.SaleStockTransaction
	err := r.db.Scopes(whereRef("sale_stock_id", saleStockID)).Order("id ASC").Find(&txs).Error
	return txs, err
}

func (r *saleStockTxRepo) DeleteByStock(saleStockID uint) (int64, error) {
	res := r.db.Where("sale_stock_id = ?", saleStockID).Delete(&model.SaleStockTransaction{})
	return res.RowsAffected, res.Error
}
