package service

import (
	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/repository"
	"bakery-backoffice/internal/ws"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SalesService interface {
	ListStocks(username string) ([]model.SaleStock, error)
	GetStock(id uint) (*model.SaleStock, error)
	CreateStock(in *model.SaleStockInput) (*model.SaleStock, error)
	UpdateStock(id uint, in *model.SaleStockInput) (*model.SaleStock, error)
	DeleteStock(id uint) error

	ListSales(username string) ([]model.Sale, error)
	GetSale(id uint) (*model.Sale, error)
	CreateSale(in *model.SaleInput) (*model.Sale, error)
	UpdateSale(id uint, in *model.SaleInput) (*model.Sale, error)
	DeleteSale(id uint) error

	ListStockTransactions(saleStockID *uint) ([]model.SaleStockTransaction, error)
	GetStockTransaction(id uint) (*model.SaleStockTransaction, error)
	CreateStockTransaction(in *model.SaleStockTransactionInput) (*model.SaleStockTransaction, error)
	UpdateStockTransaction(id uint, in *model.SaleStockTransactionInput) (*model.SaleStockTransaction, error)
	DeleteStockTransaction(id uint) error
}

type salesService struct {
	stockRepo   repository.SaleStockRepository
	saleRepo    repository.SaleRepository
	stockTxRepo repository.SaleStockTransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSalesService(db *gorm.DB, hub *ws.Hub) SalesService {
	return &salesService{
		stockRepo:   repository.NewSaleStockRepo(db),
		saleRepo:    repository.NewSaleRepo(db),
		stockTxRepo: repository.NewSaleStockTransactionRepo(db),
		db:          db,
		wsHub:       hub,
	}
}

func (s *salesService) ListStocks(username string) ([]model.SaleStock, error) {
	stocks, err := s.stockRepo.FindAll(username)
	return stocks, storeError("sale stock", "list", err)
}

func (s *salesService) GetStock(id uint) (*model.SaleStock, error) {
	stock, err := s.stockRepo.FindByID(id)
	if err != nil {
		return nil, storeError("sale stock", "get", err)
	}
	return stock, nil
}

// writeStock persists stock and its mirror row in one transaction.
// create selects insert vs update and the mirror's transaction type.
func (s *salesService) writeStock(stock *model.SaleStock, create bool) error {
	kind := model.TxUpdate
	if create {
		kind = model.TxAddition
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		stocks := s.stockRepo.WithTx(tx)
		write := stocks.Update
		if create {
			write = stocks.Create
		}
		if err := write(stock); err != nil {
			return err
		}
		return s.stockTxRepo.WithTx(tx).Create(model.MirrorOf(stock, kind))
	})
	if err != nil {
		return storeError("sale stock", "write", err)
	}

	metrics.SaleStockMirrored.WithLabelValues(string(kind)).Inc()
	event := ws.EventSaleStockUpdated
	if create {
		event = ws.EventSaleStockAdded
	}
	s.wsHub.Publish(event, stock)
	return nil
}

func (s *salesService) CreateStock(in *model.SaleStockInput) (*model.SaleStock, error) {
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	stock := &model.SaleStock{}
	in.Apply(stock)
	if err := s.writeStock(stock, true); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *salesService) UpdateStock(id uint, in *model.SaleStockInput) (*model.SaleStock, error) {
	stock, err := s.GetStock(id)
	if err != nil {
		return nil, err
	}
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	in.Apply(stock)
	if err := s.writeStock(stock, false); err != nil {
		return nil, err
	}
	return stock, nil
}

// DeleteStock removes the stock and every transaction mirrored from it.
func (s *salesService) DeleteStock(id uint) error {
	var removedTxs int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		stocks := s.stockRepo.WithTx(tx)
		if _, err := stocks.FindByID(id); err != nil {
			return err
		}
		n, err := s.stockTxRepo.WithTx(tx).DeleteByStock(id)
		if err != nil {
			return err
		}
		removedTxs = n
		return stocks.Delete(id)
	})
	if err != nil {
		return storeError("sale stock", "delete", err)
	}

	metrics.Deleted("sale_stock", 1)
	metrics.Deleted("sale_stock_transaction", removedTxs)
	log.Info().Uint("sale_stock_id", id).Int64("transactions", removedTxs).Msg("sale stock deleted")
	return nil
}

func (s *salesService) ListSales(username string) ([]model.Sale, error) {
	sales, err := s.saleRepo.FindAll(username)
	return sales, storeError("sale", "list", err)
}

func (s *salesService) GetSale(id uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, storeError("sale", "get", err)
	}
	return sale, nil
}

func (s *salesService) CreateSale(in *model.SaleInput) (*model.Sale, error) {
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	sale := &model.Sale{}
	in.Apply(sale)
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, storeError("sale", "create", err)
	}
	return sale, nil
}

func (s *salesService) UpdateSale(id uint, in *model.SaleInput) (*model.Sale, error) {
	sale, err := s.GetSale(id)
	if err != nil {
		return nil, err
	}
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	in.Apply(sale)
	if err := s.saleRepo.Update(sale); err != nil {
		return nil, storeError("sale", "update", err)
	}
	return sale, nil
}

func (s *salesService) DeleteSale(id uint) error {
	if err := s.saleRepo.Delete(id); err != nil {
		return storeError("sale", "delete", err)
	}
	metrics.Deleted("sale", 1)
	return nil
}

func (s *salesService) ListStockTransactions(saleStockID *uint) ([]model.SaleStockTransaction, error) {
	txs, err := s.stockTxRepo.FindAll(saleStockID)
	return txs, storeError("sale stock transaction", "list", err)
}

func (s *salesService) GetStockTransaction(id uint) (*model.SaleStockTransaction, error) {
	t, err := s.stockTxRepo.FindByID(id)
	if err != nil {
		return nil, storeError("sale stock transaction", "get", err)
	}
	return t, nil
}

func (s *salesService) checkStockTransaction(in *model.SaleStockTransactionInput) error {
	verr := validate(in)
	if in.SaleStock != 0 {
		if _, err := s.GetStock(in.SaleStock); err != nil {
			if !isNotFound(err) {
				return err
			}
			verr.Add("sale_stock", "exists", "Invalid pk - object does not exist.")
		}
	}
	return verr.Err()
}

func (s *salesService) CreateStockTransaction(in *model.SaleStockTransactionInput) (*model.SaleStockTransaction, error) {
	if err := s.checkStockTransaction(in); err != nil {
		return nil, err
	}
	t := &model.SaleStockTransaction{}
	in.Apply(t)
	if err := s.stockTxRepo.Create(t); err != nil {
		return nil, storeError("sale stock transaction", "create", err)
	}
	return t, nil
}

func (s *salesService) UpdateStockTransaction(id uint, in *model.SaleStockTransactionInput) (*model.SaleStockTransaction, error) {
	t, err := s.GetStockTransaction(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkStockTransaction(in); err != nil {
		return nil, err
	}
	in.Apply(t)
	if err := s.stockTxRepo.Update(t); err != nil {
		return nil, storeError("sale stock transaction", "update", err)
	}
	return t, nil
}

func (s *salesService) DeleteStockTransaction(id uint) error {
	if err := s.stockTxRepo.Delete(id); err != nil {
		return storeError("sale stock transaction", "delete", err)
	}
	metrics.Deleted("sale_stock_transaction", 1)
	return nil
}
