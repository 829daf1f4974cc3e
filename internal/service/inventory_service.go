package service

import (
	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/repository"
	"bakery-backoffice/internal/ws"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// historyDateLayout is the day granularity used by the chart series.
const historyDateLayout = "2006-01-02"

type InventoryService interface {
	ListItems(username string) ([]model.InventoryItem, error)
	GetItem(id uint) (*model.InventoryItem, error)
	CreateItem(in *model.InventoryItemInput) (*model.InventoryItem, error)
	UpdateItem(id uint, in *model.InventoryItemInput) (*model.InventoryItem, error)
	DeleteItem(id uint) error

	ListTransactions(productID *uint) ([]model.InventoryTransaction, error)
	GetTransaction(id uint) (*model.InventoryTransaction, error)
	RecordTransaction(in *model.InventoryTransactionInput) (*model.InventoryTransaction, error)
	UpdateTransaction(id uint, in *model.InventoryTransactionInput) (*model.InventoryTransaction, error)
	DeleteTransaction(id uint) error

	History() ([]model.HistoricalPoint, error)
}

type inventoryService struct {
	itemRepo       repository.InventoryRepository
	txRepo         repository.TransactionRepository
	productionRepo repository.ProductionRepository
	db             *gorm.DB
	wsHub          *ws.Hub
}

func NewInventoryService(db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		itemRepo:       repository.NewInventoryRepo(db),
		txRepo:         repository.NewTransactionRepo(db),
		productionRepo: repository.NewProductionRepo(db),
		db:             db,
		wsHub:          hub,
	}
}

func (s *inventoryService) ListItems(username string) ([]model.InventoryItem, error) {
	items, err := s.itemRepo.FindAll(username)
	return items, storeError("inventory item", "list", err)
}

func (s *inventoryService) GetItem(id uint) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, storeError("inventory item", "get", err)
	}
	return item, nil
}

func (s *inventoryService) CreateItem(in *model.InventoryItemInput) (*model.InventoryItem, error) {
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	item := &model.InventoryItem{}
	in.Apply(item)
	if err := s.itemRepo.Create(item); err != nil {
		return nil, storeError("inventory item", "create", err)
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(id uint, in *model.InventoryItemInput) (*model.InventoryItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	in.Apply(item)
	if err := s.itemRepo.Update(item); err != nil {
		return nil, storeError("inventory item", "update", err)
	}
	return item, nil
}

// DeleteItem removes the item together with its transactions and its
// raw-material memberships in production records.
func (s *inventoryService) DeleteItem(id uint) error {
	var removedTxs int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := s.itemRepo.WithTx(tx)
		if _, err := items.FindByID(id); err != nil {
			return err
		}
		if err := s.productionRepo.WithTx(tx).DetachMaterial(id); err != nil {
			return err
		}
		n, err := s.txRepo.WithTx(tx).DeleteByProduct(id)
		if err != nil {
			return err
		}
		removedTxs = n
		return items.Delete(id)
	})
	if err != nil {
		return storeError("inventory item", "delete", err)
	}

	metrics.Deleted("inventory_item", 1)
	metrics.Deleted("inventory_transaction", removedTxs)
	log.Info().Uint("item_id", id).Int64("transactions", removedTxs).Msg("inventory item deleted")
	return nil
}

func (s *inventoryService) ListTransactions(productID *uint) ([]model.InventoryTransaction, error) {
	txs, err := s.txRepo.FindAll(productID)
	return txs, storeError("inventory transaction", "list", err)
}

func (s *inventoryService) GetTransaction(id uint) (*model.InventoryTransaction, error) {
	t, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, storeError("inventory transaction", "get", err)
	}
	return t, nil
}

// checkTransaction validates in, including that the referenced item exists.
func (s *inventoryService) checkTransaction(in *model.InventoryTransactionInput) error {
	verr := validate(in)
	if in.Product != 0 {
		if _, err := s.itemRepo.FindByID(in.Product); err != nil {
			if err := storeError("inventory item", "get", err); !isNotFound(err) {
				return err
			}
			verr.Add("product", "exists", "Invalid pk - object does not exist.")
		}
	}
	return verr.Err()
}

func (s *inventoryService) RecordTransaction(in *model.InventoryTransactionInput) (*model.InventoryTransaction, error) {
	if err := s.checkTransaction(in); err != nil {
		return nil, err
	}
	t := &model.InventoryTransaction{}
	in.Apply(t)
	if err := s.txRepo.Create(t); err != nil {
		return nil, storeError("inventory transaction", "create", err)
	}
	s.wsHub.Publish(ws.EventInventoryTransaction, t)
	return t, nil
}

func (s *inventoryService) UpdateTransaction(id uint, in *model.InventoryTransactionInput) (*model.InventoryTransaction, error) {
	t, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransaction(in); err != nil {
		return nil, err
	}
	in.Apply(t)
	if err := s.txRepo.Update(t); err != nil {
		return nil, storeError("inventory transaction", "update", err)
	}
	return t, nil
}

func (s *inventoryService) DeleteTransaction(id uint) error {
	if err := s.txRepo.Delete(id); err != nil {
		return storeError("inventory transaction", "delete", err)
	}
	metrics.Deleted("inventory_transaction", 1)
	return nil
}

// History emits one chart row per transaction. The price is the item's
// current price, not the snapshot stored on the transaction.
func (s *inventoryService) History() ([]model.HistoricalPoint, error) {
	txs, err := s.txRepo.FindWithProduct()
	if err != nil {
		return nil, storeError("inventory transaction", "history", err)
	}
	points := make([]model.HistoricalPoint, 0, len(txs))
	for _, t := range txs {
		if t.Product == nil {
			continue
		}
		points = append(points, model.HistoricalPoint{
			Date:      t.TransactionDate.Format(historyDateLayout),
			Product:   t.Product.Name,
			Quantity:  t.Quantity,
			UnitPrice: t.Product.UnitPrice.String(),
		})
	}
	return points, nil
}
