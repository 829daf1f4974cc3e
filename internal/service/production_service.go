package service

import (
	"fmt"

	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/repository"

	"gorm.io/gorm"
)

type ProductionService interface {
	List(username string) ([]model.ProductionRecord, error)
	Get(id uint) (*model.ProductionRecord, error)
	Create(in *model.ProductionRecordInput) (*model.ProductionRecord, error)
	Update(id uint, in *model.ProductionRecordInput) (*model.ProductionRecord, error)
	Delete(id uint) error
}

type productionService struct {
	repo     repository.ProductionRepository
	itemRepo repository.InventoryRepository
	db       *gorm.DB
}

func NewProductionService(db *gorm.DB) ProductionService {
	return &productionService{
		repo:     repository.NewProductionRepo(db),
		itemRepo: repository.NewInventoryRepo(db),
		db:       db,
	}
}

func (s *productionService) List(username string) ([]model.ProductionRecord, error) {
	recs, err := s.repo.FindAll(username)
	return recs, storeError("production record", "list", err)
}

func (s *productionService) Get(id uint) (*model.ProductionRecord, error) {
	rec, err := s.repo.FindByID(id)
	if err != nil {
		return nil, storeError("production record", "get", err)
	}
	return rec, nil
}

// materials validates in and resolves its raw materials, ordered by id.
func (s *productionService) materials(in *model.ProductionRecordInput) ([]model.InventoryItem, error) {
	verr := validate(in)
	if len(in.QuantityUsed) > 0 && len(in.QuantityUsed) != len(in.RawMaterials) {
		verr.Add("quantityUsed", "len",
			fmt.Sprintf("Expected %d quantities, one per raw material.", len(in.RawMaterials)))
	}
	if verr.Err() != nil {
		return nil, verr
	}

	in.Normalize()
	items, err := s.itemRepo.FindByIDs(in.RawMaterials)
	if err != nil {
		return nil, storeError("inventory item", "get", err)
	}
	found := make(map[uint]bool, len(items))
	for _, it := range items {
		found[it.ID] = true
	}
	for _, id := range in.RawMaterials {
		if !found[id] {
			verr.Add("rawMaterials", "exists", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *productionService) Create(in *model.ProductionRecordInput) (*model.ProductionRecord, error) {
	items, err := s.materials(in)
	if err != nil {
		return nil, err
	}
	rec := &model.ProductionRecord{RawMaterials: items}
	in.Apply(rec)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(rec)
	})
	if err != nil {
		return nil, storeError("production record", "create", err)
	}
	return s.Get(rec.ID)
}

func (s *productionService) Update(id uint, in *model.ProductionRecordInput) (*model.ProductionRecord, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	items, err := s.materials(in)
	if err != nil {
		return nil, err
	}
	in.Apply(rec)
	rec.RawMaterials = items

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(rec)
	})
	if err != nil {
		return nil, storeError("production record", "update", err)
	}
	return s.Get(id)
}

func (s *productionService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return storeError("production record", "delete", err)
	}
	metrics.Deleted("production_record", 1)
	return nil
}
