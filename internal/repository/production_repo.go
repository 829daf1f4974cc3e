package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// productionMaterialsTable is the many-to-many join between production records and items.
const productionMaterialsTable = "production_raw_materials"

type ProductionRepository interface {
	WithTx(tx *gorm.DB) ProductionRepository
	Create(rec *model.ProductionRecord) error
	FindAll(username string) ([]model.ProductionRecord, error)
	FindByID(id uint) (*model.ProductionRecord, error)
	Update(rec *model.ProductionRecord) error
	Delete(id uint) error
	DetachMaterial(itemID uint) error
	Count() (int64, error)
}

type productionRepo struct {
	crud[model.ProductionRecord]
}

func NewProductionRepo(db *gorm.DB) ProductionRepository {
	return &productionRepo{crud[model.ProductionRecord]{db}}
}

func (r *productionRepo) WithTx(tx *gorm.DB) ProductionRepository {
	return NewProductionRepo(tx)
}

func preloadMaterials(db *gorm.DB) *gorm.DB {
	return db.Preload("RawMaterials", func(db *gorm.DB) *gorm.DB {
		return db.Order("inventory_items.id ASC")
	})
}

// Create inserts the record and its join rows without touching the items themselves.
func (r *productionRepo) Create(rec *model.ProductionRecord) error {
	return r.db.Omit("RawMaterials.*").Create(rec).Error
}

func (r *productionRepo) FindAll(username string) ([]model.ProductionRecord, error) {
	var recs []model.ProductionRecord
	err := r.db.Scopes(OwnedBy(username), preloadMaterials).Order("id ASC").Find(&recs).Error
	return recs, err
}

func (r *productionRepo) FindByID(id uint) (*model.ProductionRecord, error) {
	var rec model.ProductionRecord
	if err := r.db.Scopes(preloadMaterials).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update saves the scalar columns and replaces the raw material set with rec.RawMaterials.
func (r *productionRepo) Update(rec *model.ProductionRecord) error {
	if err := r.db.Omit("RawMaterials").Save(rec).Error; err != nil {
		return err
	}
	if len(rec.RawMaterials) == 0 {
		return r.db.Model(rec).Association("RawMaterials").Clear()
	}
	return r.db.Model(rec).Association("RawMaterials").Replace(rec.RawMaterials)
}

func (r *productionRepo) Delete(id uint) error {
	if err := r.db.Exec("DELETE FROM "+productionMaterialsTable+" WHERE production_record_id = ?", id).Error; err != nil {
		return err
	}
	return r.crud.Delete(id)
}

// DetachMaterial removes an item from every production record's raw material set.
// Records with one quantity per material lose the quantity at the item's position.
func (r *productionRepo) DetachMaterial(itemID uint) error {
	var recs []model.ProductionRecord
	members := r.db.Session(&gorm.Session{NewDB: true}).
		Table(productionMaterialsTable).
		Select("production_record_id").
		Where("inventory_item_id = ?", itemID)
	if err := r.db.Scopes(preloadMaterials).Where("id IN (?)", members).Find(&recs).Error; err != nil {
		return err
	}

	for i := range recs {
		rec := &recs[i]
		if len(rec.QuantityUsed) != len(rec.RawMaterials) {
			continue
		}
		for pos, id := range rec.RawMaterialIDs() {
			if id != itemID {
				continue
			}
			used := append(append([]int{}, rec.QuantityUsed[:pos]...), rec.QuantityUsed[pos+1:]...)
			err := r.db.Model(&model.ProductionRecord{}).Where("id = ?", rec.ID).
				Update("quantity_used", datatypes.JSONSlice[int](used)).Error
			if err != nil {
				return err
			}
			break
		}
	}

	return r.db.Exec("DELETE FROM "+productionMaterialsTable+" WHERE inventory_item_id = ?", itemID).Error
}
