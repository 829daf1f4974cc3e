package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	WithTx(tx *gorm.DB) AuditRepository
	Create(entry *model.AuditLog) error
	FindAll() ([]model.AuditLog, error)
	FindByID(id uint) (*model.AuditLog, error)
	Delete(id uint) error
	DetachUser(userID uint) error
	Count() (int64, error)
}

type auditRepo struct {
	crud[model.AuditLog]
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{crud[model.AuditLog]{db}}
}

func (r *auditRepo) WithTx(tx *gorm.DB) AuditRepository {
	return NewAuditRepo(tx)
}

func (r *auditRepo) Create(entry *model.AuditLog) error {
	return r.db.Omit("User").Create(entry).Error
}

// FindAll returns entries newest first.
func (r *auditRepo) FindAll() ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Preload("User.Profile").Order("timestamp DESC, log_id DESC").Find(&entries).Error
	return entries, err
}

func (r *auditRepo) FindByID(id uint) (*model.AuditLog, error) {
	var entry model.AuditLog
	if err := r.db.Preload("User.Profile").First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DetachUser nulls the actor on every entry written by userID.
func (r *auditRepo) DetachUser(userID uint) error {
	return r.db.Model(&model.AuditLog{}).Where("user_id = ?", userID).Update("user_id", nil).Error
}
