package repository

import (
	"bakery-backoffice/internal/model"

	"gorm.io/gorm"
)

// crud is the record-store core the entity repositories are built on.
type crud[T any] struct {
	db *gorm.DB
}

func (c crud[T]) Create(v *T) error {
	return c.db.Create(v).Error
}

func (c crud[T]) Update(v *T) error {
	return c.db.Save(v).Error
}

func (c crud[T]) FindByID(id uint) (*T, error) {
	var v T
	if err := c.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes one row by primary key. A missing row is gorm.ErrRecordNotFound.
func (c crud[T]) Delete(id uint) error {
	res := c.db.Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c crud[T]) Count() (int64, error) {
	var n int64
	err := c.db.Model(new(T)).Count(&n).Error
	return n, err
}

// OwnedBy narrows a query to rows whose owner tag equals username.
// An empty username leaves the query unfiltered.
func OwnedBy(username string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if username == "" {
			return db
		}
		return db.Where(model.OwnerColumn+" = ?", username)
	}
}

// whereRef narrows a query to rows referencing id through column; nil leaves it unfiltered.
func whereRef(column string, id *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where(column+" = ?", *id)
	}
}
