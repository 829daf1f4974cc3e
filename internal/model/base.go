package model

// BaseModel carries the auto-incrementing identity shared by the ledger records.
type BaseModel struct {
	ID uint `gorm:"primaryKey" json:"id"`
}

// Owner is the free-text owner tag used by list filters. It is not an access control.
type Owner struct {
	Username string `gorm:"type:varchar(100);not null;default:'';index" json:"username"`
}

// OwnerColumn is the column the owner filter compares against.
const OwnerColumn = "username"

// All lists every persisted record, in migration order.
func All() []interface{} {
	return []interface{}{
		&InventoryItem{},
		&InventoryTransaction{},
		&ProductionRecord{},
		&SaleStock{},
		&Sale{},
		&SaleStockTransaction{},
		&User{},
		&UserProfile{},
		&AuthToken{},
		&AuditLog{},
	}
}
