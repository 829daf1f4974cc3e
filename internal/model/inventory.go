package model

import "time"

type TransactionType string

const (
	TxAddition TransactionType = "Addition"
	TxRemoval  TransactionType = "Removal"
	TxUpdate   TransactionType = "Update"
)

// DefaultCategory is applied when an item is created without a category.
const DefaultCategory = "rawmaterial"

// InventoryItem is a raw material (or any stocked item) with its current price.
type InventoryItem struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Category     string `gorm:"type:varchar(50);not null" json:"category"`
	UnitPrice    Money  `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	ReorderLevel int    `gorm:"not null" json:"reorder_level"`
	Owner
}

// InventoryTransaction is one movement of an item. Rows go away with their item.
type InventoryTransaction struct {
	BaseModel
	ProductID       uint            `gorm:"not null;index" json:"product"`
	Product         *InventoryItem  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	TransactionType TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	TransactionDate time.Time       `gorm:"autoCreateTime" json:"transaction_date"`
	Remarks         string          `gorm:"type:text" json:"remarks"`
	UnitPrice       *Money          `gorm:"type:decimal(10,2)" json:"unit_price"` // price snapshot, optional
	Owner
}

type InventoryItemInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Category     string `json:"category" validate:"max=50"`
	UnitPrice    *Money `json:"unit_price" validate:"required,money"`
	ReorderLevel *int   `json:"reorder_level" validate:"required"`
	Username     string `json:"username" validate:"max=100"`
}

// Apply copies a validated input onto item.
func (in *InventoryItemInput) Apply(item *InventoryItem) {
	item.Name = in.Name
	item.Category = in.Category
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	item.UnitPrice = *in.UnitPrice
	item.ReorderLevel = *in.ReorderLevel
	item.Username = in.Username
}

// Input returns the item's current state as an input, the base for partial updates.
func (item *InventoryItem) Input() InventoryItemInput {
	price := item.UnitPrice
	level := item.ReorderLevel
	return InventoryItemInput{
		Name:         item.Name,
		Category:     item.Category,
		UnitPrice:    &price,
		ReorderLevel: &level,
		Username:     item.Username,
	}
}

type InventoryTransactionInput struct {
	Product         uint            `json:"product" validate:"required"`
	TransactionType TransactionType `json:"transaction_type" validate:"required,oneof=Addition Removal Update"`
	Quantity        int             `json:"quantity" validate:"required,gt=0"`
	Remarks         string          `json:"remarks"`
	UnitPrice       *Money          `json:"unit_price" validate:"omitempty,money"`
	Username        string          `json:"username" validate:"max=100"`
}

func (in *InventoryTransactionInput) Apply(tx *InventoryTransaction) {
	tx.ProductID = in.Product
	tx.TransactionType = in.TransactionType
	tx.Quantity = in.Quantity
	tx.Remarks = in.Remarks
	tx.UnitPrice = in.UnitPrice
	tx.Username = in.Username
}

func (tx *InventoryTransaction) Input() InventoryTransactionInput {
	return InventoryTransactionInput{
		Product:         tx.ProductID,
		TransactionType: tx.TransactionType,
		Quantity:        tx.Quantity,
		Remarks:         tx.Remarks,
		UnitPrice:       tx.UnitPrice,
		Username:        tx.Username,
	}
}

// HistoricalPoint is one chart row: a transaction joined to its item.
type HistoricalPoint struct {
	Date      string `json:"date"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}
