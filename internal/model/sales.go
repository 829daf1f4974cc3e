package model

import "time"

// Remarks written on mirrored sale stock transactions.
const (
	RemarksStockAdded   = "Stock added"
	RemarksStockUpdated = "Updated stock"
)

// SaleStock is the current stock intake record for a product.
type SaleStock struct {
	BaseModel
	ProductID        string    `gorm:"type:varchar(255)" json:"product_id"`
	QuantityObtained int       `gorm:"not null" json:"quantity_obtained"`
	StockAmount      Money     `gorm:"type:decimal(10,2);not null" json:"stock_amount"`
	StockDate        time.Time `gorm:"autoCreateTime" json:"stock_date"`
	Owner
}

// Sale is a completed sale. It references nothing.
type Sale struct {
	BaseModel
	ProductID    string    `gorm:"type:varchar(255)" json:"product_id"`
	QuantitySold int       `gorm:"not null" json:"quantity_sold"`
	SalesAmount  Money     `gorm:"type:decimal(10,2);not null" json:"sales_amount"`
	SalesDate    time.Time `gorm:"autoCreateTime" json:"sales_date"`
	Owner
}

// SaleStockTransaction is the ledger row written for each SaleStock create or update.
type SaleStockTransaction struct {
	BaseModel
	SaleStockID      uint            `gorm:"not null;index" json:"sale_stock"`
	SaleStock        *SaleStock      `gorm:"foreignKey:SaleStockID;constraint:OnDelete:CASCADE" json:"-"`
	TransactionType  TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type"`
	ProductID        string          `gorm:"type:varchar(255)" json:"product_id"`
	QuantityObtained int             `gorm:"not null" json:"quantity_obtained"`
	StockAmount      Money           `gorm:"type:decimal(10,2);not null" json:"stock_amount"`
	StockDate        time.Time       `gorm:"autoCreateTime" json:"stock_date"`
	Remarks          string          `gorm:"type:text" json:"remarks"`
	Owner
}

// MirrorOf builds the ledger row describing a write to stock.
// stock must already be persisted.
func MirrorOf(stock *SaleStock, kind TransactionType) *SaleStockTransaction {
	remarks := RemarksStockAdded
	if kind == TxUpdate {
		remarks = RemarksStockUpdated
	}
	return &SaleStockTransaction{
		SaleStockID:      stock.ID,
		TransactionType:  kind,
		ProductID:        stock.ProductID,
		QuantityObtained: stock.QuantityObtained,
		StockAmount:      stock.StockAmount,
		StockDate:        stock.StockDate,
		Remarks:          remarks,
		Owner:            Owner{Username: stock.Username},
	}
}

type SaleStockInput struct {
	ProductID        string `json:"product_id" validate:"max=255"`
	QuantityObtained int    `json:"quantity_obtained" validate:"required,gt=0"`
	StockAmount      *Money `json:"stock_amount" validate:"omitempty,money"`
	Username         string `json:"username" validate:"max=100"`
}

func (in *SaleStockInput) Apply(s *SaleStock) {
	s.ProductID = in.ProductID
	s.QuantityObtained = in.QuantityObtained
	s.StockAmount = Money{}
	if in.StockAmount != nil {
		s.StockAmount = *in.StockAmount
	}
	s.Username = in.Username
}

func (s *SaleStock) Input() SaleStockInput {
	amount := s.StockAmount
	return SaleStockInput{
		ProductID:        s.ProductID,
		QuantityObtained: s.QuantityObtained,
		StockAmount:      &amount,
		Username:         s.Username,
	}
}

type SaleInput struct {
	ProductID    string `json:"product_id" validate:"max=255"`
	QuantitySold int    `json:"quantity_sold" validate:"required,gt=0"`
	SalesAmount  *Money `json:"sales_amount" validate:"omitempty,money"`
	Username     string `json:"username" validate:"max=100"`
}

func (in *SaleInput) Apply(s *Sale) {
	s.ProductID = in.ProductID
	s.QuantitySold = in.QuantitySold
	s.SalesAmount = Money{}
	if in.SalesAmount != nil {
		s.SalesAmount = *in.SalesAmount
	}
	s.Username = in.Username
}

func (s *Sale) Input() SaleInput {
	amount := s.SalesAmount
	return SaleInput{
		ProductID:    s.ProductID,
		QuantitySold: s.QuantitySold,
		SalesAmount:  &amount,
		Username:     s.Username,
	}
}

type SaleStockTransactionInput struct {
	SaleStock        uint            `json:"sale_stock" validate:"required"`
	TransactionType  TransactionType `json:"transaction_type" validate:"required,oneof=Addition Update"`
	ProductID        string          `json:"product_id" validate:"max=255"`
	QuantityObtained int             `json:"quantity_obtained" validate:"required,gt=0"`
	StockAmount      *Money          `json:"stock_amount" validate:"omitempty,money"`
	Remarks          string          `json:"remarks"`
	Username         string          `json:"username" validate:"max=100"`
}

func (in *SaleStockTransactionInput) Apply(t *SaleStockTransaction) {
	t.SaleStockID = in.SaleStock
	t.TransactionType = in.TransactionType
	t.ProductID = in.ProductID
	t.QuantityObtained = in.QuantityObtained
	t.StockAmount = Money{}
	if in.StockAmount != nil {
		t.StockAmount = *in.StockAmount
	}
	t.Remarks = in.Remarks
	t.Username = in.Username
}

func (t *SaleStockTransaction) Input() SaleStockTransactionInput {
	amount := t.StockAmount
	return SaleStockTransactionInput{
		SaleStock:        t.SaleStockID,
		TransactionType:  t.TransactionType,
		ProductID:        t.ProductID,
		QuantityObtained: t.QuantityObtained,
		StockAmount:      &amount,
		Remarks:          t.Remarks,
		Username:         t.Username,
	}
}
