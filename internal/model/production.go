package model

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

// ProductionRecord is a production run. QuantityUsed runs parallel to RawMaterials,
// both ordered by raw material id.
type ProductionRecord struct {
	BaseModel
	ProductName      string          `gorm:"type:varchar(255)"`
	RawMaterials     []InventoryItem `gorm:"many2many:production_raw_materials;constraint:OnDelete:CASCADE"`
	QuantityProduced int             `gorm:"not null"`
	QuantityDamaged  *int
	QuantityUsed     datatypes.JSONSlice[int]
	ProductionDate   time.Time `gorm:"autoCreateTime"`
	UnitPrice        Money     `gorm:"type:decimal(10,2);not null"`
	Owner
}

// ProductionRecordResponse is the wire shape: raw materials are referenced by id.
type ProductionRecordResponse struct {
	ID               uint      `json:"id"`
	ProductName      string    `json:"productName"`
	RawMaterials     []uint    `json:"rawMaterials"`
	QuantityProduced int       `json:"quantityProduced"`
	QuantityDamaged  *int      `json:"quantityDamaged"`
	QuantityUsed     []int     `json:"quantityUsed"`
	ProductionDate   time.Time `json:"productionDate"`
	UnitPrice        Money     `json:"unit_price"`
	Username         string    `json:"username"`
}

func (p *ProductionRecord) ToResponse() ProductionRecordResponse {
	used := []int(p.QuantityUsed)
	if used == nil {
		used = []int{}
	}
	return ProductionRecordResponse{
		ID:               p.ID,
		ProductName:      p.ProductName,
		RawMaterials:     p.RawMaterialIDs(),
		QuantityProduced: p.QuantityProduced,
		QuantityDamaged:  p.QuantityDamaged,
		QuantityUsed:     used,
		ProductionDate:   p.ProductionDate,
		UnitPrice:        p.UnitPrice,
		Username:         p.Username,
	}
}

// RawMaterialIDs returns the ids of the loaded raw materials in ascending order.
func (p *ProductionRecord) RawMaterialIDs() []uint {
	ids := make([]uint, 0, len(p.RawMaterials))
	for _, m := range p.RawMaterials {
		ids = append(ids, m.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type ProductionRecordInput struct {
	ProductName      string `json:"productName" validate:"max=255"`
	RawMaterials     []uint `json:"rawMaterials" validate:"omitempty,unique"`
	QuantityProduced int    `json:"quantityProduced" validate:"required,gt=0"`
	QuantityDamaged  *int   `json:"quantityDamaged" validate:"omitempty,gte=0"`
	QuantityUsed     []int  `json:"quantityUsed"`
	UnitPrice        *Money `json:"unit_price" validate:"omitempty,money"`
	Username         string `json:"username" validate:"max=100"`
}

// Normalize sorts raw materials by id and reorders QuantityUsed with them.
// Callers must have checked that the two lists are the same length (or QuantityUsed is empty).
func (in *ProductionRecordInput) Normalize() {
	if len(in.QuantityUsed) != len(in.RawMaterials) {
		sort.Slice(in.RawMaterials, func(i, j int) bool { return in.RawMaterials[i] < in.RawMaterials[j] })
		return
	}
	idx := make([]int, len(in.RawMaterials))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return in.RawMaterials[idx[a]] < in.RawMaterials[idx[b]] })

	ids := make([]uint, len(idx))
	used := make([]int, len(idx))
	for i, k := range idx {
		ids[i] = in.RawMaterials[k]
		used[i] = in.QuantityUsed[k]
	}
	in.RawMaterials = ids
	in.QuantityUsed = used
}

// Apply copies scalar fields; raw materials are attached by the caller.
func (in *ProductionRecordInput) Apply(p *ProductionRecord) {
	p.ProductName = in.ProductName
	p.QuantityProduced = in.QuantityProduced
	p.QuantityDamaged = in.QuantityDamaged
	p.QuantityUsed = datatypes.JSONSlice[int](append([]int{}, in.QuantityUsed...))
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	} else {
		p.UnitPrice = Money{}
	}
	p.Username = in.Username
}

func (p *ProductionRecord) Input() ProductionRecordInput {
	price := p.UnitPrice
	return ProductionRecordInput{
		ProductName:      p.ProductName,
		RawMaterials:     p.RawMaterialIDs(),
		QuantityProduced: p.QuantityProduced,
		QuantityDamaged:  p.QuantityDamaged,
		QuantityUsed:     append([]int{}, p.QuantityUsed...),
		UnitPrice:        &price,
		Username:         p.Username,
	}
}
