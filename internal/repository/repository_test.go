package repository

import (
	"testing"

	"bakery-backoffice/internal/dbtest"
	"bakery-backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newItem(t *testing.T, repo InventoryRepository, name, owner string) *model.InventoryItem {
	t.Helper()
	item := &model.InventoryItem{
		Name:         name,
		Category:     model.DefaultCategory,
		UnitPrice:    model.MustMoney("1.25"),
		ReorderLevel: 5,
		Owner:        model.Owner{Username: owner},
	}
	require.NoError(t, repo.Create(item))
	return item
}

func TestOwnerFilter(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewInventoryRepo(db)

	newItem(t, repo, "Flour", "alice")
	newItem(t, repo, "Sugar", "bob")
	newItem(t, repo, "Yeast", "alice")

	tests := []struct {
		username string
		want     []string
	}{
		{"", []string{"Flour", "Sugar", "Yeast"}},
		{"alice", []string{"Flour", "Yeast"}},
		{"Alice", nil},
		{"carol", nil},
	}

	for _, tt := range tests {
		t.Run("username="+tt.username, func(t *testing.T) {
			items, err := repo.FindAll(tt.username)
			require.NoError(t, err)
			var names []string
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCrudDeleteMissing(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewSaleRepo(db)

	err := repo.Delete(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTransactionFiltersAndCascade(t *testing.T) {
	db := dbtest.Open(t)
	items := NewInventoryRepo(db)
	txs := NewTransactionRepo(db)

	flour := newItem(t, items, "Flour", "")
	sugar := newItem(t, items, "Sugar", "")
	for _, id := range []uint{flour.ID, flour.ID, sugar.ID} {
		require.NoError(t, txs.Create(&model.InventoryTransaction{
			ProductID: id, TransactionType: model.TxAddition, Quantity: 1,
		}))
	}

	onlyFlour, err := txs.FindAll(&flour.ID)
	require.NoError(t, err)
	assert.Len(t, onlyFlour, 2)

	joined, err := txs.FindWithProduct()
	require.NoError(t, err)
	require.Len(t, joined, 3)
	for _, tx := range joined {
		require.NotNil(t, tx.Product)
		assert.Equal(t, tx.ProductID, tx.Product.ID)
	}

	n, err := txs.DeleteByProduct(flour.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := txs.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}

func TestProductionMaterials(t *testing.T) {
	db := dbtest.Open(t)
	items := NewInventoryRepo(db)
	repo := NewProductionRepo(db)

	a := newItem(t, items, "Flour", "")
	b := newItem(t, items, "Sugar", "")
	c := newItem(t, items, "Butter", "")

	rec := &model.ProductionRecord{
		ProductName:      "Bread",
		RawMaterials:     []model.InventoryItem{*a, *b},
		QuantityProduced: 10,
		QuantityUsed:     datatypes.JSONSlice[int]{3, 1},
		UnitPrice:        model.MustMoney("4.00"),
	}
	require.NoError(t, repo.Create(rec))

	got, err := repo.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, got.RawMaterialIDs())
	assert.Equal(t, []int{3, 1}, []int(got.QuantityUsed))

	got.RawMaterials = []model.InventoryItem{*c}
	require.NoError(t, repo.Update(got))
	got, err = repo.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID}, got.RawMaterialIDs())

	require.NoError(t, repo.DetachMaterial(c.ID))
	got, err = repo.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RawMaterials)

	require.NoError(t, repo.Delete(rec.ID))
	_, err = repo.FindByID(rec.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// items survive the production record
	n, err := items.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSaleStockTransactionsByStock(t *testing.T) {
	db := dbtest.Open(t)
	stocks := NewSaleStockRepo(db)
	txs := NewSaleStockTransactionRepo(db)

	s1 := &model.SaleStock{ProductID: "P1", QuantityObtained: 2}
	s2 := &model.SaleStock{ProductID: "P2", QuantityObtained: 3}
	require.NoError(t, stocks.Create(s1))
	require.NoError(t, stocks.Create(s2))
	require.NoError(t, txs.Create(model.MirrorOf(s1, model.TxAddition)))
	require.NoError(t, txs.Create(model.MirrorOf(s1, model.TxUpdate)))
	require.NoError(t, txs.Create(model.MirrorOf(s2, model.TxAddition)))

	forS1, err := txs.FindAll(&s1.ID)
	require.NoError(t, err)
	assert.Len(t, forS1, 2)

	n, err := txs.DeleteByStock(s1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := txs.FindAll(nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, s2.ID, all[0].SaleStockID)
}

func TestUserTokenAndAudit(t *testing.T) {
	db := dbtest.Open(t)
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)
	tokens := NewTokenRepo(db)
	audit := NewAuditRepo(db)

	bob := &model.User{Username: "bob", Email: "bob@x.com"}
	require.NoError(t, users.Create(bob))
	require.NoError(t, profiles.Create(&model.UserProfile{UserID: bob.ID, Role: model.RoleSalesRep, Status: "active"}))

	found, err := users.FindByCredentials("bob", "bob@x.com")
	require.NoError(t, err)
	require.NotNil(t, found.Profile)
	assert.Equal(t, model.RoleSalesRep, found.Profile.Role)

	_, err = users.FindByCredentials("bob", "wrong@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, tokens.Create(&model.AuthToken{Key: "k1", UserID: bob.ID}))
	tok, err := tokens.FindByKey("k1")
	require.NoError(t, err)
	require.NotNil(t, tok.User)
	require.NotNil(t, tok.User.Profile)
	assert.Equal(t, "bob", tok.User.Username)

	entry := &model.AuditLog{UserID: &bob.ID, Action: "did a thing"}
	require.NoError(t, audit.Create(entry))
	require.NoError(t, audit.DetachUser(bob.ID))

	got, err := audit.FindByID(entry.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.User)
	assert.Equal(t, "did a thing", got.Action)
}
