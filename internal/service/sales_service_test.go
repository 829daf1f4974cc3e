package service

import (
	"testing"

	"bakery-backoffice/internal/dbtest"
	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/ws"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleStockMirroring(t *testing.T) {
	hub := ws.NewHub()
	svc := NewSalesService(dbtest.Open(t), hub)
	addedBefore := testutil.ToFloat64(metrics.SaleStockMirrored.WithLabelValues(string(model.TxAddition)))

	stock, err := svc.CreateStock(&model.SaleStockInput{
		ProductID:        "SKU1",
		QuantityObtained: 20,
		StockAmount:      moneyPtr("100.00"),
		Username:         "alice",
	})
	require.NoError(t, err)

	txs, err := svc.ListStockTransactions(&stock.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	added := txs[0]
	assert.Equal(t, model.TxAddition, added.TransactionType)
	assert.Equal(t, model.RemarksStockAdded, added.Remarks)
	assert.Equal(t, "SKU1", added.ProductID)
	assert.Equal(t, 20, added.QuantityObtained)
	assert.Equal(t, "100.00", added.StockAmount.String())
	assert.Equal(t, "alice", added.Username)
	assert.True(t, added.StockDate.Equal(stock.StockDate))

	assert.Equal(t, addedBefore+1, testutil.ToFloat64(metrics.SaleStockMirrored.WithLabelValues(string(model.TxAddition))))
	assert.Len(t, hub.Broadcast, 1)

	in := stock.Input()
	in.QuantityObtained = 25
	_, err = svc.UpdateStock(stock.ID, &in)
	require.NoError(t, err)

	// identical update still appends
	_, err = svc.UpdateStock(stock.ID, &in)
	require.NoError(t, err)

	txs, err = svc.ListStockTransactions(&stock.ID)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs[1:] {
		assert.Equal(t, model.TxUpdate, tx.TransactionType)
		assert.Equal(t, model.RemarksStockUpdated, tx.Remarks)
		assert.Equal(t, 25, tx.QuantityObtained)
	}
}

func TestSaleStockInvalidWritesNothing(t *testing.T) {
	svc := NewSalesService(dbtest.Open(t), nil)

	_, err := svc.CreateStock(&model.SaleStockInput{ProductID: "SKU1", StockAmount: moneyPtr("-5")})
	assert.ElementsMatch(t, []string{"quantity_obtained", "stock_amount"}, fieldsOf(t, err))

	stocks, err := svc.ListStocks("")
	require.NoError(t, err)
	assert.Empty(t, stocks)
	txs, err := svc.ListStockTransactions(nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSaleStockMirrorFailureRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	hub := ws.NewHub()
	svc := NewSalesService(db, hub)

	stock, err := svc.CreateStock(&model.SaleStockInput{ProductID: "SKU1", QuantityObtained: 20, StockAmount: moneyPtr("100.00")})
	require.NoError(t, err)
	<-hub.Broadcast
	updatedBefore := testutil.ToFloat64(metrics.SaleStockMirrored.WithLabelValues(string(model.TxUpdate)))

	require.NoError(t, db.Migrator().DropTable(&model.SaleStockTransaction{}))

	_, err = svc.CreateStock(&model.SaleStockInput{ProductID: "SKU2", QuantityObtained: 5})
	require.Error(t, err)

	in := stock.Input()
	in.QuantityObtained = 99
	in.StockAmount = moneyPtr("1.00")
	_, err = svc.UpdateStock(stock.ID, &in)
	require.Error(t, err)

	stocks, err := svc.ListStocks("")
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "SKU1", stocks[0].ProductID)
	assert.Equal(t, 20, stocks[0].QuantityObtained)
	assert.Equal(t, "100.00", stocks[0].StockAmount.String())

	assert.Empty(t, hub.Broadcast)
	assert.Equal(t, updatedBefore, testutil.ToFloat64(metrics.SaleStockMirrored.WithLabelValues(string(model.TxUpdate))))
}

func TestDeleteStockCascades(t *testing.T) {
	svc := NewSalesService(dbtest.Open(t), nil)

	s1, err := svc.CreateStock(&model.SaleStockInput{ProductID: "A", QuantityObtained: 1})
	require.NoError(t, err)
	s2, err := svc.CreateStock(&model.SaleStockInput{ProductID: "B", QuantityObtained: 2})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStock(s1.ID))

	txs, err := svc.ListStockTransactions(nil)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, s2.ID, txs[0].SaleStockID)

	assert.ErrorIs(t, svc.DeleteStock(s1.ID), ErrNotFound)
}

func TestStockTransactionNeedsStock(t *testing.T) {
	svc := NewSalesService(dbtest.Open(t), nil)

	_, err := svc.CreateStockTransaction(&model.SaleStockTransactionInput{
		SaleStock:        7,
		TransactionType:  model.TxAddition,
		QuantityObtained: 1,
	})
	assert.Equal(t, []string{"sale_stock"}, fieldsOf(t, err))
}

func TestSalesOwnerFilterAndDefaults(t *testing.T) {
	svc := NewSalesService(dbtest.Open(t), nil)

	sale, err := svc.CreateSale(&model.SaleInput{ProductID: "Bread", QuantitySold: 3, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "0.00", sale.SalesAmount.String())
	_, err = svc.CreateSale(&model.SaleInput{ProductID: "Cake", QuantitySold: 1, Username: "bob"})
	require.NoError(t, err)

	all, err := svc.ListSales("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	alice, err := svc.ListSales("alice")
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, sale.ID, alice[0].ID)

	_, err = svc.GetSale(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
