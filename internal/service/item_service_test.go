package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

func TestItemCreate_DerivesStatus(t *testing.T) {
	ctx := context.Background()
	items, _ := setup(t)

	cases := []struct {
		quantity int
		want     models.StockStatus
	}{
		{0, models.StatusOutOfStock},
		{5, models.StatusLowStock},
		{6, models.StatusInStock},
	}
	for _, c := range cases {
		item, err := items.Create(ctx, 1, ItemInput{Name: "Runner", BasePrice: 20, SellingPrice: 35, Quantity: c.quantity})
		assert.NoError(t, err)
		assert.Equal(t, c.want, item.Status, "quantity %d", c.quantity)
	}
}

func TestItemCreate_Validation(t *testing.T) {
	ctx := context.Background()
	items, _ := setup(t)

	cases := []ItemInput{
		{Name: "", BasePrice: 10, SellingPrice: 15, Quantity: 1},
		{Name: "Runner", BasePrice: -1, SellingPrice: 15, Quantity: 1},
		{Name: "Runner", BasePrice: 10, SellingPrice: -1, Quantity: 1},
		{Name: "Runner", BasePrice: 10, SellingPrice: 15, Quantity: -1},
	}
	for i, in := range cases {
		_, err := items.Create(ctx, 1, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
	}
}

func TestItemUpdate_ReDerivesStatus(t *testing.T) {
	ctx := context.Background()
	items, _ := setup(t)

	item, _ := items.Create(ctx, 1, ItemInput{Name: "Runner", BasePrice: 20, SellingPrice: 35, Quantity: 10})

	updated, err := items.Update(ctx, item.ID, ItemInput{Name: "Runner", BasePrice: 20, SellingPrice: 35, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusLowStock, updated.Status)

	updated, err = items.Update(ctx, item.ID, ItemInput{Name: "Runner", BasePrice: 22, SellingPrice: 35, Quantity: 0})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusOutOfStock, updated.Status)
	assert.Equal(t, 22.0, updated.BasePrice)
}

func TestItemDelete_ForbiddenWhileReferenced(t *testing.T) {
	ctx := context.Background()
	items, sales := setup(t)

	item, _ := items.Create(ctx, 1, ItemInput{Name: "Runner", BasePrice: 20, SellingPrice: 35, Quantity: 10})
	sale, err := sales.Record(ctx, 1, RecordSaleInput{
		ItemID: &item.ID, Quantity: 1, SellingPrice: 30, SaleType: models.SaleTypeStore,
	})
	assert.NoError(t, err)

	assert.ErrorIs(t, items.Delete(ctx, item.ID), ErrInvalidState)

	// once the sale is reversed the item can go
	assert.NoError(t, sales.Delete(ctx, sale.ID))
	assert.NoError(t, items.Delete(ctx, item.ID))

	_, err = items.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestItemAdjustQuantity_ManualRestock(t *testing.T) {
	ctx := context.Background()
	items, _ := setup(t)

	item, _ := items.Create(ctx, 1, ItemInput{Name: "Runner", BasePrice: 20, SellingPrice: 35, Quantity: 1})

	restocked, err := items.AdjustQuantity(ctx, item.ID, +9)
	assert.NoError(t, err)
	assert.Equal(t, 10, restocked.Quantity)
	assert.Equal(t, models.StatusInStock, restocked.Status)

	_, err = items.AdjustQuantity(ctx, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestItemList_Filters(t *testing.T) {
	ctx := context.Background()
	items, _ := setup(t)

	_, _ = items.Create(ctx, 1, ItemInput{Name: "Air Runner", ShoeType: "sneaker", BasePrice: 20, SellingPrice: 35, Quantity: 10})
	_, _ = items.Create(ctx, 1, ItemInput{Name: "Desert Boot", ShoeType: "boot", BasePrice: 40, SellingPrice: 60, Quantity: 0})
	_, _ = items.Create(ctx, 2, ItemInput{Name: "Loafer", ShoeType: "loafer", BasePrice: 30, SellingPrice: 45, Quantity: 3})

	owner := uint(1)
	list, err := items.List(ctx, repository.ItemFilter{AddedByID: &owner})
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	status := models.StatusOutOfStock
	list, err = items.List(ctx, repository.ItemFilter{Status: &status})
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "Desert Boot", list[0].Name)
	}

	list, err = items.List(ctx, repository.ItemFilter{NameSubstring: "runner"})
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
