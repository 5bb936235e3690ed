package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

func setupTasks(t *testing.T) *TaskService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewTaskService(repository.NewMemoryTasks(store))
}

func TestTaskCreate_ComputesTotals(t *testing.T) {
	ctx := context.Background()
	tasks := setupTasks(t)

	task, err := tasks.Create(ctx, 1, TaskInput{
		ShoeType:     "boot",
		SaleLocation: models.SaleTypeOutOfStore,
		BasePrice:    20,
		TaxiCost:     5,
		OtherCosts:   3,
		ProfitGained: 40,
	})
	assert.NoError(t, err)
	assert.Equal(t, 28.0, task.TotalCost)
	assert.Equal(t, 12.0, task.NetProfit)
}

func TestTaskUpdate_RecomputesTotals(t *testing.T) {
	ctx := context.Background()
	tasks := setupTasks(t)

	task, _ := tasks.Create(ctx, 1, TaskInput{
		SaleLocation: models.SaleTypeStore,
		BasePrice:    20, TaxiCost: 5, OtherCosts: 3, ProfitGained: 40,
	})

	updated, err := tasks.Update(ctx, task.ID, TaskInput{
		SaleLocation: models.SaleTypeStore,
		BasePrice:    25, TaxiCost: 0, OtherCosts: 3, ProfitGained: 40,
	})
	assert.NoError(t, err)
	assert.Equal(t, 28.0, updated.TotalCost)
	assert.Equal(t, 12.0, updated.NetProfit)

	// a task can run at a loss
	updated, err = tasks.Update(ctx, task.ID, TaskInput{
		SaleLocation: models.SaleTypeStore,
		BasePrice:    25, TaxiCost: 10, OtherCosts: 10, ProfitGained: 40,
	})
	assert.NoError(t, err)
	assert.Equal(t, 45.0, updated.TotalCost)
	assert.Equal(t, -5.0, updated.NetProfit)
}

func TestTaskCreate_Validation(t *testing.T) {
	ctx := context.Background()
	tasks := setupTasks(t)

	cases := []TaskInput{
		{SaleLocation: models.SaleTypeStore, BasePrice: -1},
		{SaleLocation: models.SaleTypeStore, TaxiCost: -1},
		{SaleLocation: models.SaleTypeStore, OtherCosts: -1},
		{SaleLocation: models.SaleTypeStore, ProfitGained: -1},
		{SaleLocation: "roadside"},
	}
	for i, in := range cases {
		_, err := tasks.Create(ctx, 1, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
	}
}

func TestTaskDelete(t *testing.T) {
	ctx := context.Background()
	tasks := setupTasks(t)

	task, _ := tasks.Create(ctx, 1, TaskInput{SaleLocation: models.SaleTypeStore, ProfitGained: 10})
	assert.NoError(t, tasks.Delete(ctx, task.ID))
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), repository.ErrNotFound)
}
