package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"soleledger/internal/models"
	"soleledger/internal/repository"
)

func setupDashboard(t *testing.T) (*ItemService, *SaleService, *TaskService, *DashboardService) {
	t.Helper()
	store := repository.NewMemoryStore()
	sales := repository.NewMemorySales(store)
	tasks := repository.NewMemoryTasks(store)
	tx := repository.NewMemoryTx(store)
	return NewItemService(store, sales),
		NewSaleService(store, sales, tx),
		NewTaskService(tasks),
		NewDashboardService(store, sales, tasks)
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	from, to, err := ResolvePeriod(PeriodToday, time.Time{}, time.Time{}, now)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, now, *to)

	from, to, err = ResolvePeriod(PeriodWeek, time.Time{}, time.Time{}, now)
	assert.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), *from)

	from, to, err = ResolvePeriod(PeriodYear, time.Time{}, time.Time{}, now)
	assert.NoError(t, err)
	assert.Equal(t, now.AddDate(-1, 0, 0), *from)

	from, to, err = ResolvePeriod(PeriodAll, time.Time{}, time.Time{}, now)
	assert.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	cf := now.AddDate(0, 0, -3)
	from, to, err = ResolvePeriod(PeriodCustom, cf, now, now)
	assert.NoError(t, err)
	assert.Equal(t, cf, *from)
	assert.Equal(t, now, *to)

	_, _, err = ResolvePeriod(PeriodCustom, now, cf, now) // to before from
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = ResolvePeriod(PeriodCustom, time.Time{}, now, now)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = ResolvePeriod("fortnight", time.Time{}, time.Time{}, now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	items, sales, tasks, dashboard := setupDashboard(t)

	item, _ := items.Create(ctx, 1, ItemInput{Name: "Runner", BasePrice: 20, SellingPrice: 35, Quantity: 10})
	_, _ = items.Create(ctx, 1, ItemInput{Name: "Desert Boot", BasePrice: 40, SellingPrice: 60, Quantity: 0})

	_, err := sales.Record(ctx, 1, RecordSaleInput{
		ItemID: &item.ID, Quantity: 3, SellingPrice: 30, SaleType: models.SaleTypeStore,
	})
	assert.NoError(t, err)
	_, err = sales.Record(ctx, 1, RecordSaleInput{
		ItemName: "Boot X", Quantity: 2, SellingPrice: 50, BasePrice: ptr(30.0),
		SaleType: models.SaleTypeOutOfStore,
	})
	assert.NoError(t, err)
	// another user's sale must not leak into user 1's summary
	_, err = sales.Record(ctx, 2, RecordSaleInput{
		ItemName: "Other", Quantity: 1, SellingPrice: 99, BasePrice: ptr(1.0),
		SaleType: models.SaleTypeOutOfStore,
	})
	assert.NoError(t, err)

	_, err = tasks.Create(ctx, 1, TaskInput{
		SaleLocation: models.SaleTypeOutOfStore,
		BasePrice:    20, TaxiCost: 5, OtherCosts: 3, ProfitGained: 40,
	})
	assert.NoError(t, err)

	summary, err := dashboard.Summary(ctx, 1, PeriodToday, time.Time{}, time.Time{})
	assert.NoError(t, err)

	assert.Equal(t, int64(2), summary.Sales.Count)
	assert.Equal(t, 190.0, summary.Sales.Revenue) // 90 + 100
	assert.Equal(t, 70.0, summary.Sales.Profit)   // 30 + 40
	assert.Equal(t, int64(1), summary.Sales.ByType[models.SaleTypeStore].Count)
	assert.Equal(t, 90.0, summary.Sales.ByType[models.SaleTypeStore].Revenue)
	assert.Equal(t, int64(1), summary.Sales.ByType[models.SaleTypeOutOfStore].Count)

	// inventory value uses the post-sale quantity: 7*20 + 0*40
	assert.Equal(t, int64(2), summary.Items.Count)
	assert.Equal(t, 140.0, summary.Items.InventoryValue)
	assert.Equal(t, int64(1), summary.Items.ByStatus[models.StatusInStock])
	assert.Equal(t, int64(1), summary.Items.ByStatus[models.StatusOutOfStock])

	assert.Equal(t, int64(1), summary.Tasks.Count)
	assert.Equal(t, 12.0, summary.Tasks.Profit)
	assert.Equal(t, 28.0, summary.Tasks.Cost)
	assert.Equal(t, int64(1), summary.Tasks.ByLocation[models.SaleTypeOutOfStore].Count)

	// everything landed today, so the trend has one daily bucket
	if assert.Len(t, summary.Trend, 1) {
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), summary.Trend[0].Bucket)
		assert.Equal(t, int64(2), summary.Trend[0].Sales)
		assert.Equal(t, int64(1), summary.Trend[0].Tasks)
	}
}

func TestDashboardTrend_Buckets(t *testing.T) {
	ctx := context.Background()
	_, sales, _, dashboard := setupDashboard(t)

	now := time.Now().UTC()
	for _, daysAgo := range []int{0, 1, 1, 40} {
		d := now.AddDate(0, 0, -daysAgo)
		_, err := sales.Record(ctx, 1, RecordSaleInput{
			ItemName: "Boot", Quantity: 1, SellingPrice: 10, BasePrice: ptr(5.0),
			SaleType: models.SaleTypeOutOfStore, SaleDate: &d,
		})
		assert.NoError(t, err)
	}

	// 7-day window: daily buckets, ascending, the 40-day-old sale excluded
	summary, err := dashboard.Summary(ctx, 1, PeriodWeek, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), summary.Sales.Count)
	if assert.Len(t, summary.Trend, 2) {
		assert.Less(t, summary.Trend[0].Bucket, summary.Trend[1].Bucket)
		assert.Equal(t, int64(2), summary.Trend[0].Sales)
		assert.Equal(t, int64(1), summary.Trend[1].Sales)
	}

	// year window: monthly buckets
	summary, err = dashboard.Summary(ctx, 1, PeriodYear, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), summary.Sales.Count)
	for _, p := range summary.Trend {
		assert.Len(t, p.Bucket, len("2006-01"))
	}
}
