package repository

import (
	"context"
	"sync"
	"testing"

	"soleledger/internal/models"
)

func TestAdjustQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	item := &models.Item{Name: "Runner", BasePrice: 20, Quantity: 10, Status: models.StatusInStock}
	if err := store.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.AdjustQuantity(ctx, item.ID, -4)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.Quantity != 6 || got.Status != models.StatusInStock {
		t.Fatalf("got quantity=%d status=%s", got.Quantity, got.Status)
	}

	got, err = store.AdjustQuantity(ctx, item.ID, -5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.Quantity != 1 || got.Status != models.StatusLowStock {
		t.Fatalf("got quantity=%d status=%s", got.Quantity, got.Status)
	}

	// would go negative: rejected, nothing written
	if _, err := store.AdjustQuantity(ctx, item.ID, -2); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	after, _ := store.GetByID(ctx, item.ID)
	if after.Quantity != 1 {
		t.Fatalf("quantity changed on failed adjust: %d", after.Quantity)
	}

	got, err = store.AdjustQuantity(ctx, item.ID, -1)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.Quantity != 0 || got.Status != models.StatusOutOfStock {
		t.Fatalf("got quantity=%d status=%s", got.Quantity, got.Status)
	}

	// restore pushes back through the tiers
	got, err = store.AdjustQuantity(ctx, item.ID, +10)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.Quantity != 10 || got.Status != models.StatusInStock {
		t.Fatalf("got quantity=%d status=%s", got.Quantity, got.Status)
	}

	if _, err := store.AdjustQuantity(ctx, 999, -1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Concurrent decrements must never drive stock negative: with 10 in stock
// and 20 goroutines taking 1 each, exactly 10 succeed and 10 fail.
func TestAdjustQuantity_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	item := &models.Item{Name: "Boot", Quantity: 10, Status: models.StatusInStock}
	if err := store.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AdjustQuantity(ctx, item.ID, -1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch err {
		case nil:
			ok++
		case ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 10 || insufficient != 10 {
		t.Fatalf("got %d successes, %d rejections", ok, insufficient)
	}
	after, _ := store.GetByID(ctx, item.ID)
	if after.Quantity != 0 || after.Status != models.StatusOutOfStock {
		t.Fatalf("final quantity=%d status=%s", after.Quantity, after.Status)
	}
}

func TestSaleRepositoryResolvesItem(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sales := NewMemorySales(store)

	item := &models.Item{Name: "Loafer", BasePrice: 25, Quantity: 3}
	if err := store.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	sale := &models.Sale{ItemID: &item.ID, ItemName: item.Name, Quantity: 1, SaleType: models.SaleTypeStore}
	if err := sales.Create(ctx, sale); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	got, err := sales.GetByID(ctx, sale.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Item == nil || got.Item.ID != item.ID {
		t.Fatalf("item reference not resolved: %+v", got.Item)
	}

	n, err := sales.CountByItem(ctx, item.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountByItem = %d, %v", n, err)
	}
}
