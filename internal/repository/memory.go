package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"soleledger/internal/models"
)

// MemoryStore is the in-memory backend used by tests. One mutex guards
// every map, so the conditional quantity update is naturally atomic.
type MemoryStore struct {
	mu             sync.RWMutex
	nextItemID     uint
	nextSaleID     uint
	nextTaskID     uint
	nextReminderID uint
	nextUserID     uint
	itemsByID      map[uint]models.Item
	salesByID      map[uint]models.Sale
	tasksByID      map[uint]models.Task
	remindersByID  map[uint]models.Reminder
	usersByID      map[uint]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextItemID:     1,
		nextSaleID:     1,
		nextTaskID:     1,
		nextReminderID: 1,
		nextUserID:     1,
		itemsByID:      make(map[uint]models.Item),
		salesByID:      make(map[uint]models.Sale),
		tasksByID:      make(map[uint]models.Task),
		remindersByID:  make(map[uint]models.Reminder),
		usersByID:      make(map[uint]models.User),
	}
}

// transaction-aware locking helpers: inside WithTransaction the write
// lock is already held, so the per-call locks must be skipped.
type txKey struct{}

func isTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ItemRepository = (*MemoryStore)(nil)

// ItemRepository implementation

func (m *MemoryStore) Create(ctx context.Context, item *models.Item) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	item.ID = m.nextItemID
	m.nextItemID++
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	m.itemsByID[item.ID] = *item
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	item, ok := m.itemsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := item
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, item *models.Item) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.itemsByID[item.ID]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now().UTC()
	m.itemsByID[item.ID] = *item
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id uint) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.itemsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.itemsByID, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]models.Item, 0)
	for _, item := range m.itemsByID {
		if f.AddedByID != nil && item.AddedByID != *f.AddedByID {
			continue
		}
		if f.Status != nil && item.Status != *f.Status {
			continue
		}
		if f.ShoeType != "" && !containsIgnoreCase(item.ShoeType, f.ShoeType) {
			continue
		}
		if !containsIgnoreCase(item.Name, f.NameSubstring) {
			continue
		}
		if f.From != nil && item.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && item.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AdjustQuantity applies delta iff the result stays non-negative and
// re-derives the stock status, all under one lock.
func (m *MemoryStore) AdjustQuantity(ctx context.Context, id uint, delta int) (*models.Item, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	item, ok := m.itemsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		return nil, ErrInsufficientStock
	}
	item.Quantity = newQuantity
	item.Status = models.DeriveStatus(newQuantity)
	item.UpdatedAt = time.Now().UTC()
	m.itemsByID[id] = item
	cp := item
	return &cp, nil
}

// SaleRepository implementation on wrapper type

type MemorySales struct{ store *MemoryStore }

func NewMemorySales(store *MemoryStore) *MemorySales { return &MemorySales{store: store} }

var _ SaleRepository = (*MemorySales)(nil)

func (ms *MemorySales) Create(ctx context.Context, sale *models.Sale) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	sale.ID = ms.store.nextSaleID
	ms.store.nextSaleID++
	now := time.Now().UTC()
	sale.CreatedAt = now
	sale.UpdatedAt = now
	stored := *sale
	stored.Item = nil // references are resolved on read
	ms.store.salesByID[sale.ID] = stored
	return nil
}

func (ms *MemorySales) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	sale, ok := ms.store.salesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := sale
	ms.resolveItem(&cp)
	return &cp, nil
}

func (ms *MemorySales) Update(ctx context.Context, sale *models.Sale) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	if _, ok := ms.store.salesByID[sale.ID]; !ok {
		return ErrNotFound
	}
	sale.UpdatedAt = time.Now().UTC()
	stored := *sale
	stored.Item = nil
	ms.store.salesByID[sale.ID] = stored
	return nil
}

func (ms *MemorySales) Delete(ctx context.Context, id uint) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	if _, ok := ms.store.salesByID[id]; !ok {
		return ErrNotFound
	}
	delete(ms.store.salesByID, id)
	return nil
}

func (ms *MemorySales) List(ctx context.Context, f SaleFilter) ([]models.Sale, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	out := make([]models.Sale, 0)
	for _, sale := range ms.store.salesByID {
		if f.SoldByID != nil && sale.SoldByID != *f.SoldByID {
			continue
		}
		if f.SaleType != nil && sale.SaleType != *f.SaleType {
			continue
		}
		if f.ItemID != nil && (sale.ItemID == nil || *sale.ItemID != *f.ItemID) {
			continue
		}
		if f.From != nil && sale.SaleDate.Before(*f.From) {
			continue
		}
		if f.To != nil && sale.SaleDate.After(*f.To) {
			continue
		}
		cp := sale
		ms.resolveItem(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (ms *MemorySales) CountByItem(ctx context.Context, itemID uint) (int64, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	var n int64
	for _, sale := range ms.store.salesByID {
		if sale.ItemID != nil && *sale.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// resolveItem attaches a copy of the referenced item, mirroring the gorm
// store's Preload. Caller must hold at least a read lock.
func (ms *MemorySales) resolveItem(sale *models.Sale) {
	if sale.ItemID == nil {
		return
	}
	if item, ok := ms.store.itemsByID[*sale.ItemID]; ok {
		cp := item
		sale.Item = &cp
	}
}

// TaskRepository implementation on wrapper type

type MemoryTasks struct{ store *MemoryStore }

func NewMemoryTasks(store *MemoryStore) *MemoryTasks { return &MemoryTasks{store: store} }

var _ TaskRepository = (*MemoryTasks)(nil)

func (mt *MemoryTasks) Create(ctx context.Context, task *models.Task) error {
	mt.store.wlock(ctx)
	defer mt.store.wunlock(ctx)
	task.ID = mt.store.nextTaskID
	mt.store.nextTaskID++
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	mt.store.tasksByID[task.ID] = *task
	return nil
}

func (mt *MemoryTasks) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	mt.store.rlock(ctx)
	defer mt.store.runlock(ctx)
	task, ok := mt.store.tasksByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := task
	return &cp, nil
}

func (mt *MemoryTasks) Update(ctx context.Context, task *models.Task) error {
	mt.store.wlock(ctx)
	defer mt.store.wunlock(ctx)
	if _, ok := mt.store.tasksByID[task.ID]; !ok {
		return ErrNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	mt.store.tasksByID[task.ID] = *task
	return nil
}

func (mt *MemoryTasks) Delete(ctx context.Context, id uint) error {
	mt.store.wlock(ctx)
	defer mt.store.wunlock(ctx)
	if _, ok := mt.store.tasksByID[id]; !ok {
		return ErrNotFound
	}
	delete(mt.store.tasksByID, id)
	return nil
}

func (mt *MemoryTasks) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	mt.store.rlock(ctx)
	defer mt.store.runlock(ctx)
	out := make([]models.Task, 0)
	for _, task := range mt.store.tasksByID {
		if f.CreatedByID != nil && task.CreatedByID != *f.CreatedByID {
			continue
		}
		if f.From != nil && task.TaskDate.Before(*f.From) {
			continue
		}
		if f.To != nil && task.TaskDate.After(*f.To) {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReminderRepository implementation on wrapper type

type MemoryReminders struct{ store *MemoryStore }

func NewMemoryReminders(store *MemoryStore) *MemoryReminders {
	return &MemoryReminders{store: store}
}

var _ ReminderRepository = (*MemoryReminders)(nil)

func (mr *MemoryReminders) Create(ctx context.Context, r *models.Reminder) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	r.ID = mr.store.nextReminderID
	mr.store.nextReminderID++
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	mr.store.remindersByID[r.ID] = *r
	return nil
}

func (mr *MemoryReminders) GetByID(ctx context.Context, id uint) (*models.Reminder, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	r, ok := mr.store.remindersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (mr *MemoryReminders) Delete(ctx context.Context, id uint) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	if _, ok := mr.store.remindersByID[id]; !ok {
		return ErrNotFound
	}
	delete(mr.store.remindersByID, id)
	return nil
}

func (mr *MemoryReminders) List(ctx context.Context, f ReminderFilter) ([]models.Reminder, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	out := make([]models.Reminder, 0)
	for _, r := range mr.store.remindersByID {
		if f.CreatedByID != nil && r.CreatedByID != *f.CreatedByID {
			continue
		}
		if f.Unsent && r.Sent {
			continue
		}
		if f.DueBefore != nil && r.ActionAt.After(*f.DueBefore) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (mr *MemoryReminders) MarkSent(ctx context.Context, ids []uint, at time.Time) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	for _, id := range ids {
		r, ok := mr.store.remindersByID[id]
		if !ok {
			continue
		}
		r.Sent = true
		sentAt := at
		r.SentAt = &sentAt
		r.UpdatedAt = at
		mr.store.remindersByID[id] = r
	}
	return nil
}

// UserRepository implementation on wrapper type

type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (mu *MemoryUsers) Create(ctx context.Context, u *models.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	u.ID = mu.store.nextUserID
	mu.store.nextUserID++
	u.CreatedAt = time.Now().UTC()
	mu.store.usersByID[u.ID] = *u
	return nil
}

func (mu *MemoryUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	u, ok := mu.store.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (mu *MemoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	for _, u := range mu.store.usersByID {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryTx emulates a transaction boundary with the store's write lock.
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
