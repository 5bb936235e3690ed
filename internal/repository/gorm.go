package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"soleledger/internal/models"
)

// GormStore is the MySQL-backed store. A transaction started by
// WithTransaction travels down to the repositories through the context,
// so services never touch *gorm.DB directly.
type GormStore struct {
	base *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{base: db}
}

type gormTxKey struct{}

func (g *GormStore) db(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return tx
	}
	return g.base.WithContext(ctx)
}

var _ TxManager = (*GormStore)(nil)

func (g *GormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return g.base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, gormTxKey{}, tx))
	})
}

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormItems implements ItemRepository

type GormItems struct{ store *GormStore }

func NewGormItems(store *GormStore) *GormItems { return &GormItems{store: store} }

var _ ItemRepository = (*GormItems)(nil)

func (g *GormItems) Create(ctx context.Context, item *models.Item) error {
	return g.store.db(ctx).Create(item).Error
}

func (g *GormItems) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := g.store.db(ctx).First(&item, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &item, nil
}

func (g *GormItems) Update(ctx context.Context, item *models.Item) error {
	res := g.store.db(ctx).Model(&models.Item{}).Where("id = ?", item.ID).
		Select("*").Omit("id", "created_at").Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormItems) Delete(ctx context.Context, id uint) error {
	res := g.store.db(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormItems) List(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	q := g.store.db(ctx).Model(&models.Item{})
	if f.AddedByID != nil {
		q = q.Where("added_by_id = ?", *f.AddedByID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.ShoeType != "" {
		q = q.Where("shoe_type LIKE ?", "%"+f.ShoeType+"%")
	}
	if f.NameSubstring != "" {
		q = q.Where("name LIKE ?", "%"+f.NameSubstring+"%")
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	var items []models.Item
	if err := q.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AdjustQuantity issues a single conditional UPDATE so the stock check
// and the decrement cannot be split by a concurrent sale. RowsAffected
// zero means either a missing row or a delta that would go negative.
func (g *GormItems) AdjustQuantity(ctx context.Context, id uint, delta int) (*models.Item, error) {
	db := g.store.db(ctx)
	res := db.Model(&models.Item{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", delta)})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.Model(&models.Item{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrInsufficientStock
	}
	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	item.Status = models.DeriveStatus(item.Quantity)
	if err := db.Model(&models.Item{}).Where("id = ?", id).
		Update("status", item.Status).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GormSales implements SaleRepository

type GormSales struct{ store *GormStore }

func NewGormSales(store *GormStore) *GormSales { return &GormSales{store: store} }

var _ SaleRepository = (*GormSales)(nil)

func (g *GormSales) Create(ctx context.Context, sale *models.Sale) error {
	return g.store.db(ctx).Omit("Item").Create(sale).Error
}

func (g *GormSales) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := g.store.db(ctx).Preload("Item").First(&sale, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &sale, nil
}

func (g *GormSales) Update(ctx context.Context, sale *models.Sale) error {
	res := g.store.db(ctx).Model(&models.Sale{}).Where("id = ?", sale.ID).
		Select("*").Omit("id", "created_at", "Item").Updates(sale)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormSales) Delete(ctx context.Context, id uint) error {
	res := g.store.db(ctx).Delete(&models.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormSales) List(ctx context.Context, f SaleFilter) ([]models.Sale, error) {
	q := g.store.db(ctx).Model(&models.Sale{}).Preload("Item")
	if f.SoldByID != nil {
		q = q.Where("sold_by_id = ?", *f.SoldByID)
	}
	if f.SaleType != nil {
		q = q.Where("sale_type = ?", *f.SaleType)
	}
	if f.ItemID != nil {
		q = q.Where("item_id = ?", *f.ItemID)
	}
	if f.From != nil {
		q = q.Where("sale_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("sale_date <= ?", *f.To)
	}
	var sales []models.Sale
	if err := q.Order("id").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (g *GormSales) CountByItem(ctx context.Context, itemID uint) (int64, error) {
	var n int64
	err := g.store.db(ctx).Model(&models.Sale{}).Where("item_id = ?", itemID).Count(&n).Error
	return n, err
}

// GormTasks implements TaskRepository

type GormTasks struct{ store *GormStore }

func NewGormTasks(store *GormStore) *GormTasks { return &GormTasks{store: store} }

var _ TaskRepository = (*GormTasks)(nil)

func (g *GormTasks) Create(ctx context.Context, task *models.Task) error {
	return g.store.db(ctx).Create(task).Error
}

func (g *GormTasks) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := g.store.db(ctx).First(&task, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &task, nil
}

func (g *GormTasks) Update(ctx context.Context, task *models.Task) error {
	res := g.store.db(ctx).Model(&models.Task{}).Where("id = ?", task.ID).
		Select("*").Omit("id", "created_at").Updates(task)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormTasks) Delete(ctx context.Context, id uint) error {
	res := g.store.db(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormTasks) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	q := g.store.db(ctx).Model(&models.Task{})
	if f.CreatedByID != nil {
		q = q.Where("created_by_id = ?", *f.CreatedByID)
	}
	if f.From != nil {
		q = q.Where("task_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("task_date <= ?", *f.To)
	}
	var tasks []models.Task
	if err := q.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GormReminders implements ReminderRepository

type GormReminders struct{ store *GormStore }

func NewGormReminders(store *GormStore) *GormReminders { return &GormReminders{store: store} }

var _ ReminderRepository = (*GormReminders)(nil)

func (g *GormReminders) Create(ctx context.Context, r *models.Reminder) error {
	return g.store.db(ctx).Create(r).Error
}

func (g *GormReminders) GetByID(ctx context.Context, id uint) (*models.Reminder, error) {
	var r models.Reminder
	if err := g.store.db(ctx).First(&r, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &r, nil
}

func (g *GormReminders) Delete(ctx context.Context, id uint) error {
	res := g.store.db(ctx).Delete(&models.Reminder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormReminders) List(ctx context.Context, f ReminderFilter) ([]models.Reminder, error) {
	q := g.store.db(ctx).Model(&models.Reminder{})
	if f.CreatedByID != nil {
		q = q.Where("created_by_id = ?", *f.CreatedByID)
	}
	if f.Unsent {
		q = q.Where("sent = ?", false)
	}
	if f.DueBefore != nil {
		q = q.Where("action_at <= ?", *f.DueBefore)
	}
	var reminders []models.Reminder
	if err := q.Order("id").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (g *GormReminders) MarkSent(ctx context.Context, ids []uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return g.store.db(ctx).Model(&models.Reminder{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{"sent": true, "sent_at": at}).Error
}

// GormUsers implements UserRepository

type GormUsers struct{ store *GormStore }

func NewGormUsers(store *GormStore) *GormUsers { return &GormUsers{store: store} }

var _ UserRepository = (*GormUsers)(nil)

func (g *GormUsers) Create(ctx context.Context, u *models.User) error {
	return g.store.db(ctx).Create(u).Error
}

func (g *GormUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := g.store.db(ctx).First(&u, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &u, nil
}

func (g *GormUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := g.store.db(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return &u, nil
}
